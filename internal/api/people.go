package api

import (
	"context"
	"net/http"
	"strings"

	"connectrpc.com/connect"
)

// PeopleServiceName is the fully-qualified name of the people service.
const PeopleServiceName = "splitpot.v1.PeopleService"

// Procedure paths of the people service.
const (
	PeopleServiceCreatePersonProcedure = "/splitpot.v1.PeopleService/CreatePerson"
	PeopleServiceGetPersonProcedure    = "/splitpot.v1.PeopleService/GetPerson"
	PeopleServiceListPeopleProcedure   = "/splitpot.v1.PeopleService/ListPeople"
	PeopleServiceUpdatePersonProcedure = "/splitpot.v1.PeopleService/UpdatePerson"
	PeopleServiceDeletePersonProcedure = "/splitpot.v1.PeopleService/DeletePerson"
)

type CreatePersonRequest struct {
	Name string `json:"name"`
}

type CreatePersonResponse struct {
	Person *Person `json:"person"`
}

type GetPersonRequest struct {
	PersonID string `json:"person_id"`
}

type GetPersonResponse struct {
	Person *Person `json:"person"`
}

type ListPeopleRequest struct{}

type ListPeopleResponse struct {
	People []*Person `json:"people"`
}

type UpdatePersonRequest struct {
	PersonID string `json:"person_id"`
	Name     string `json:"name"`
}

type UpdatePersonResponse struct {
	Person *Person `json:"person"`
}

type DeletePersonRequest struct {
	PersonID string `json:"person_id"`
}

type DeletePersonResponse struct{}

// PeopleServiceHandler is the server-side API of the people service.
type PeopleServiceHandler interface {
	CreatePerson(context.Context, *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error)
	GetPerson(context.Context, *connect.Request[GetPersonRequest]) (*connect.Response[GetPersonResponse], error)
	ListPeople(context.Context, *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error)
	UpdatePerson(context.Context, *connect.Request[UpdatePersonRequest]) (*connect.Response[UpdatePersonResponse], error)
	DeletePerson(context.Context, *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error)
}

// NewPeopleServiceHandler builds an HTTP handler from the service
// implementation. It returns the path on which to mount the handler and
// the handler itself.
func NewPeopleServiceHandler(svc PeopleServiceHandler, opts ...connect.HandlerOption) (string, http.Handler) {
	opts = append([]connect.HandlerOption{connect.WithCodec(jsonCodec{})}, opts...)
	mux := http.NewServeMux()
	mux.Handle(PeopleServiceCreatePersonProcedure, connect.NewUnaryHandler(
		PeopleServiceCreatePersonProcedure, svc.CreatePerson, opts...))
	mux.Handle(PeopleServiceGetPersonProcedure, connect.NewUnaryHandler(
		PeopleServiceGetPersonProcedure, svc.GetPerson, opts...))
	mux.Handle(PeopleServiceListPeopleProcedure, connect.NewUnaryHandler(
		PeopleServiceListPeopleProcedure, svc.ListPeople, opts...))
	mux.Handle(PeopleServiceUpdatePersonProcedure, connect.NewUnaryHandler(
		PeopleServiceUpdatePersonProcedure, svc.UpdatePerson, opts...))
	mux.Handle(PeopleServiceDeletePersonProcedure, connect.NewUnaryHandler(
		PeopleServiceDeletePersonProcedure, svc.DeletePerson, opts...))
	return "/" + PeopleServiceName + "/", mux
}

// PeopleServiceClient is a client for the people service.
type PeopleServiceClient struct {
	createPerson *connect.Client[CreatePersonRequest, CreatePersonResponse]
	getPerson    *connect.Client[GetPersonRequest, GetPersonResponse]
	listPeople   *connect.Client[ListPeopleRequest, ListPeopleResponse]
	updatePerson *connect.Client[UpdatePersonRequest, UpdatePersonResponse]
	deletePerson *connect.Client[DeletePersonRequest, DeletePersonResponse]
}

// NewPeopleServiceClient constructs a client for the people service.
func NewPeopleServiceClient(httpClient connect.HTTPClient, baseURL string, opts ...connect.ClientOption) *PeopleServiceClient {
	opts = append([]connect.ClientOption{connect.WithCodec(jsonCodec{})}, opts...)
	baseURL = strings.TrimRight(baseURL, "/")
	return &PeopleServiceClient{
		createPerson: connect.NewClient[CreatePersonRequest, CreatePersonResponse](
			httpClient, baseURL+PeopleServiceCreatePersonProcedure, opts...),
		getPerson: connect.NewClient[GetPersonRequest, GetPersonResponse](
			httpClient, baseURL+PeopleServiceGetPersonProcedure, opts...),
		listPeople: connect.NewClient[ListPeopleRequest, ListPeopleResponse](
			httpClient, baseURL+PeopleServiceListPeopleProcedure, opts...),
		updatePerson: connect.NewClient[UpdatePersonRequest, UpdatePersonResponse](
			httpClient, baseURL+PeopleServiceUpdatePersonProcedure, opts...),
		deletePerson: connect.NewClient[DeletePersonRequest, DeletePersonResponse](
			httpClient, baseURL+PeopleServiceDeletePersonProcedure, opts...),
	}
}

func (c *PeopleServiceClient) CreatePerson(ctx context.Context, req *connect.Request[CreatePersonRequest]) (*connect.Response[CreatePersonResponse], error) {
	return c.createPerson.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) GetPerson(ctx context.Context, req *connect.Request[GetPersonRequest]) (*connect.Response[GetPersonResponse], error) {
	return c.getPerson.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) ListPeople(ctx context.Context, req *connect.Request[ListPeopleRequest]) (*connect.Response[ListPeopleResponse], error) {
	return c.listPeople.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) UpdatePerson(ctx context.Context, req *connect.Request[UpdatePersonRequest]) (*connect.Response[UpdatePersonResponse], error) {
	return c.updatePerson.CallUnary(ctx, req)
}

func (c *PeopleServiceClient) DeletePerson(ctx context.Context, req *connect.Request[DeletePersonRequest]) (*connect.Response[DeletePersonResponse], error) {
	return c.deletePerson.CallUnary(ctx, req)
}
