package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"connectrpc.com/connect"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/events"
	"github.com/splitpot/splitpot/internal/models"
	"github.com/splitpot/splitpot/internal/storage"
)

// PeopleService manages the members of the expense pool.
type PeopleService struct {
	store  storage.Store
	events events.Publisher
}

var _ api.PeopleServiceHandler = (*PeopleService)(nil)

// NewPeopleService creates a people service. The publisher may be nil
// when event publishing is disabled.
func NewPeopleService(store storage.Store, publisher events.Publisher) *PeopleService {
	return &PeopleService{store: store, events: publisher}
}

// CreatePerson adds a person to the pool.
func (s *PeopleService) CreatePerson(ctx context.Context, req *connect.Request[api.CreatePersonRequest]) (*connect.Response[api.CreatePersonResponse], error) {
	person := &models.Person{Name: strings.TrimSpace(req.Msg.Name)}
	if err := person.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.CreatePerson(ctx, person); err != nil {
		slog.Error("CreatePerson failed", "name", person.Name, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Person created", "person_id", person.ID, "name", person.Name)

	publishEvent(ctx, s.events, events.PersonCreated, person.ID)
	return connect.NewResponse(&api.CreatePersonResponse{Person: toAPIPerson(person)}), nil
}

// GetPerson returns a single person by ID.
func (s *PeopleService) GetPerson(ctx context.Context, req *connect.Request[api.GetPersonRequest]) (*connect.Response[api.GetPersonResponse], error) {
	if req.Msg.PersonID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("person_id required"))
	}

	person, err := s.store.GetPerson(ctx, req.Msg.PersonID)
	if err != nil {
		slog.Error("GetPerson failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, storageError(err)
	}

	return connect.NewResponse(&api.GetPersonResponse{Person: toAPIPerson(person)}), nil
}

// ListPeople returns everyone in the pool, ordered by name.
func (s *PeopleService) ListPeople(ctx context.Context, req *connect.Request[api.ListPeopleRequest]) (*connect.Response[api.ListPeopleResponse], error) {
	people, err := s.store.ListPeople(ctx)
	if err != nil {
		slog.Error("ListPeople failed", "error", err)
		return nil, storageError(err)
	}

	return connect.NewResponse(&api.ListPeopleResponse{People: toAPIPeople(people)}), nil
}

// UpdatePerson renames a person.
func (s *PeopleService) UpdatePerson(ctx context.Context, req *connect.Request[api.UpdatePersonRequest]) (*connect.Response[api.UpdatePersonResponse], error) {
	if req.Msg.PersonID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("person_id required"))
	}

	person := &models.Person{
		ID:   req.Msg.PersonID,
		Name: strings.TrimSpace(req.Msg.Name),
	}
	if err := person.Validate(); err != nil {
		return nil, connect.NewError(connect.CodeInvalidArgument, err)
	}

	if err := s.store.UpdatePerson(ctx, person); err != nil {
		slog.Error("UpdatePerson failed", "person_id", person.ID, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Person updated", "person_id", person.ID, "name", person.Name)

	publishEvent(ctx, s.events, events.PersonUpdated, person.ID)

	// Re-read so the response carries the stored timestamps.
	stored, err := s.store.GetPerson(ctx, person.ID)
	if err != nil {
		return nil, storageError(err)
	}
	return connect.NewResponse(&api.UpdatePersonResponse{Person: toAPIPerson(stored)}), nil
}

// DeletePerson removes a person along with their expenses, their splits
// and their settlements.
func (s *PeopleService) DeletePerson(ctx context.Context, req *connect.Request[api.DeletePersonRequest]) (*connect.Response[api.DeletePersonResponse], error) {
	if req.Msg.PersonID == "" {
		return nil, connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("person_id required"))
	}

	if err := s.store.DeletePerson(ctx, req.Msg.PersonID); err != nil {
		slog.Error("DeletePerson failed", "person_id", req.Msg.PersonID, "error", err)
		return nil, storageError(err)
	}
	slog.Info("Person deleted", "person_id", req.Msg.PersonID)

	publishEvent(ctx, s.events, events.PersonDeleted, req.Msg.PersonID)
	return connect.NewResponse(&api.DeletePersonResponse{}), nil
}
