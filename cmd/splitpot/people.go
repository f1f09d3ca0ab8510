package main

import (
	"fmt"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/cli"
)

var peopleCmd = &cobra.Command{
	Use:   "people",
	Short: "Manage who is in the pool",
}

var peopleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List everyone in the pool",
	RunE:  runPeopleList,
}

var peopleAddCmd = &cobra.Command{
	Use:   "add NAME",
	Short: "Add a person to the pool",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeopleAdd,
}

var peopleRemoveCmd = &cobra.Command{
	Use:   "rm NAME",
	Short: "Remove a person along with their expenses and settlements",
	Args:  cobra.ExactArgs(1),
	RunE:  runPeopleRemove,
}

func init() {
	peopleCmd.AddCommand(peopleListCmd, peopleAddCmd, peopleRemoveCmd)
	rootCmd.AddCommand(peopleCmd)
}

func runPeopleList(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.people.ListPeople(ctx, connect.NewRequest(&api.ListPeopleRequest{}))
	if err != nil {
		return err
	}
	if len(res.Msg.People) == 0 {
		fmt.Println("The pool is empty. Add someone with: splitpot people add NAME")
		return nil
	}

	rows := make([][]string, len(res.Msg.People))
	for i, p := range res.Msg.People {
		rows[i] = []string{p.Name, time.Unix(p.CreatedAt, 0).Format("2006-01-02")}
	}
	fmt.Print(cli.RenderTable(cli.Table{
		Title:   "People",
		Headers: []string{"Name", "Added"},
		Rows:    rows,
	}))
	return nil
}

func runPeopleAdd(_ *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.people.CreatePerson(ctx, connect.NewRequest(&api.CreatePersonRequest{Name: args[0]}))
	if err != nil {
		return err
	}
	fmt.Printf("Added %s\n", res.Msg.Person.Name)
	return nil
}

func runPeopleRemove(_ *cobra.Command, args []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	byName, err := s.resolvePeople(ctx)
	if err != nil {
		return err
	}
	id, err := personID(byName, args[0])
	if err != nil {
		return err
	}

	if _, err := s.people.DeletePerson(ctx, connect.NewRequest(&api.DeletePersonRequest{PersonID: id})); err != nil {
		return err
	}
	fmt.Printf("Removed %s and everything they were part of\n", args[0])
	return nil
}
