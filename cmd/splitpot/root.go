package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/cli"
)

var flagServer string

var rootCmd = &cobra.Command{
	Use:   "splitpot",
	Short: "Track shared expenses and settle up",
	Long: "Record who paid for what, see everyone's balance, and get the\n" +
		"short list of payments that squares the pool.",
	SilenceUsage: true,
}

// Execute is the main entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagServer, "server", "s", "", "Server URL (overrides the saved config)")
}

// session bundles the saved config with the typed clients commands use.
type session struct {
	cfg      cli.Config
	people   *api.PeopleServiceClient
	expenses *api.ExpenseServiceClient
	ledger   *api.LedgerServiceClient
	auth     *api.AuthServiceClient
}

func newSession() (*session, error) {
	cfg, err := cli.LoadConfig()
	if err != nil {
		return nil, err
	}

	baseURL := cli.ServerURL(cfg)
	if flagServer != "" {
		baseURL = flagServer
	}

	var opts []connect.ClientOption
	if cfg.Auth.Token != "" {
		opts = append(opts, api.WithAuthToken(cfg.Auth.Token))
	}

	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &session{
		cfg:      cfg,
		people:   api.NewPeopleServiceClient(httpClient, baseURL, opts...),
		expenses: api.NewExpenseServiceClient(httpClient, baseURL, opts...),
		ledger:   api.NewLedgerServiceClient(httpClient, baseURL, opts...),
		auth:     api.NewAuthServiceClient(httpClient, baseURL, opts...),
	}, nil
}

// cmdContext returns the timeout context commands run under.
func cmdContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 30*time.Second)
}

// resolvePeople fetches the pool indexed by name, for the commands
// that take names instead of IDs.
func (s *session) resolvePeople(ctx context.Context) (map[string]*api.Person, error) {
	res, err := s.people.ListPeople(ctx, connect.NewRequest(&api.ListPeopleRequest{}))
	if err != nil {
		return nil, err
	}
	byName := make(map[string]*api.Person, len(res.Msg.People))
	for _, p := range res.Msg.People {
		byName[p.Name] = p
	}
	return byName, nil
}

func personID(byName map[string]*api.Person, name string) (string, error) {
	if p, ok := byName[name]; ok {
		return p.ID, nil
	}
	return "", fmt.Errorf("no person named %q in the pool", name)
}

// shortID trims a UUID down to the prefix shown in list output.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
