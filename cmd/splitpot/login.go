package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"connectrpc.com/connect"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/splitpot/splitpot/internal/api"
	"github.com/splitpot/splitpot/internal/cli"
)

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Log in and store the session token",
	Args:  cobra.ExactArgs(1),
	RunE:  runLogin,
}

var registerCmd = &cobra.Command{
	Use:   "register EMAIL DISPLAY_NAME",
	Short: "Create an account on the server",
	Args:  cobra.ExactArgs(2),
	RunE:  runRegister,
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Forget the stored session",
	RunE:  runLogout,
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the logged-in account",
	RunE:  runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd, registerCmd, logoutCmd, whoamiCmd)
}

func runLogin(_ *cobra.Command, args []string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.auth.Login(ctx, connect.NewRequest(&api.LoginRequest{
		Email:    args[0],
		Password: password,
	}))
	if err != nil {
		return err
	}
	return saveLogin(s.cfg, res.Msg.User, res.Msg.Token)
}

func runRegister(_ *cobra.Command, args []string) error {
	password, err := promptPassword()
	if err != nil {
		return err
	}

	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.auth.Register(ctx, connect.NewRequest(&api.RegisterRequest{
		Email:       args[0],
		DisplayName: args[1],
		Password:    password,
	}))
	if err != nil {
		return err
	}
	return saveLogin(s.cfg, res.Msg.User, res.Msg.Token)
}

func runLogout(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	if s.cfg.Auth.Token != "" {
		ctx, cancel := cmdContext()
		defer cancel()
		// Best effort. The local token is forgotten either way.
		_, _ = s.auth.Logout(ctx, connect.NewRequest(&api.LogoutRequest{}))
	}

	s.cfg.Auth = cli.AuthConfig{}
	if err := cli.SaveConfig(s.cfg); err != nil {
		return err
	}
	fmt.Println("Logged out")
	return nil
}

func runWhoami(_ *cobra.Command, _ []string) error {
	s, err := newSession()
	if err != nil {
		return err
	}
	ctx, cancel := cmdContext()
	defer cancel()

	res, err := s.auth.GetCurrentUser(ctx, connect.NewRequest(&api.GetCurrentUserRequest{}))
	if err != nil {
		return err
	}
	u := res.Msg.User
	fmt.Printf("%s <%s>\n", u.DisplayName, u.Email)
	fmt.Println(cli.Muted(fmt.Sprintf("member since %s", time.Unix(u.CreatedAt, 0).Format("2006-01-02"))))
	return nil
}

// saveLogin stores the session token in the config file. A --server
// override sticks, so later commands talk to the same server the
// token came from.
func saveLogin(cfg cli.Config, user *api.User, token string) error {
	cfg.Auth.Email = user.Email
	cfg.Auth.Token = token
	if flagServer != "" {
		cfg.Server.URL = flagServer
	}
	if err := cli.SaveConfig(cfg); err != nil {
		return err
	}
	fmt.Printf("Logged in as %s\n", user.Email)
	return nil
}

// promptPassword reads a password without echoing when stdin is a
// terminal, and falls back to a plain line read when it is not (so
// piping a password in still works).
func promptPassword() (string, error) {
	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		fmt.Fprint(os.Stderr, "Password: ")
		raw, err := term.ReadPassword(fd)
		fmt.Fprintln(os.Stderr)
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(raw), nil
	}

	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
