package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/jrsteele09/go-api-skeleton/internal/config"
	apperrors "github.com/jrsteele09/go-api-skeleton/internal/errors"
	"github.com/jrsteele09/go-api-skeleton/internal/store"
	"github.com/jrsteele09/go-api-skeleton/internal/utils"
	"github.com/jrsteele09/go-api-skeleton/users"
	"github.com/pkg/errors"
	"golang.org/x/term"
)

// readPassword is a test seam for term.ReadPassword.
var readPassword = func() ([]byte, error) {
	return term.ReadPassword(int(os.Stdin.Fd()))
}

const usage = `usage: manage <command> [flags]

commands:
  migrate      apply database migrations
  createuser   create a user account
  listusers    list user accounts
  deleteuser   delete a user account
  settings     print the effective configuration`

type app struct {
	cfg *config.Config
	out io.Writer
}

func newApp(cfg *config.Config, out io.Writer) *app {
	return &app{cfg: cfg, out: out}
}

func (a *app) run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New(usage)
	}
	cmd, rest := args[0], args[1:]
	switch cmd {
	case "migrate":
		return a.migrate(ctx)
	case "createuser":
		return a.createUser(ctx, rest)
	case "listusers":
		return a.listUsers(ctx)
	case "deleteuser":
		return a.deleteUser(ctx, rest)
	case "settings":
		return a.settings()
	default:
		return errors.Errorf("unknown command %q\n%s", cmd, usage)
	}
}

func (a *app) userService(ctx context.Context) (*users.Service, io.Closer, error) {
	repo, closer, err := store.Open(ctx, a.cfg.GetDatabaseURL(), true)
	if err != nil {
		return nil, nil, err
	}
	hasher, err := users.NewHasher(a.cfg.GetPasswordHashCost())
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	svc, err := users.NewService(repo, hasher, users.NewScopes(a.cfg.GetValidScopes()...))
	if err != nil {
		_ = closer.Close()
		return nil, nil, err
	}
	return svc, closer, nil
}

func (a *app) migrate(ctx context.Context) error {
	_, closer, err := store.Open(ctx, a.cfg.GetDatabaseURL(), true)
	if err != nil {
		return err
	}
	defer closer.Close()
	fmt.Fprintln(a.out, "migrations applied")
	return nil
}

func (a *app) createUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("createuser", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "email address (required)")
	name := fs.String("name", "", "display name")
	password := fs.String("password", "", "password; prompted for when empty")
	scopes := fs.String("scopes", "", "comma separated scopes")
	superuser := fs.Bool("superuser", false, "grant superuser")
	disabled := fs.Bool("disabled", false, "create the account disabled")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *email == "" {
		return errors.Wrap(apperrors.ErrInvalidInput, "--email is required")
	}

	if *password == "" {
		p, err := a.promptPassword()
		if err != nil {
			return err
		}
		*password = p
	}

	svc, closer, err := a.userService(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	u, err := svc.CreateUser(ctx, users.UserCreate{
		Email:     *email,
		Name:      *name,
		Password:  *password,
		Scopes:    users.ParseScopes(*scopes),
		Disabled:  utils.Ptr(*disabled),
		Superuser: *superuser,
	})
	if errors.Is(err, apperrors.ErrDuplicateEmail) {
		return errors.Errorf("a user with email %q already exists", *email)
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "created user %s (%s)\n", u.Email, u.ID)
	return nil
}

func (a *app) promptPassword() (string, error) {
	fmt.Fprint(a.out, "Enter password: ")
	first, err := readPassword()
	fmt.Fprintln(a.out)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	fmt.Fprint(a.out, "Confirm password: ")
	second, err := readPassword()
	fmt.Fprintln(a.out)
	if err != nil {
		return "", errors.Wrap(err, "read password")
	}
	if string(first) != string(second) {
		return "", apperrors.ErrPasswordMismatch
	}
	return string(first), nil
}

func (a *app) listUsers(ctx context.Context) error {
	svc, closer, err := a.userService(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	list, err := svc.ListUsers(ctx)
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "EMAIL\tNAME\tSCOPES\tDISABLED\tSUPERUSER")
	for _, u := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", u.Email, u.Name, u.Scopes.String(), u.Disabled, u.Superuser)
	}
	return tw.Flush()
}

func (a *app) deleteUser(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("deleteuser", flag.ContinueOnError)
	fs.SetOutput(a.out)
	email := fs.String("email", "", "email address (required)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if strings.TrimSpace(*email) == "" {
		return errors.Wrap(apperrors.ErrInvalidInput, "--email is required")
	}

	svc, closer, err := a.userService(ctx)
	if err != nil {
		return err
	}
	defer closer.Close()

	deleted, err := svc.DeleteUser(ctx, *email)
	if err != nil {
		return err
	}
	if !deleted {
		return errors.Wrapf(apperrors.ErrNotFound, "user %q", *email)
	}
	fmt.Fprintf(a.out, "deleted user %s\n", *email)
	return nil
}

func (a *app) settings() error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(a.cfg.Redacted())
}
