// Package blogctl implements the privileged maintenance commands: creating a
// maintainer, minting a session token for the gRPC API and reverting the
// newest schema migration.
package blogctl

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"gorm.io/gorm"

	"multiUserBlog/internal/apperr"
	"multiUserBlog/internal/blog"
	"multiUserBlog/internal/db"
)

const (
	CmdCreateMaintainer = "create-maintainer"
	CmdIssueToken       = "issue-token"
	CmdMigrateDown      = "migrate-down"
)

// Config holds the parsed command line.
type Config struct {
	Command  string
	Name     string
	Email    string
	Password string
	UserID   int64
	Timeout  time.Duration

	// ReadPassword reads the maintainer password without echo. When nil the
	// password is read from the input like the other fields.
	ReadPassword func() (string, error)
}

// NeedsSecret reports whether the command signs tokens and therefore needs
// the production SECRET_KEY.
func (c Config) NeedsSecret() bool {
	return c.Command == CmdIssueToken
}

// App is what the commands operate on.
type App struct {
	DB   *gorm.DB
	Blog *blog.Service
}

// ParseConfig parses "<command> [flags]".
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	cfg := Config{Timeout: 30 * time.Second}
	if len(args) == 0 {
		return Config{}, fmt.Errorf("missing command; want one of %s, %s, %s", CmdCreateMaintainer, CmdIssueToken, CmdMigrateDown)
	}
	cfg.Command = args[0]
	switch cfg.Command {
	case CmdCreateMaintainer:
		fs.StringVar(&cfg.Name, "name", "", "maintainer display name (prompted when empty)")
		fs.StringVar(&cfg.Email, "email", "", "maintainer email (prompted when empty)")
		fs.StringVar(&cfg.Password, "password", "", "maintainer password (prompted when empty)")
	case CmdIssueToken:
		fs.Int64Var(&cfg.UserID, "user-id", 0, "id of the user the token is issued for")
	case CmdMigrateDown:
	default:
		return Config{}, fmt.Errorf("unknown command %q", cfg.Command)
	}
	fs.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "overall timeout")
	if err := fs.Parse(args[1:]); err != nil {
		return Config{}, err
	}
	if cfg.Command == CmdIssueToken && cfg.UserID <= 0 {
		return Config{}, errors.New("-user-id is required")
	}
	return cfg, nil
}

// Run executes cfg.Command. Missing maintainer fields are read line by line
// from in.
func Run(ctx context.Context, cfg Config, app App, in io.Reader, out io.Writer) error {
	if out == nil {
		return errors.New("output is required")
	}
	switch cfg.Command {
	case CmdCreateMaintainer:
		return createMaintainer(ctx, cfg, app, in, out)
	case CmdIssueToken:
		tok, exp, err := app.Blog.IssueToken(ctx, cfg.UserID)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "%s\n# expires %s\n", tok, exp.UTC().Format(time.RFC3339))
		return err
	case CmdMigrateDown:
		if err := db.RollbackLast(app.DB); err != nil {
			return fmt.Errorf("rollback: %w", err)
		}
		versions, err := db.AppliedVersions(app.DB)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(out, "Rolled back; applied versions now %v\n", versions)
		return err
	default:
		return fmt.Errorf("unknown command %q", cfg.Command)
	}
}

func createMaintainer(ctx context.Context, cfg Config, app App, in io.Reader, out io.Writer) error {
	var sc *bufio.Scanner
	if in != nil {
		sc = bufio.NewScanner(in)
	}
	prompt := func(label string, v *string) error {
		if *v != "" {
			return nil
		}
		if label == "password" && cfg.ReadPassword != nil {
			fmt.Fprintf(out, "Enter maintainer %s: ", label)
			pw, err := cfg.ReadPassword()
			fmt.Fprintln(out)
			if err != nil {
				return fmt.Errorf("read password: %w", err)
			}
			if pw == "" {
				return fmt.Errorf("%s is required", label)
			}
			*v = pw
			return nil
		}
		if sc == nil {
			return fmt.Errorf("%s is required", label)
		}
		fmt.Fprintf(out, "Enter maintainer %s: ", label)
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return err
			}
			return fmt.Errorf("%s is required", label)
		}
		*v = strings.TrimRight(sc.Text(), "\r")
		return nil
	}
	for _, f := range []struct {
		label string
		v     *string
	}{{"email", &cfg.Email}, {"password", &cfg.Password}, {"name", &cfg.Name}} {
		if err := prompt(f.label, f.v); err != nil {
			return err
		}
	}

	u, err := app.Blog.CreateMaintainer(ctx, blog.RegisterInput{Name: cfg.Name, Email: cfg.Email, Password: cfg.Password})
	if err != nil {
		return fmt.Errorf("create maintainer: %s", apperr.MessageOf(err))
	}
	_, err = fmt.Fprintf(out, "Maintainer user created (id=%d)\n", u.ID)
	return err
}
