// Command admin runs maintenance tasks against the blog database:
//
//	admin rollback            revert the last applied migration
//	admin version             print the current schema version
//	admin disable <username>  disable an account and revoke its sessions
//	admin enable <username>   re-enable an account
package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"blogApp/internal/config"
	"blogApp/internal/db"
	"blogApp/repository"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "admin:", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	fs := flag.NewFlagSet("admin", flag.ContinueOnError)
	fs.SetOutput(out)
	dbPath := fs.String("db", "", "database path (defaults to DB_PATH)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errors.New("usage: admin [-db path] rollback|version|disable <username>|enable <username>")
	}

	path := *dbPath
	if path == "" {
		cfg, err := config.LoadWithDefaults()
		if err != nil {
			return err
		}
		path = cfg.Database.Path
	}
	// Schema commands must not migrate on open, or a rollback would be reapplied right away.
	open := db.Open
	if cmd := fs.Arg(0); cmd == "rollback" || cmd == "version" {
		open = db.Connect
	}
	d, err := open(path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer d.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	switch cmd := fs.Arg(0); cmd {
	case "rollback":
		v, err := db.RollbackLast(d)
		if err != nil {
			return err
		}
		if v == 0 {
			fmt.Fprintln(out, "no migrations to roll back")
			return nil
		}
		fmt.Fprintf(out, "rolled back migration %04d\n", v)
	case "version":
		v, err := db.CurrentVersion(d)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "schema version %d\n", v)
	case "disable", "enable":
		if fs.NArg() != 2 {
			return fmt.Errorf("usage: admin %s <username>", cmd)
		}
		return setDisabled(ctx, d, out, fs.Arg(1), cmd == "disable")
	default:
		return fmt.Errorf("unknown command %q", cmd)
	}
	return nil
}

// setDisabled flips the account flag. Disabling also revokes every session the user holds.
func setDisabled(ctx context.Context, d *sql.DB, out io.Writer, username string, disabled bool) error {
	u, err := repository.NewUserRepository(d).SetDisabled(ctx, username, disabled)
	if err != nil {
		return err
	}
	if u == nil {
		return fmt.Errorf("user %q not found", username)
	}
	if !disabled {
		fmt.Fprintf(out, "enabled %s\n", username)
		return nil
	}
	n, err := repository.NewSessionRepository(d).DeleteByUserID(ctx, u.ID)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "disabled %s, revoked %d session(s)\n", username, n)
	return nil
}
