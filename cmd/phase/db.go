package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/Phase-Platform/phase/internal/db"
	"github.com/Phase-Platform/phase/internal/integrity"
	"github.com/Phase-Platform/phase/internal/seed"
)

func newDBCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
	}

	cmd.AddCommand(newDBMigrateCmd())
	cmd.AddCommand(newDBResetCmd())
	cmd.AddCommand(newDBSeedCmd())
	cmd.AddCommand(newDBVerifyCmd())
	cmd.AddCommand(newDBStatusCmd())
	return cmd
}

func newDBMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBMigrate(cmd)
		},
	}
}

func runDBMigrate(cmd *cobra.Command) error {
	_, gdb, err := connectFromConfig(cmd)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if err := db.AutoMigrate(gdb.WithContext(cmd.Context())); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Migrated %d tables\n", len(db.AllModels()))
	return nil
}

func newDBResetCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Drop every table and migrate again",
		Long: `Drops every Phase table, children first, and re-creates the empty schema.
Asks for confirmation unless --yes is given. Refuses to run without --yes when
stdin is not a terminal.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBReset(cmd, yes)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip confirmation prompt")
	return cmd
}

func runDBReset(cmd *cobra.Command, skipConfirm bool) error {
	out := cmd.OutOrStdout()
	_, gdb, err := connectFromConfig(cmd)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	if !skipConfirm {
		ok, err := confirmReset(cmd)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := db.Reset(gdb.WithContext(cmd.Context())); err != nil {
		return err
	}
	fmt.Fprintf(out, "Dropped and re-created %d tables\n", len(db.AllModels()))
	return nil
}

// confirmReset asks the user to type "yes".
func confirmReset(cmd *cobra.Command) (bool, error) {
	out := cmd.OutOrStdout()
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && !term.IsTerminal(int(f.Fd())) {
		return false, errors.New("stdin is not a terminal; pass --yes to reset")
	}

	fmt.Fprintln(out, "WARNING: This will permanently delete all Phase data.")
	fmt.Fprintln(out, "This action cannot be undone.")
	fmt.Fprintln(out)
	fmt.Fprint(out, "Type \"yes\" to confirm: ")

	scanner := bufio.NewScanner(in)
	if scanner.Scan() {
		return strings.TrimSpace(scanner.Text()) == "yes", nil
	}
	return false, nil
}

func newDBSeedCmd() *cobra.Command {
	var (
		appendRows bool
		at         string
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Populate the store with the sample data set",
		Long: `Resets the store and inserts the interlinked sample data set in one
transaction. Any failure rolls the whole run back and exits non-zero.
With --append the tables are kept, and the run fails if they hold rows.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBSeed(cmd, appendRows, at)
		},
	}

	cmd.Flags().BoolVar(&appendRows, "append", false, "keep existing tables instead of resetting")
	cmd.Flags().StringVar(&at, "now", "", "RFC 3339 time that relative fixture dates are anchored to (default: current time)")
	return cmd
}

func runDBSeed(cmd *cobra.Command, appendRows bool, at string) error {
	var now time.Time
	if at != "" {
		t, err := time.Parse(time.RFC3339, at)
		if err != nil {
			return fmt.Errorf("parse --now: %w", err)
		}
		now = t
	}

	cfg, gdb, err := connectFromConfig(cmd)
	if err != nil {
		return err
	}
	// Closed on every path, interruption included.
	defer db.Close(gdb)

	log, err := newLogger(cmd, cfg)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if appendRows {
		if err := db.AutoMigrate(gdb.WithContext(ctx)); err != nil {
			return err
		}
	}

	res, err := seed.Run(ctx, gdb, seed.Options{Append: appendRows, Now: now, Logger: &log})
	if err != nil {
		if errors.Is(ctx.Err(), context.Canceled) {
			return fmt.Errorf("seed interrupted: %w", err)
		}
		return err
	}

	out := cmd.OutOrStdout()
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "GROUP\tROWS")
	for _, g := range res.Groups {
		fmt.Fprintf(w, "%s\t%d\n", g.Name, g.Rows)
	}
	w.Flush()
	fmt.Fprintf(out, "\nSeeded %d rows in %d groups (%s)\n", res.Rows, len(res.Groups), res.Duration.Round(time.Millisecond))
	return nil
}

func newDBVerifyCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Report references that point at missing rows",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBVerify(cmd)
		},
	}
}

func runDBVerify(cmd *cobra.Command) error {
	_, gdb, err := connectFromConfig(cmd)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	dangling, err := integrity.NewChecker(gdb).Verify(cmd.Context())
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if len(dangling) == 0 {
		fmt.Fprintln(out, "All references resolve.")
		return nil
	}
	for _, d := range dangling {
		fmt.Fprintln(out, d.String())
	}
	return fmt.Errorf("%d dangling references", len(dangling))
}

func newDBStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the row count of every table",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDBStatus(cmd)
		},
	}
}

func runDBStatus(cmd *cobra.Command) error {
	_, gdb, err := connectFromConfig(cmd)
	if err != nil {
		return err
	}
	defer db.Close(gdb)

	counts, err := db.Counts(cmd.Context(), gdb)
	if err != nil {
		return err
	}
	printCounts(cmd.OutOrStdout(), counts)
	return nil
}

func printCounts(out io.Writer, counts []db.TableCount) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TABLE\tROWS")
	var total int64
	for _, c := range counts {
		fmt.Fprintf(w, "%s\t%d\n", c.Table, c.Rows)
		total += c.Rows
	}
	fmt.Fprintf(w, "total\t%d\n", total)
	w.Flush()
}
