package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/meuponto/internal/buildinfo"
	"github.com/dmitrijs2005/meuponto/internal/client/config"
	"github.com/spf13/cobra"
)

// needsApp reports whether cmd works on local data.
func needsApp(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		switch c.Name() {
		case "version", "help", "completion":
			return false
		}
	}
	return true
}

// NewRootCommand builds the meuponto command tree. Commands that work on
// local data get a ready App, built from the persistent flags before they
// run. The returned function closes that App, if one was built.
func NewRootCommand(opts Options) (*cobra.Command, func() error) {
	opts = opts.withDefaults()
	var app *App
	closeApp := func() error {
		if app == nil {
			return nil
		}
		err := app.Close()
		app = nil
		return err
	}

	root := &cobra.Command{
		Use:   "meuponto",
		Short: "meuponto is a personal time clock with an hour bank",
		Long: `meuponto records the clock-in and clock-out times of each working day,
tracks progress against the daily goal (8h on Fridays, 9h otherwise) and keeps
a running hour bank. Data stays in a local SQLite file.

Run without a subcommand to open the interactive shell.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !needsApp(cmd) {
				return nil
			}
			cfg, err := config.LoadConfig(cmd.Flags())
			if err != nil {
				return err
			}
			app, err = NewApp(cmd.Context(), cfg, opts)
			return err
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			app.Shell(cmd.Context())
			return nil
		},
	}
	root.SetIn(opts.In)
	root.SetOut(opts.Out)
	root.SetErr(opts.Err)
	config.RegisterFlags(root.PersistentFlags())

	var (
		at, date string
		limit    int
		force    bool
	)

	clockCmd := &cobra.Command{
		Use:     "clock",
		Aliases: []string{"c"},
		Short:   "Clock in or out now, or at --at/--date",
		Example: `  meuponto clock
  meuponto clock --at 08:30
  meuponto clock --at 17:45 --date 2024-01-15`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ts, err := clockTime(app.now(), date, at)
			if err != nil {
				return err
			}
			return app.ClockIn(cmd.Context(), ts)
		},
	}
	clockCmd.Flags().StringVar(&at, "at", "", "time of day HH:MM (default now)")
	clockCmd.Flags().StringVar(&date, "date", "", "day YYYY-MM-DD (default today)")

	historyCmd := &cobra.Command{
		Use:     "history",
		Aliases: []string{"h"},
		Short:   "List day records, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.History(cmd.Context(), limit)
		},
	}
	historyCmd.Flags().IntVarP(&limit, "limit", "n", 0, "show at most N days (0 = all)")

	deleteCmd := &cobra.Command{
		Use:   "delete DAY",
		Short: "Delete the record of a day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Delete(cmd.Context(), args[0], force)
		},
	}
	resetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Erase the profile and every record",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Reset(cmd.Context(), force)
		},
	}
	demoCmd := &cobra.Command{
		Use:   "demo",
		Short: "Replace local data with a demo profile and week",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.Demo(cmd.Context(), force)
		},
	}
	for _, c := range []*cobra.Command{deleteCmd, resetCmd, demoCmd} {
		c.Flags().BoolVarP(&force, "yes", "y", false, "do not ask for confirmation")
	}

	root.AddCommand(
		&cobra.Command{
			Use:   "init",
			Short: "Create the local profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Init(cmd.Context())
			},
		},
		clockCmd,
		&cobra.Command{
			Use:     "status",
			Aliases: []string{"s"},
			Short:   "Show today's timeline and the hour bank",
			Args:    cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Status(cmd.Context())
			},
		},
		historyCmd,
		&cobra.Command{
			Use:   "edit DAY HH:MM...",
			Short: "Replace the events of an existing day",
			Example: `  meuponto edit 2024-01-15 08:00 12:00 13:00 17:00
  meuponto edit 2024-01-15     # clears the day's events`,
			Args: cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return app.Edit(cmd.Context(), args[0], args[1:])
			},
		},
		deleteCmd,
		&cobra.Command{
			Use:   "profile",
			Short: "Show and change the profile",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return app.Profile(cmd.Context())
			},
		},
		resetCmd,
		demoCmd,
		&cobra.Command{
			Use:   "shell",
			Short: "Open the interactive shell",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				app.Shell(cmd.Context())
				return nil
			},
		},
		&cobra.Command{
			Use:   "version",
			Short: "Print build information",
			Args:  cobra.NoArgs,
			Run: func(cmd *cobra.Command, _ []string) {
				buildinfo.PrintBuildData(cmd.OutOrStdout())
			},
		},
	)

	return root, closeApp
}

// Execute runs the command tree on args and returns the process exit code.
func Execute(ctx context.Context, args []string, opts Options) int {
	opts = opts.withDefaults()
	root, closeApp := NewRootCommand(opts)
	root.SetArgs(args)

	err := root.ExecuteContext(ctx)
	if cerr := closeApp(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(opts.Err, "Error:", err)
		return exitCode(err)
	}
	return 0
}

func exitCode(err error) int {
	if errors.Is(err, errCancelled) {
		return 2
	}
	return 1
}
