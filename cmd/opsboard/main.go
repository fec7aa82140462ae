package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/five82/opsboard/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	root := newRootCmd(os.Stdout)
	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "opsboard: %v\n", err)
		return 1
	}
	return 0
}

// rootFlags are shared by every subcommand.
type rootFlags struct {
	configPath string
	prefsPath  string
	theme      string
	route      string
}

func newRootCmd(out io.Writer) *cobra.Command {
	var flags rootFlags
	root := &cobra.Command{
		Use:           "opsboard",
		Short:         "Freight operations back-office console",
		Long:          "opsboard is a terminal console for the /ops back office: dashboard, incidents and taxes.",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.Run(cmd.Context(), app.Options{
				ConfigPath: flags.configPath,
				PrefsPath:  flags.prefsPath,
				ThemeName:  flags.theme,
				Route:      flags.route,
			})
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&flags.configPath, "config", "", "config file (default ~/.config/opsboard/config.toml)")
	root.Flags().StringVar(&flags.prefsPath, "prefs", "", "preferences file (default ~/.config/opsboard/prefs.toml)")
	root.Flags().StringVar(&flags.theme, "theme", "", "theme to start with (Slate, Nightfox)")
	root.Flags().StringVar(&flags.route, "route", "", "route to open first, e.g. /ops/incident")

	root.AddCommand(newTableCmd(&flags))
	return root
}
