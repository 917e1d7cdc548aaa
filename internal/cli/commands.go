// Package cli implements the kiroku command-line interface on cobra.
package cli

import (
	"time"

	"github.com/araddon/dateparse"
	"github.com/spf13/cobra"

	"github.com/ayutaki/kiroku/internal/client"
	"github.com/ayutaki/kiroku/internal/config"
	"github.com/ayutaki/kiroku/internal/logger"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	server  string
	token   string
	storage string
	cfgFile string
	verbose bool
}

// New builds the root command with all subcommands attached.
func New() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "kiroku",
		Short:         "Encrypted diary and calendar that works offline",
		Long:          "kiroku keeps an encrypted diary and calendar. Entries written while\noffline are queued locally and pushed to the server when it is reachable.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&ro.server, "server", "", "base URL of the diary API")
	flags.StringVar(&ro.token, "token", "", "bearer token for the diary API")
	flags.StringVar(&ro.storage, "storage", "", "directory for local durable storage")
	flags.StringVarP(&ro.cfgFile, "config", "c", "", "path to a JSON config file")
	flags.BoolVarP(&ro.verbose, "verbose", "v", false, "enable debug logging")

	addAdd(cmd, ro)
	addRemove(cmd, ro)
	addList(cmd, ro)
	addSync(cmd, ro)
	addStatus(cmd, ro)
	addTemplate(cmd, ro)
	addRecurring(cmd, ro)

	return cmd
}

// newApp assembles the client from persistent flags layered over env and
// file configuration.
func newApp(ro *rootOptions) (*client.App, error) {
	log := logger.New("kiroku")
	if !ro.verbose {
		log = logger.Nop()
	}

	overrides := &config.Config{
		JSONFilePath: ro.cfgFile,
	}
	overrides.Server.Address = ro.server
	overrides.Server.Token = ro.token
	overrides.Storage.Path = ro.storage

	return client.NewApp(overrides, log)
}

// parseDay normalizes a user-supplied date to "2006-01-02", defaulting to
// today. dateparse keeps the accepted formats loose ("2025-06-10",
// "06/10/2025", "Jun 10 2025" all work).
func parseDay(raw string) (string, error) {
	if raw == "" {
		return time.Now().Format("2006-01-02"), nil
	}
	t, err := dateparse.ParseLocal(raw)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01-02"), nil
}

// parseMonth normalizes a user-supplied month to "2006-01", defaulting to
// the current month.
func parseMonth(raw string) (string, error) {
	if raw == "" {
		return time.Now().Format("2006-01"), nil
	}
	if t, err := time.Parse("2006-01", raw); err == nil {
		return t.Format("2006-01"), nil
	}
	t, err := dateparse.ParseLocal(raw)
	if err != nil {
		return "", err
	}
	return t.Format("2006-01"), nil
}
