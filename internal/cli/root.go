// Package cli wires the hourbill commands. Everything here is thin
// glue: flags and config resolve into values that are handed to the
// pipeline, the task store, or the preview server.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/angelofallars/hourbill/internal/config"
	"github.com/angelofallars/hourbill/internal/store"
	"github.com/angelofallars/hourbill/internal/timesheet"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "hourbill",
	Short: "Track billable hours and generate client invoices",
	Long: `hourbill keeps track of the work you do and generates PDF invoices
for your clients automatically.

Work entries come from a local task store (the "add" command) or from a
spreadsheet workbook configured per client. "generate" turns a client's
unbilled entries into a PDF via the invoice rendering API and saves it
under the client's folder.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml",
		"path to the configuration file")
}

func loadConfig() (*config.Config, error) {
	return config.Load(cfgFile)
}

// openSource picks the record source for a client: its configured
// spreadsheet if one is set, the local task store otherwise. The
// returned closer must be called when the run is done.
func openSource(cfg *config.Config, client config.ClientProfile) (timesheet.Source, func() error, error) {
	if client.Sheet != "" {
		return timesheet.NewXLSXSource(client.Sheet), func() error { return nil }, nil
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return nil, nil, err
	}
	return st.ClientSource(client.Name), st.Close, nil
}
