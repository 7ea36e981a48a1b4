package cli

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/angelofallars/hourbill/app"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve generated invoices on localhost for previewing",
	RunE:  runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().String("host", "localhost", "address to listen on")
	previewCmd.Flags().Uint("port", 3000, "port to listen on")
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	host, _ := cmd.Flags().GetString("host")
	port, _ := cmd.Flags().GetUint("port")

	return app.New(slog.Default(), cfg).
		WithHost(host).
		WithPort(port).
		Serve()
}
