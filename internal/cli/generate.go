package cli

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/angelofallars/hourbill/internal/service"
	"github.com/angelofallars/hourbill/pkg/invoicegen"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and save a PDF invoice from a client's unbilled work",
	RunE:  runGenerate,
}

func init() {
	rootCmd.AddCommand(generateCmd)
	generateCmd.Flags().StringP("client", "c", "", "client to invoice (default from config)")
	generateCmd.Flags().StringP("sender", "s", "", "sender profile (default from config)")
}

func runGenerate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	clientName, _ := cmd.Flags().GetString("client")
	senderName, _ := cmd.Flags().GetString("sender")

	client, err := cfg.Client(clientName)
	if err != nil {
		return err
	}
	sender, err := cfg.Sender(senderName)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(cfg, client)
	if err != nil {
		return err
	}
	defer closeSrc()

	gen := invoicegen.New(cfg.GeneratorURL, cfg.APIKey, cfg.RequestTimeout()).
		WithNow(cfg.Now)
	svc := service.NewInvoice(cfg, gen, slog.Default())

	path, err := svc.Run(cmd.Context(), src, client, sender)
	if err != nil {
		return err
	}

	fmt.Printf("Saved invoice for %s at: %s\n", client.Name, path)
	return nil
}
