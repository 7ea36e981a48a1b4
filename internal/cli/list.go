package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/angelofallars/hourbill/internal/timesheet"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List a client's unbilled work",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().StringP("client", "c", "", "client to list work for (default from config)")
}

func runList(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	clientName, _ := cmd.Flags().GetString("client")
	client, err := cfg.Client(clientName)
	if err != nil {
		return err
	}

	src, closeSrc, err := openSource(cfg, client)
	if err != nil {
		return err
	}
	defer closeSrc()

	recs, err := src.Records(cmd.Context())
	if err != nil {
		return err
	}

	unbilled := timesheet.SelectUnbilled(recs)
	if len(unbilled) == 0 {
		fmt.Printf("No unbilled work for %s.\n", client.Name)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DATE\tHOURS\tRATE\tNOTES")
	for _, rec := range unbilled {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", rec.Date, rec.Hours, rec.Rate, rec.Notes)
	}
	return w.Flush()
}
