package cli

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/angelofallars/hourbill/internal/invoice"
	"github.com/angelofallars/hourbill/internal/store"
)

var addCmd = &cobra.Command{
	Use:   "add HOURS DESCRIPTION",
	Short: "Record billable work in the local task store",
	Long: `Record billable work in the local task store. The entry starts out
unbilled and is picked up by the next "generate" run for the client.`,
	Args: cobra.ExactArgs(2),
	RunE: runAdd,
}

func init() {
	rootCmd.AddCommand(addCmd)
	addCmd.Flags().StringP("client", "c", "", "client the work was done for (default from config)")
	addCmd.Flags().Float64P("rate", "r", 0, "hourly rate (default is the client's configured rate)")
	addCmd.Flags().StringP("date", "d", "", "work date as YYYY-MM-DD (default today)")
	addCmd.Flags().StringP("title", "t", "", "short title shown next to the date on the invoice")
}

func runAdd(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	hours, err := strconv.ParseFloat(args[0], 64)
	if err != nil || hours < 0 {
		return fmt.Errorf("hours must be a non-negative number, got %q", args[0])
	}
	description := args[1]

	clientName, _ := cmd.Flags().GetString("client")
	client, err := cfg.Client(clientName)
	if err != nil {
		return err
	}

	rate, _ := cmd.Flags().GetFloat64("rate")
	if !cmd.Flags().Changed("rate") {
		rate = client.HourlyRate
	}
	if rate < 0 {
		return fmt.Errorf("rate must be non-negative, got %v", rate)
	}

	date := cfg.Now()
	if dateStr, _ := cmd.Flags().GetString("date"); dateStr != "" {
		date, err = time.ParseInLocation(time.DateOnly, dateStr, cfg.Location())
		if err != nil {
			return fmt.Errorf("date must look like 2024-03-03, got %q", dateStr)
		}
	}

	// The optional title travels inside the notes field, in front of
	// the delimiter the record parser splits on.
	notes := description
	if title, _ := cmd.Flags().GetString("title"); title != "" {
		notes = title + " | " + description
	}

	st, err := store.Open(cfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.Add(cmd.Context(), store.Entry{
		Client: client.Name,
		Date:   date,
		Hours:  hours,
		Rate:   rate,
		Notes:  notes,
	}); err != nil {
		return err
	}

	fmt.Printf("Recorded %s hours for %s on %s.\n",
		strconv.FormatFloat(hours, 'f', -1, 64), client.Name, invoice.PrettyDate(date))
	return nil
}
