package history

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"scribe/cmd/scribe/cmd/cmdutil"
	"scribe/internal/api/v1/dto"
	"scribe/internal/app"
	"scribe/internal/app/model"
)

var listLimit int

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20, "number of entries to show")
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the most recent transcriptions, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := cmdutil.LoadSettings(cmd)
		if err != nil {
			return err
		}

		dao, cleanup, err := app.InitializeTranscriptionDAO(cmd.Context(), settings)
		if err != nil {
			return err
		}
		defer cleanup()

		transcriptions, err := dao.List(cmd.Context(), listLimit)
		if err != nil {
			return err
		}
		return printTable(cmd, transcriptions)
	},
}

func printTable(cmd *cobra.Command, transcriptions []model.Transcription) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tCREATED\tFILE\tPROVIDER\tSTATUS\tDURATION")
	for i := range transcriptions {
		t := &transcriptions[i]
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\n",
			t.ID,
			t.CreatedAt.Local().Format(time.DateTime),
			t.FileName,
			t.Provider,
			dto.DetermineStatus(t),
			(time.Duration(t.DurationMs) * time.Millisecond).String(),
		)
	}
	return w.Flush()
}
