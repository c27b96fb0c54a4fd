package history

import (
	"github.com/spf13/cobra"
)

// Cmd groups the commands that read the transcription history
var Cmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect, export or migrate recorded transcriptions",
}

func init() {
	Cmd.AddCommand(listCmd)
	Cmd.AddCommand(exportCmd)
	Cmd.AddCommand(migrateCmd)
}
