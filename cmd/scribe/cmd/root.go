package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"scribe/cmd/scribe/cmd/history"
	"scribe/cmd/scribe/cmd/serve"
	"scribe/cmd/scribe/cmd/submit"
	"scribe/cmd/scribe/cmd/version"
)

var (
	Verbose    bool
	ConfigFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Submit audio or video files for transcription, or serve the transcription API",
	Long: `Submit audio or video files for transcription, or serve the transcription API.

- "scribe submit" posts one file to the configured endpoint and prints the transcript
- "scribe serve" runs the transcription service and its web form
- Every request the service handles is recorded and can be listed or exported with "scribe history".`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(submit.Cmd)
	rootCmd.AddCommand(serve.Cmd)
	rootCmd.AddCommand(history.Cmd)
	rootCmd.AddCommand(version.Cmd)

	rootCmd.PersistentFlags().BoolVarP(&Verbose, "verbose", "V", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&ConfigFile, "config", "c", "", "config file (default is ./scribe.yaml when present)")
}
