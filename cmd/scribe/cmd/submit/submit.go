package submit

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"scribe/cmd/scribe/cmd/cmdutil"
	"scribe/internal/app"
	"scribe/internal/app/api/transcribe"
	"scribe/internal/app/form"
)

var Cmd = NewCmd()

// NewCmd builds the submit command with its own flag set
func NewCmd() *cobra.Command {
	var (
		filePath      string
		token         string
		promptContext string
		endpoint      string
		contentType   string
		noProgress    bool
	)

	cmd := &cobra.Command{
		Use:   "submit",
		Short: "Send one audio or video file for transcription and print the result",
		Long: `Send one audio or video file for transcription and print the result

- The file is posted as multipart form data to <endpoint>/transcribe/
- The token is sent as "Authorization: Bearer <token>"
- The optional context is passed to the transcription prompt`,
		Example: `  scribe submit --file meeting.mp3 --token $SCRIBE_TOKEN --context "Weekly sync"`,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, logger, err := cmdutil.Setup(cmd)
			if err != nil {
				return err
			}
			defer logger.Sync()

			if endpoint != "" {
				settings.Endpoint = endpoint
				if err := settings.Validate(); err != nil {
					return err
				}
			}
			if token == "" {
				token = os.Getenv("SCRIBE_TOKEN")
			}

			input := form.SubmissionInput{APIToken: token, PromptContext: promptContext}
			if filePath != "" {
				file, err := os.Open(filePath)
				if err != nil {
					return fmt.Errorf("failed to open media file: %w", err)
				}
				defer file.Close()

				name := filepath.Base(filePath)
				input.File = &form.File{
					Name:        name,
					ContentType: transcribe.DetectContentType(name, contentType),
					Content:     file,
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			progress := !noProgress && isTTY(cmd.ErrOrStderr())
			view := newTerminalView(input, cmd.OutOrStdout(), cmd.ErrOrStderr(), progress)
			return app.InitializeFormHandler(settings, logger).Submit(ctx, view)
		},
	}

	cmd.Flags().StringVarP(&filePath, "file", "f", "", "audio or video file to transcribe")
	cmd.Flags().StringVarP(&token, "token", "t", "", "API token (default $SCRIBE_TOKEN)")
	cmd.Flags().StringVar(&promptContext, "context", "", "optional context for the transcription prompt")
	cmd.Flags().StringVarP(&endpoint, "endpoint", "e", "", "service base URL (default $SCRIBE_ENDPOINT)")
	cmd.Flags().StringVar(&contentType, "content-type", "", "override the detected media type")
	cmd.Flags().BoolVar(&noProgress, "no-progress", false, "disable the loading spinner")

	return cmd
}
