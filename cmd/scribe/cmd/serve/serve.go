package serve

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scribe/cmd/scribe/cmd/cmdutil"
	"scribe/internal/app"
)

var (
	host string
	port string
)

func init() {
	Cmd.Flags().StringVar(&host, "host", "", "listen host (default $SCRIBE_HOST)")
	Cmd.Flags().StringVarP(&port, "port", "p", "", "listen port (default $SCRIBE_PORT or 8000)")
}

// Cmd represents the serve command
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the transcription service and its web form",
	Long: `Run the transcription service and its web form

- POST /transcribe/ accepts an audio or video file and returns {"transcript": "..."}
- GET / serves the upload form, GET /metrics exposes Prometheus metrics
- Every request is recorded in SQLite, or Postgres when SCRIBE_DATABASE_URL is set`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		if host != "" {
			settings.Server.Host = host
		}
		if port != "" {
			settings.Server.Port = port
		}
		if err := settings.Validate(); err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		srv, cleanup, err := app.InitializeServer(ctx, settings, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		logger.Info("Transcription provider configured",
			zap.String("provider", settings.Provider.Name),
			zap.Bool("archive", settings.Archive.Enabled()),
			zap.Bool("postgres", settings.Database.URL != ""),
		)
		return srv.Run(ctx)
	},
}
