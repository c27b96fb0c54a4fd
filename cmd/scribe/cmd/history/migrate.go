package history

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"scribe/cmd/scribe/cmd/cmdutil"
	"scribe/internal/app/repository/migrate"
	"scribe/internal/app/repository/pg"
	"scribe/internal/app/repository/sqlite"
)

var (
	migrateFrom       string
	migrateTo         string
	migrateBatchSize  int
	migrateCheckpoint string
)

func init() {
	migrateCmd.Flags().StringVar(&migrateFrom, "from", "", "SQLite database to copy from (default $SCRIBE_DB_PATH)")
	migrateCmd.Flags().StringVar(&migrateTo, "to", "", "Postgres connection string (default $SCRIBE_DATABASE_URL)")
	migrateCmd.Flags().IntVar(&migrateBatchSize, "batch-size", 500, "rows per batch")
	migrateCmd.Flags().StringVar(&migrateCheckpoint, "checkpoint", "", "file recording the last copied id, to resume an interrupted run")
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Copy history from SQLite to Postgres",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		from := migrateFrom
		if from == "" {
			from = settings.Database.Path
		}
		to := migrateTo
		if to == "" {
			to = settings.Database.URL
		}
		if to == "" {
			return fmt.Errorf("no Postgres target: pass --to or set SCRIBE_DATABASE_URL")
		}

		src, err := sqlite.NewSQLiteDB(cmd.Context(), from)
		if err != nil {
			return err
		}
		defer src.Close()

		dst, err := pg.NewPostgresDB(cmd.Context(), to)
		if err != nil {
			return err
		}
		defer dst.Close()

		copied, err := migrate.Copy(cmd.Context(), src, dst, migrate.Options{
			BatchSize:      migrateBatchSize,
			CheckpointFile: migrateCheckpoint,
		}, logger)
		if err != nil {
			return err
		}

		logger.Info("Migration finished", zap.Int("copied", copied))
		fmt.Fprintf(cmd.OutOrStdout(), "migrated %d transcriptions\n", copied)
		return nil
	},
}
