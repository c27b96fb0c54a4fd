package history

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"scribe/cmd/scribe/cmd/cmdutil"
	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/services"
	"scribe/internal/app"
	apperrors "scribe/internal/app/errors"
)

var (
	outputFilePath string
	exportFormat   string
	exportLimit    int
)

func init() {
	exportCmd.Flags().StringVarP(&outputFilePath, "outputFilePath", "o", "", "set outputFilePath")
	exportCmd.Flags().StringVar(&exportFormat, "format", "", "xlsx, csv or json (default from the file extension, else xlsx)")
	exportCmd.Flags().IntVarP(&exportLimit, "limit", "n", 10000, "maximum number of entries")

	exportCmd.MarkFlagRequired("outputFilePath")
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export recorded transcriptions to excel, csv or json",
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, logger, err := cmdutil.Setup(cmd)
		if err != nil {
			return err
		}
		defer logger.Sync()

		format := exportFormat
		if format == "" {
			format = formatFromPath(outputFilePath)
		}

		exporter, cleanup, err := app.InitializeExportService(cmd.Context(), settings, logger)
		if err != nil {
			return err
		}
		defer cleanup()

		file, err := os.Create(outputFilePath)
		if err != nil {
			return apperrors.Wrap(err, apperrors.ErrFileWriteFailed.Error())
		}
		defer file.Close()

		req := dto.ExportRequest{Format: format, Limit: exportLimit}
		if err := exporter.ExportTranscriptions(cmd.Context(), req, file); err != nil {
			os.Remove(outputFilePath)
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "export finished, exported file path: %v\n", outputFilePath)
		return nil
	},
}

func formatFromPath(path string) string {
	switch ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."); ext {
	case services.FormatCSV, services.FormatJSON:
		return ext
	default:
		return services.FormatXLSX
	}
}
