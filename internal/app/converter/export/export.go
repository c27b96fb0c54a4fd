package export

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/tealeg/xlsx"

	"scribe/internal/app/model"
)

// SheetName is the single sheet written by ToExcel
const SheetName = "Transcriptions"

// ContentType of the produced workbook
const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

var headers = []string{
	"ID", "Created At", "File Name", "MIME Type", "File Size", "Provider", "Model",
	"Prompt Context", "Transcript", "Error Message", "Archive Key", "Duration (ms)",
}

// ToExcel builds a workbook with one row per transcription
func ToExcel(transcriptions []model.Transcription) (*xlsx.File, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(SheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to add sheet: %w", err)
	}

	headerRow := sheet.AddRow()
	for _, h := range headers {
		headerRow.AddCell().Value = h
	}

	for _, t := range transcriptions {
		row := sheet.AddRow()
		row.AddCell().Value = strconv.FormatInt(t.ID, 10)
		row.AddCell().Value = t.CreatedAt.Format(time.RFC3339)
		row.AddCell().Value = t.FileName
		row.AddCell().Value = t.MimeType
		row.AddCell().SetInt64(t.FileSize)
		row.AddCell().Value = t.Provider
		row.AddCell().Value = t.Model
		row.AddCell().Value = t.PromptContext
		row.AddCell().Value = t.Transcript
		row.AddCell().Value = t.ErrorMessage
		row.AddCell().Value = t.ArchiveKey
		row.AddCell().SetInt64(t.DurationMs)
	}

	return file, nil
}

// WriteExcel streams the workbook to w
func WriteExcel(w io.Writer, transcriptions []model.Transcription) error {
	file, err := ToExcel(transcriptions)
	if err != nil {
		return err
	}
	return file.Write(w)
}
