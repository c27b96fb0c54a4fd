package history

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx"

	"scribe/internal/api/v1/dto"
	"scribe/internal/app/converter/export"
	"scribe/internal/app/repository/sqlite"
	"scribe/internal/app/testutil"
)

// seededDB creates a SQLite history with the shared fixtures and points SCRIBE_DB_PATH at it
func seededDB(t *testing.T) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "history.db")
	dao, err := sqlite.NewSQLiteDB(context.Background(), path)
	require.NoError(t, err)
	testutil.SeedTranscriptions(t, dao, testutil.Fixtures())
	require.NoError(t, dao.Close())

	t.Setenv("SCRIBE_DB_PATH", path)
	t.Setenv("SCRIBE_DATABASE_URL", "")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs(args)
	err := Cmd.Execute()
	return out.String(), err
}

func TestList(t *testing.T) {
	seededDB(t)

	out, err := execute(t, "list", "--limit", "2")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "interview.wav")
	assert.Contains(t, lines[2], "demo.webm")
	assert.Contains(t, lines[2], dto.StatusFailed)
}

func TestExport(t *testing.T) {
	seededDB(t)
	dir := t.TempDir()

	xlsxPath := filepath.Join(dir, "history.xlsx")
	out, err := execute(t, "export", "-o", xlsxPath)
	require.NoError(t, err)
	assert.Contains(t, out, xlsxPath)

	file, err := xlsx.OpenFile(xlsxPath)
	require.NoError(t, err)
	assert.Len(t, file.Sheet[export.SheetName].Rows, 5)

	jsonPath := filepath.Join(dir, "history.json")
	_, err = execute(t, "export", "-o", jsonPath)
	require.NoError(t, err)

	data, err := os.ReadFile(jsonPath)
	require.NoError(t, err)
	var items []dto.TranscriptionResponse
	require.NoError(t, json.Unmarshal(data, &items))
	assert.Len(t, items, 4)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, "csv", formatFromPath("out/history.CSV"))
	assert.Equal(t, "json", formatFromPath("history.json"))
	assert.Equal(t, "xlsx", formatFromPath("history.xlsx"))
	assert.Equal(t, "xlsx", formatFromPath("history"))
}

func TestMigrate_RequiresTarget(t *testing.T) {
	seededDB(t)

	_, err := execute(t, "migrate")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Postgres target")
}
