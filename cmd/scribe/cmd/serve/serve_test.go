package serve

import (
	"bytes"
	stderrors "errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "scribe/internal/app/errors"
)

func TestServe_InvalidPortFlag(t *testing.T) {
	t.Setenv("SCRIBE_DB_PATH", filepath.Join(t.TempDir(), "history.db"))

	var out bytes.Buffer
	Cmd.SetOut(&out)
	Cmd.SetErr(&out)
	Cmd.SetArgs([]string{"--port", "http"})

	err := Cmd.Execute()

	require.Error(t, err)
	assert.True(t, stderrors.Is(err, apperrors.ErrInvalidConfig))
	assert.Contains(t, err.Error(), "Port")
}
