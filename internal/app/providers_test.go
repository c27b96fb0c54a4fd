package app

import (
	"context"
	stderrors "errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	_ "scribe/internal/app/api/gemini"
	apperrors "scribe/internal/app/errors"
	"scribe/internal/app/form"
	"scribe/internal/app/repository/sqlite"
	"scribe/internal/app/storage/archive"
	"scribe/internal/config"
)

func testSettings(t *testing.T) *config.Settings {
	settings := config.Default()
	settings.Server.Environment = "test"
	settings.Database.Path = filepath.Join(t.TempDir(), "history.db")
	settings.Provider.GeminiAPIKey = "test-key"
	return settings
}

func TestProvideTranscriptionDAO_DefaultsToSQLite(t *testing.T) {
	dao, cleanup, err := provideTranscriptionDAO(context.Background(), testSettings(t))
	require.NoError(t, err)
	defer cleanup()

	_, ok := dao.(*sqlite.SQLiteDB)
	assert.True(t, ok)
}

func TestProvideTranscriber_RequiresKey(t *testing.T) {
	settings := testSettings(t)
	settings.Provider.GeminiAPIKey = ""

	_, err := provideTranscriber(settings, zap.NewNop())
	assert.True(t, stderrors.Is(err, apperrors.ErrMissingAPIKey))
}

func TestProvideArchiver_DisabledWithoutEndpoint(t *testing.T) {
	archiver, err := provideArchiver(context.Background(), testSettings(t), zap.NewNop())
	require.NoError(t, err)
	assert.IsType(t, archive.NopArchiver{}, archiver)
}

func TestInitializeServer(t *testing.T) {
	srv, cleanup, err := InitializeServer(context.Background(), testSettings(t), zap.NewNop())
	require.NoError(t, err)
	defer cleanup()

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}

type stubView struct {
	input  form.SubmissionInput
	result string
}

func (v *stubView) Input() form.SubmissionInput          { return v.input }
func (v *stubView) SetLoading(bool)                      {}
func (v *stubView) SetSubmitBusy(bool)                   {}
func (v *stubView) HideResult()                          {}
func (v *stubView) ShowResult(text string, isError bool) { v.result = text }

func TestInitializeFormHandler(t *testing.T) {
	service := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `{"transcript": "posted"}`)
	}))
	defer service.Close()

	settings := testSettings(t)
	settings.Endpoint = service.URL
	handler := InitializeFormHandler(settings, zap.NewNop())
	require.NotNil(t, handler)
	assert.False(t, handler.Busy())

	view := &stubView{input: form.SubmissionInput{
		File:     &form.File{Name: "a.mp3", ContentType: "audio/mpeg", Content: strings.NewReader("ID3")},
		APIToken: "token",
	}}
	require.NoError(t, handler.Submit(context.Background(), view))
	assert.Equal(t, "posted", view.result)
}
