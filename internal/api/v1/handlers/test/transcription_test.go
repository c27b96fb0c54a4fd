package test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"scribe/internal/api/errors"
	"scribe/internal/api/middleware"
	"scribe/internal/api/v1/dto"
	"scribe/internal/api/v1/routes"
	"scribe/internal/api/v1/services"
	"scribe/internal/app/testutil"
)

const testToken = "s3cret"

func setupTestRouter(t *testing.T, maxUploadBytes int64) (*gin.Engine, *testutil.MockServices) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(middleware.RequestID())

	mockServices := testutil.NewMockServices(t)
	container := &routes.ServiceContainer{
		TranscriptionService: mockServices.TranscriptionService,
		ExportService:        mockServices.ExportService,
		AuthTokens:           []string{testToken},
		MaxUploadBytes:       maxUploadBytes,
	}
	routes.RegisterTranscribeRoute(router, container)
	routes.RegisterRoutes(router.Group("/api/v1"), container)
	return router, mockServices
}

func multipartBody(t *testing.T, fileName, contentType string, content []byte, promptContext string) (*bytes.Buffer, string) {
	t.Helper()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	if fileName != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	if promptContext != "" {
		require.NoError(t, writer.WriteField("prompt_context", promptContext))
	}
	require.NoError(t, writer.Close())
	return body, writer.FormDataContentType()
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestTranscriptionHandler_Transcribe(t *testing.T) {
	tests := []struct {
		name           string
		fileName       string
		contentType    string
		promptContext  string
		authHeader     string
		setupMocks     func(*testutil.MockServices)
		expectedStatus int
		validateBody   func(*testing.T, map[string]interface{})
	}{
		{
			name:          "successful transcription",
			fileName:      "meeting.mp3",
			contentType:   "audio/mpeg",
			promptContext: "Board meeting",
			authHeader:    "Bearer " + testToken,
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, mock.MatchedBy(func(in *services.TranscribeInput) bool {
					return in.FileName == "meeting.mp3" &&
						in.ContentType == "audio/mpeg" &&
						in.PromptContext == "Board meeting" &&
						in.RequestID != ""
				})).Return(&dto.TranscribeResponse{Transcript: "Speaker 1 opened the meeting."}, nil)
			},
			expectedStatus: http.StatusOK,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Speaker 1 opened the meeting.", body["transcript"])
			},
		},
		{
			name:           "missing authorization header",
			fileName:       "meeting.mp3",
			contentType:    "audio/mpeg",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnauthorized,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, middleware.DetailNotAuthenticated, body["detail"])
			},
		},
		{
			name:           "wrong token",
			fileName:       "meeting.mp3",
			contentType:    "audio/mpeg",
			authHeader:     "Bearer nope",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnauthorized,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, middleware.DetailInvalidCredentials, body["detail"])
			},
		},
		{
			name:           "missing file",
			authHeader:     "Bearer " + testToken,
			promptContext:  "no file here",
			setupMocks:     func(ms *testutil.MockServices) {},
			expectedStatus: http.StatusUnprocessableEntity,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "validation", body["kind"])
				assert.NotNil(t, body["details"])
			},
		},
		{
			name:        "service rejects file type",
			fileName:    "notes.txt",
			contentType: "text/plain",
			authHeader:  "Bearer " + testToken,
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, mock.Anything).
					Return(nil, errors.NewBadRequestError(services.DetailInvalidFileType))
			},
			expectedStatus: http.StatusBadRequest,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, services.DetailInvalidFileType, body["detail"])
			},
		},
		{
			name:        "upstream failure",
			fileName:    "meeting.mp3",
			contentType: "audio/mpeg",
			authHeader:  "Bearer " + testToken,
			setupMocks: func(ms *testutil.MockServices) {
				ms.TranscriptionService.On("Transcribe", mock.Anything, mock.Anything).
					Return(nil, errors.NewUpstreamError("Google API Error: 503 UNAVAILABLE"))
			},
			expectedStatus: http.StatusInternalServerError,
			validateBody: func(t *testing.T, body map[string]interface{}) {
				assert.Equal(t, "Google API Error: 503 UNAVAILABLE", body["detail"])
				assert.NotEmpty(t, body["request_id"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, mockServices := setupTestRouter(t, 0)
			tt.setupMocks(mockServices)

			body, contentType := multipartBody(t, tt.fileName, tt.contentType, []byte("audio"), tt.promptContext)
			req := httptest.NewRequest(http.MethodPost, "/transcribe/", body)
			req.Header.Set("Content-Type", contentType)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			tt.validateBody(t, decode(t, w))
			if tt.expectedStatus == http.StatusUnauthorized {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
			mockServices.TranscriptionService.AssertExpectations(t)
		})
	}
}

func TestTranscriptionHandler_Transcribe_TooLarge(t *testing.T) {
	router, mockServices := setupTestRouter(t, 1024)

	body, contentType := multipartBody(t, "long.wav", "audio/wav", bytes.Repeat([]byte("a"), 4096), "")
	req := httptest.NewRequest(http.MethodPost, "/transcribe/", body)
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	mockServices.TranscriptionService.AssertNotCalled(t, "Transcribe", mock.Anything, mock.Anything)
}

func TestTranscriptionHandler_List(t *testing.T) {
	router, mockServices := setupTestRouter(t, 0)
	created := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	mockServices.TranscriptionService.On("ListTranscriptions", mock.Anything, dto.ListTranscriptionsQuery{Limit: 5}).
		Return(&dto.TranscriptionListResponse{
			Transcriptions: []dto.TranscriptionResponse{{ID: 7, FileName: "a.mp3", Status: dto.StatusCompleted, CreatedAt: created}},
			Count:          1,
		}, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions?limit=5", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, float64(1), body["count"])
	items := body["transcriptions"].([]interface{})
	assert.Equal(t, "a.mp3", items[0].(map[string]interface{})["file_name"])
}

func TestTranscriptionHandler_List_InvalidLimit(t *testing.T) {
	router, _ := setupTestRouter(t, 0)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/transcriptions?limit=1000", nil)
	req.Header.Set("Authorization", "Bearer "+testToken)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	body := decode(t, w)
	assert.Equal(t, "is too large", body["details"].(map[string]interface{})["limit"])
}
