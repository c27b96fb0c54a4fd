package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"path/filepath"
	"strconv"
	"strings"

	apperrors "scribe/internal/app/errors"
)

const (
	// Path is appended to the configured base URL
	Path = "/transcribe/"

	FileField          = "file"
	PromptContextField = "prompt_context"

	// UnknownErrorDetail stands in for the detail of a failure response whose body is not JSON
	UnknownErrorDetail = "Unknown error occurred. Check server logs."
)

// Request is one outbound transcription request
type Request struct {
	Token         string
	FileName      string
	ContentType   string
	Content       io.Reader
	PromptContext string
}

// Response is the success body returned by the service
type Response struct {
	Transcript string `json:"transcript"`
}

// HTTPError is returned when the service answers with a non-2xx status
type HTTPError struct {
	StatusCode int
	Message    string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("HTTP error! status: %d, Message: %s", e.StatusCode, e.Message)
}

// NetworkError wraps a transport failure; its text is the transport error's text
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// Is matches apperrors.ErrRequestFailed so callers can test for transport failures generically
func (e *NetworkError) Is(target error) bool {
	return target == apperrors.ErrRequestFailed
}

// Client posts media files to a single transcription endpoint
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option configures a Client
type Option func(*Client)

// WithHTTPClient replaces the default HTTP client
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// NewClient creates a client for baseURL + Path. No client-side timeout is applied;
// cancel the context to abandon a request.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		endpoint:   strings.TrimSuffix(baseURL, "/") + Path,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the full URL requests are sent to
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Transcribe sends the file and optional prompt context and returns the transcript
func (c *Client) Transcribe(ctx context.Context, request *Request) (*Response, error) {
	body, contentType, err := buildMultipart(request)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, body)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to create request")
	}
	req.Header.Set("Authorization", "Bearer "+request.Token)
	req.Header.Set("Content-Type", contentType)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &HTTPError{
			StatusCode: resp.StatusCode,
			Message:    failureDetail(resp),
		}
	}

	var result Response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrResponseInvalid.Error())
	}

	return &result, nil
}

// failureDetail extracts "detail" from a JSON error body. A body that is not a single JSON value
// yields UnknownErrorDetail; a missing or falsy detail ("", false, 0, null) or a non-object body
// yields the status text.
func failureDetail(resp *http.Response) string {
	dec := json.NewDecoder(resp.Body)
	var body interface{}
	if err := dec.Decode(&body); err != nil || dec.More() {
		return UnknownErrorDetail
	}

	errorData, ok := body.(map[string]interface{})
	if !ok {
		return http.StatusText(resp.StatusCode)
	}

	switch detail := errorData["detail"].(type) {
	case string:
		if detail != "" {
			return detail
		}
	case bool:
		if detail {
			return "true"
		}
	case float64:
		if detail != 0 {
			return strconv.FormatFloat(detail, 'f', -1, 64)
		}
	case nil:
	default:
		// structured details (e.g. field validation lists) are shown as compact JSON
		if encoded, err := json.Marshal(detail); err == nil {
			return string(encoded)
		}
	}

	return http.StatusText(resp.StatusCode)
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func buildMultipart(request *Request) (*bytes.Buffer, string, error) {
	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	fileName := filepath.Base(request.FileName)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="%s"; filename="%s"`, FileField, quoteEscaper.Replace(fileName)))
	header.Set("Content-Type", DetectContentType(fileName, request.ContentType))

	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, "", apperrors.Wrap(err, "failed to create form file")
	}
	if request.Content != nil {
		if _, err := io.Copy(part, request.Content); err != nil {
			return nil, "", apperrors.Wrap(err, "failed to copy file")
		}
	}

	if request.PromptContext != "" {
		if err := writer.WriteField(PromptContextField, request.PromptContext); err != nil {
			return nil, "", apperrors.Wrapf(err, "failed to write field %s", PromptContextField)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", apperrors.Wrap(err, "failed to close writer")
	}

	return &requestBody, writer.FormDataContentType(), nil
}

var mediaTypes = map[string]string{
	".aac":  "audio/aac",
	".flac": "audio/flac",
	".m4a":  "audio/mp4",
	".mp3":  "audio/mpeg",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".wav":  "audio/wav",
	".webm": "audio/webm",
	".mkv":  "video/x-matroska",
	".mov":  "video/quicktime",
	".mp4":  "video/mp4",
}

// DetectContentType returns explicit when set, otherwise guesses from the file extension
func DetectContentType(fileName, explicit string) string {
	if explicit != "" {
		return explicit
	}
	ext := strings.ToLower(filepath.Ext(fileName))
	if known, ok := mediaTypes[ext]; ok {
		return known
	}
	if byExt := mime.TypeByExtension(ext); byExt != "" {
		return byExt
	}
	return "application/octet-stream"
}
