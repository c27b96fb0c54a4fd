package handlers

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/gin-gonic/gin"
)

const indexFile = "index.html"

// StaticHandler serves the form page and its assets
type StaticHandler struct {
	files fs.FS
	index []byte
}

// NewStaticHandler renders index.html once with the endpoint the form posts to
func NewStaticHandler(files fs.FS, endpoint string) (*StaticHandler, error) {
	tmpl, err := template.ParseFS(files, indexFile)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", indexFile, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, struct{ Endpoint string }{Endpoint: strings.TrimRight(endpoint, "/")}); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", indexFile, err)
	}

	return &StaticHandler{
		files: files,
		index: buf.Bytes(),
	}, nil
}

// ServeIndex handles GET /
func (h *StaticHandler) ServeIndex(c *gin.Context) {
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, getContentType(indexFile), h.index)
}

// ServeStatic handles GET /static/*filepath
func (h *StaticHandler) ServeStatic(c *gin.Context) {
	name := strings.TrimPrefix(path.Clean("/"+c.Param("filepath")), "/")
	if name == "" || name == indexFile {
		h.ServeIndex(c)
		return
	}

	data, err := fs.ReadFile(h.files, name)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}

	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, getContentType(name), data)
}

// getContentType returns the appropriate content type for a file
func getContentType(name string) string {
	switch strings.ToLower(path.Ext(name)) {
	case ".html":
		return "text/html; charset=utf-8"
	case ".css":
		return "text/css; charset=utf-8"
	case ".js":
		return "application/javascript"
	case ".json":
		return "application/json"
	case ".png":
		return "image/png"
	case ".svg":
		return "image/svg+xml"
	case ".ico":
		return "image/x-icon"
	default:
		return "application/octet-stream"
	}
}
