package api

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/parser"
	"github.com/kylemclaren/speed-reader/internal/segment"
)

const maxJSONBody = 4 << 20

var (
	errNoSource  = errors.New("text or url is required")
	errNoContent = errors.New("no readable text found")
)

// documentRequest names the source of a document: pasted text with an
// optional title, or an article URL.
type documentRequest struct {
	Text  string `json:"text,omitempty"`
	Title string `json:"title,omitempty"`
	URL   string `json:"url,omitempty"`
}

// resolve builds the document described by req, writing an error response
// and returning nil on failure.
func (s *Server) resolve(w http.ResponseWriter, r *http.Request, req documentRequest) *document.Document {
	switch {
	case strings.TrimSpace(req.URL) != "":
		doc, err := s.fetcher.Fetch(r.Context(), req.URL)
		if err != nil {
			s.log.Warn("article fetch failed", "url", req.URL, "error", err)
			fetchError(w, err)
			return nil
		}
		if req.Title != "" {
			doc.Title = req.Title
		}
		return doc
	case strings.TrimSpace(req.Text) != "":
		return segment.Parse(req.Text, strings.TrimSpace(req.Title))
	default:
		jsonError(w, errNoSource.Error(), http.StatusBadRequest)
		return nil
	}
}

// parseUpload reads the multipart "file" field into a document. The
// optional "title" field overrides the title found in the file.
func (s *Server) parseUpload(w http.ResponseWriter, r *http.Request) *document.Document {
	// Extra 1MB for form overhead.
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return nil
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	p, err := parser.ForFile(filename, s.reducer)
	if err != nil {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return nil
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return nil
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return nil
	}

	doc, err := p.Parse(bytes.NewReader(data), filename)
	if err != nil {
		s.log.Warn("upload parse failed", "filename", filename, "error", err)
		jsonError(w, "failed to parse file: "+err.Error(), http.StatusUnprocessableEntity)
		return nil
	}
	if doc.WordCount == 0 {
		jsonError(w, errNoContent.Error(), http.StatusUnprocessableEntity)
		return nil
	}
	if title := strings.TrimSpace(r.FormValue("title")); title != "" {
		doc.Title = title
	}
	s.log.Info("parsed upload", "filename", filename, "words", doc.WordCount)
	return doc
}

func (s *Server) handleCreateDocument(w http.ResponseWriter, r *http.Request) {
	var req documentRequest
	if err := decodeJSON(w, r, maxJSONBody, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	doc := s.resolve(w, r, req)
	if doc == nil {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}

func (s *Server) handleUploadDocument(w http.ResponseWriter, r *http.Request) {
	doc := s.parseUpload(w, r)
	if doc == nil {
		return
	}
	writeJSON(w, http.StatusOK, doc)
}
