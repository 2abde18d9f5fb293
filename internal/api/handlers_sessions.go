package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/kylemclaren/speed-reader/internal/document"
	"github.com/kylemclaren/speed-reader/internal/playback"
	"github.com/kylemclaren/speed-reader/internal/session"
)

// sessionRequest starts a session from text, a URL or a document produced
// by POST /api/documents.
type sessionRequest struct {
	documentRequest
	Document *document.Document `json:"document,omitempty"`
	WPM      int                `json:"wpm,omitempty"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := decodeJSON(w, r, maxJSONBody, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	doc := req.Document
	if doc != nil {
		if err := doc.Check(); err != nil {
			jsonError(w, err.Error(), http.StatusBadRequest)
			return
		}
	} else if doc = s.resolve(w, r, req.documentRequest); doc == nil {
		return
	}
	s.startSession(w, doc, req.WPM)
}

func (s *Server) handleUploadSession(w http.ResponseWriter, r *http.Request) {
	doc := s.parseUpload(w, r)
	if doc == nil {
		return
	}
	wpm := 0
	if v := r.FormValue("wpm"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			jsonError(w, "wpm must be an integer", http.StatusBadRequest)
			return
		}
		wpm = n
	}
	s.startSession(w, doc, wpm)
}

func (s *Server) startSession(w http.ResponseWriter, doc *document.Document, wpm int) {
	sess, err := s.sessions.Create(doc, wpm)
	if err != nil {
		if errors.Is(err, session.ErrCapacity) {
			jsonError(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	w.Header().Set("Location", "/api/sessions/"+sess.ID)
	writeJSON(w, http.StatusCreated, sess.View())
}

// lookup resolves the {sessionID} URL parameter, writing a 404 when the
// session is unknown or expired.
func (s *Server) lookup(w http.ResponseWriter, r *http.Request) *session.Session {
	sess, err := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return nil
	}
	return sess
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "sessionID")); err != nil {
		jsonError(w, err.Error(), http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// sessionAction applies a parameterless engine transition and responds
// with the resulting state.
func (s *Server) sessionAction(fn func(*playback.Engine)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := s.lookup(w, r)
		if sess == nil {
			return
		}
		fn(sess.Engine)
		writeJSON(w, http.StatusOK, sess.View())
	}
}

// handleSkip reads the optional ?count= query parameter; without it the
// engine's default skip applies.
func (s *Server) handleSkip(fn func(*playback.Engine, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n := 0
		if v := r.URL.Query().Get("count"); v != "" {
			var err error
			if n, err = strconv.Atoi(v); err != nil || n < 1 {
				jsonError(w, "count must be a positive integer", http.StatusBadRequest)
				return
			}
		}
		sess := s.lookup(w, r)
		if sess == nil {
			return
		}
		fn(sess.Engine, n)
		writeJSON(w, http.StatusOK, sess.View())
	}
}

func (s *Server) handleSetSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		WPM *int `json:"wpm"`
	}
	if err := decodeJSON(w, r, 1024, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.WPM == nil {
		jsonError(w, "wpm is required", http.StatusBadRequest)
		return
	}
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	sess.Engine.SetSpeed(*req.WPM)
	writeJSON(w, http.StatusOK, sess.View())
}

func (s *Server) handleSeek(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Index *int `json:"index"`
	}
	if err := decodeJSON(w, r, 1024, &req); err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Index == nil {
		jsonError(w, "index is required", http.StatusBadRequest)
		return
	}
	sess := s.lookup(w, r)
	if sess == nil {
		return
	}
	sess.Engine.GoToIndex(*req.Index)
	writeJSON(w, http.StatusOK, sess.View())
}
