package server

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/coffeetier/pkg/errors"
	"github.com/matzehuels/coffeetier/pkg/pipeline"
	"github.com/matzehuels/coffeetier/pkg/session"
	"github.com/matzehuels/coffeetier/pkg/tier"
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessionOrNew(r)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	if err := s.saveSession(w, r, sess); err != nil {
		s.internalError(w, r, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, pageData{Draft: sess.Draft})
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	sess, err := s.sessionOrNew(r)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	sess.Draft = draftFromForm(r)
	if err := s.saveSession(w, r, sess); err != nil {
		s.internalError(w, r, err)
		return
	}

	tables, err := s.runner.Preview(r.Context(), sess.Draft)
	if err != nil {
		s.userError(w, r, sess.Draft, err)
		return
	}
	s.renderPage(w, r, http.StatusOK, pageData{Draft: sess.Draft, Preview: tables})
}

func (s *Server) handleDownload(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.existingSession(w, r)
	if !ok {
		return
	}
	art, err := s.runner.Generate(r.Context(), sess.Draft)
	if err != nil {
		s.userError(w, r, sess.Draft, err)
		return
	}
	writeArtifact(w, art, "attachment")
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	c, err := tier.ParseCategory(chi.URLParam(r, "category"))
	if err != nil {
		http.NotFound(w, r)
		return
	}
	sess, ok := s.existingSession(w, r)
	if !ok {
		return
	}
	art, err := s.runner.Table(r.Context(), c, sess.Draft)
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	writeArtifact(w, art, "inline")
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(CookieName); err == nil {
		if err := s.store.Delete(r.Context(), c.Value); err != nil {
			s.logger.Warn("delete session failed", "err", err)
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	io.WriteString(w, "ok\n")
}

// draftFromForm reads the name and the S_1..E_5 fields. Values are kept as
// typed; cleaning happens when the submission is built.
func draftFromForm(r *http.Request) *tier.Draft {
	d := tier.NewDraft()
	d.Name = r.PostFormValue("name")
	for _, c := range tier.Categories() {
		for rank := 1; rank <= tier.Ranks; rank++ {
			_ = d.Set(c, rank, r.PostFormValue(fieldName(c, rank)))
		}
	}
	return d
}

func writeArtifact(w http.ResponseWriter, art *pipeline.Artifact, disposition string) {
	h := w.Header()
	h.Set("Content-Type", art.MIMEType)
	h.Set("Content-Length", strconv.FormatInt(art.Size, 10))
	h.Set("Content-Disposition", mime.FormatMediaType(disposition, map[string]string{"filename": art.Filename}))
	h.Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	io.Copy(w, art.Data)
}

func (s *Server) renderPage(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := s.pages.render(&buf, data); err != nil {
		s.internalError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}

// userError shows input problems on the form and everything else as a 500.
func (s *Server) userError(w http.ResponseWriter, r *http.Request, d *tier.Draft, err error) {
	if !errors.IsUserError(err) {
		s.internalError(w, r, err)
		return
	}
	s.renderPage(w, r, http.StatusUnprocessableEntity, pageData{Draft: d, Error: errors.UserMessage(err)})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	s.logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

// sessionOrNew returns the visitor's session or a fresh one if there is none
// or it expired.
func (s *Server) sessionOrNew(r *http.Request) (*session.Session, error) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return session.New(s.cfg.Session.TTL.Duration), nil
	}
	sess, err := s.store.Get(r.Context(), c.Value)
	switch {
	case err == nil:
		return sess, nil
	case errors.Is(err, errors.ErrCodeSessionNotFound), errors.Is(err, errors.ErrCodeSessionExpired):
		return session.New(s.cfg.Session.TTL.Duration), nil
	default:
		return nil, err
	}
}

// existingSession loads the visitor's session for the image routes. Without
// one there is nothing to render, so the visitor is sent back to the form.
func (s *Server) existingSession(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return nil, false
	}
	sess, err := s.store.Get(r.Context(), c.Value)
	switch {
	case err == nil:
		return sess, true
	case errors.Is(err, errors.ErrCodeSessionNotFound), errors.Is(err, errors.ErrCodeSessionExpired):
		http.Redirect(w, r, "/", http.StatusSeeOther)
	default:
		s.internalError(w, r, err)
	}
	return nil, false
}

func (s *Server) saveSession(w http.ResponseWriter, r *http.Request, sess *session.Session) error {
	ttl := s.cfg.Session.TTL.Duration
	sess.Touch(ttl)
	if err := s.store.Set(r.Context(), sess); err != nil {
		return err
	}
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    sess.ID,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
