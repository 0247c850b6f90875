package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"ai-forms/internal/domain/entity"

	"github.com/go-chi/chi/v5"
)

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":   "ok",
		"services": s.registry.Len(),
	})
}

func (s *Server) listServices(w http.ResponseWriter, r *http.Request) {
	services := s.registry.Services()
	out := make([]serviceResponse, 0, len(services))
	for _, svc := range services {
		out = append(out, serviceResponse{Descriptor: svc.Descriptor(), Fields: svc.Fields()})
	}
	writeJSON(w, http.StatusOK, map[string]any{"services": out})
}

func (s *Server) getService(w http.ResponseWriter, r *http.Request) {
	svc, err := s.registry.Resolve(entity.ServiceID(chi.URLParam(r, "id")))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, serviceResponse{Descriptor: svc.Descriptor(), Fields: svc.Fields()})
}

func (s *Server) execute(w http.ResponseWriter, r *http.Request) {
	s.run(w, r, entity.ServiceID(chi.URLParam(r, "id")))
}

func (s *Server) run(w http.ResponseWriter, r *http.Request, id entity.ServiceID) {
	if _, err := s.registry.Resolve(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	in, err := decodeInput(r, s.cfg.MaxUploadBytes)
	if err != nil {
		status := http.StatusBadRequest
		if errors.Is(err, errUnsupportedMedia) {
			status = http.StatusUnsupportedMediaType
		}
		writeError(w, status, err.Error())
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), s.cfg.RequestTimeout)
	defer cancel()

	res, err := s.executor.Execute(ctx, id, in)
	if err != nil {
		var nf *entity.NotFoundError
		if errors.As(err, &nf) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.logger.Error("Execute failed", "service", id, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	status := statusFor(res.Outcome)
	if wantsHTML(r) {
		var buf bytes.Buffer
		if err := s.html.Render(&buf, res); err != nil {
			s.logger.Error("Render failed", "service", id, "error", err)
			writeError(w, http.StatusInternalServerError, "render failed")
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write(buf.Bytes())
		return
	}

	writeJSON(w, status, newExecuteResponse(res))
}

type selectionResponse struct {
	Selected entity.ServiceID  `json:"selected"`
	Service  entity.Descriptor `json:"service"`
	Explicit bool              `json:"explicit"`
}

// selection falls back to the first registered service, the way the panel
// list preselects its first entry.
func (s *Server) selection(w http.ResponseWriter, r *http.Request) (selectionResponse, bool) {
	sid := s.sessions.ID(w, r)
	if id, ok := s.sessions.Selected(sid); ok {
		if svc, err := s.registry.Resolve(id); err == nil {
			return selectionResponse{Selected: id, Service: svc.Descriptor(), Explicit: true}, true
		}
	}

	list := s.registry.List()
	if len(list) == 0 {
		return selectionResponse{}, false
	}
	return selectionResponse{Selected: list[0].ID, Service: list[0]}, true
}

func (s *Server) getSelection(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		writeError(w, http.StatusNotFound, "no services registered")
		return
	}
	writeJSON(w, http.StatusOK, sel)
}

func (s *Server) putSelection(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Service entity.ServiceID `json:"service"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 4096)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "body must be a JSON object with a service id")
		return
	}

	svc, err := s.registry.Resolve(req.Service)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}

	s.sessions.Select(s.sessions.ID(w, r), req.Service)
	writeJSON(w, http.StatusOK, selectionResponse{Selected: req.Service, Service: svc.Descriptor(), Explicit: true})
}

// executeSelection only runs a service the session picked itself; the
// preselected first entry is a display default, not a choice.
func (s *Server) executeSelection(w http.ResponseWriter, r *http.Request) {
	sel, ok := s.selection(w, r)
	if !ok {
		writeError(w, http.StatusNotFound, "no services registered")
		return
	}
	if !sel.Explicit {
		writeError(w, http.StatusConflict, "no service selected")
		return
	}
	s.run(w, r, sel.Selected)
}

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.metrics.Snapshot())
}
