package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"ai-forms/internal/application/port/input"
	"ai-forms/internal/domain/entity"
)

type errorResponse struct {
	Error string `json:"error"`
}

type serviceResponse struct {
	entity.Descriptor
	Fields []entity.FieldSpec `json:"fields"`
}

type executeResponse struct {
	RequestID       string                  `json:"request_id"`
	Service         entity.Descriptor       `json:"service"`
	Kind            entity.OutcomeKind      `json:"kind"`
	DurationMS      int64                   `json:"duration_ms"`
	Success         *entity.Success         `json:"success,omitempty"`
	ValidationError *entity.ValidationError `json:"validation_error,omitempty"`
	TransportError  *entity.TransportError  `json:"transport_error,omitempty"`
}

func newExecuteResponse(res *input.ExecuteResult) executeResponse {
	resp := executeResponse{
		RequestID:  res.RequestID,
		Service:    res.Service,
		Kind:       res.Outcome.Kind(),
		DurationMS: res.Duration.Milliseconds(),
	}
	switch o := res.Outcome.(type) {
	case *entity.Success:
		resp.Success = o
	case *entity.ValidationError:
		resp.ValidationError = o
	case *entity.TransportError:
		resp.TransportError = o
	}
	return resp
}

// statusFor maps an outcome onto the HTTP status of the execute endpoints.
func statusFor(o entity.Outcome) int {
	switch o.Kind() {
	case entity.OutcomeSuccess:
		return http.StatusOK
	case entity.OutcomeValidationError:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

func wantsHTML(r *http.Request) bool {
	accept := r.Header.Get("Accept")
	return strings.Contains(accept, "text/html") && !strings.Contains(accept, "application/json")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}
