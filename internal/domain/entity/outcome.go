package entity

import (
	"fmt"
	"strings"
)

type OutcomeKind string

const (
	OutcomeSuccess         OutcomeKind = "success"
	OutcomeValidationError OutcomeKind = "validation_error"
	OutcomeTransportError  OutcomeKind = "transport_error"
)

// Outcome is the result of one service execution. It is implemented only by
// *Success, *ValidationError and *TransportError.
type Outcome interface {
	Kind() OutcomeKind
	outcome()
}

type ContentType string

const (
	ContentTypeJSON  ContentType = "application/json"
	ContentTypeHTML  ContentType = "text/html"
	ContentTypePlain ContentType = "text/plain"
)

type Success struct {
	Message     string         `json:"message"`
	ContentType ContentType    `json:"content_type"`
	Data        any            `json:"data,omitempty"`
	Fields      map[string]any `json:"fields,omitempty"`
	Raw         string         `json:"raw,omitempty"`
	Sent        map[string]any `json:"sent,omitempty"`
}

func (*Success) Kind() OutcomeKind { return OutcomeSuccess }
func (*Success) outcome()          {}

func (s *Success) Structured() bool {
	return s.ContentType == ContentTypeJSON
}

// StringField returns a top-level string field of a structured payload.
func (s *Success) StringField(name string) (string, bool) {
	v, ok := s.Fields[name]
	if !ok {
		return "", false
	}
	str, ok := v.(string)
	return str, ok
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func NewValidationError(field, format string, args ...any) *ValidationError {
	return &ValidationError{
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	}
}

func (*ValidationError) Kind() OutcomeKind { return OutcomeValidationError }
func (*ValidationError) outcome()          {}

func (e *ValidationError) Error() string {
	return e.Message
}

// TransportError reports a failed call to an external endpoint. StatusCode is
// zero when no HTTP response was received.
type TransportError struct {
	StatusCode int    `json:"status_code,omitempty"`
	Message    string `json:"message"`
	RawBody    string `json:"raw_body,omitempty"`
}

func (*TransportError) Kind() OutcomeKind { return OutcomeTransportError }
func (*TransportError) outcome()          {}

func (e *TransportError) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	return b.String()
}
