// Package content decides how a response body should be treated: as a JSON
// document, as an HTML page, or as plain text.
package content

import (
	"bytes"
	"encoding/json"
	"strings"

	"ai-forms/internal/domain/entity"
)

var htmlPrefixes = []string{"<!doctype", "<html"}

// Result is a classified response body.
type Result struct {
	ContentType entity.ContentType
	Data        any
	Raw         string
}

// Object returns the decoded JSON object when the body was a JSON object.
func (r Result) Object() (map[string]any, bool) {
	if r.ContentType != entity.ContentTypeJSON {
		return nil, false
	}
	obj, ok := r.Data.(map[string]any)
	return obj, ok
}

// Classify checks, in order: whether body parses as JSON, whether it looks
// like HTML (by prefix or by the declared header), and otherwise falls back
// to plain text. It never fails.
func Classify(body []byte, contentTypeHeader string) Result {
	raw := string(body)
	trimmed := bytes.TrimSpace(body)

	if data, ok := decodeJSON(trimmed); ok {
		return Result{ContentType: entity.ContentTypeJSON, Data: data, Raw: raw}
	}

	if HasHTMLPrefix(string(trimmed)) || strings.Contains(strings.ToLower(contentTypeHeader), "text/html") {
		return Result{ContentType: entity.ContentTypeHTML, Raw: raw}
	}

	return Result{ContentType: entity.ContentTypePlain, Raw: raw}
}

// HasHTMLPrefix reports whether s starts with a doctype or an <html> tag,
// ignoring case and leading whitespace.
func HasHTMLPrefix(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, p := range htmlPrefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

// ContainsHTML reports whether s embeds an HTML document anywhere, which is
// how webhook JSON responses sometimes carry rendered pages in a field.
func ContainsHTML(s string) bool {
	lower := strings.ToLower(s)
	return strings.Contains(lower, "<html") || strings.Contains(lower, "<!doctype html")
}

func decodeJSON(b []byte) (any, bool) {
	if len(b) == 0 || !json.Valid(b) {
		return nil, false
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return nil, false
	}
	return data, true
}

// ExtractObject pulls the outermost {...} span out of free text and decodes
// it. Model completions often wrap JSON in prose or code fences.
func ExtractObject(text string) (map[string]any, bool) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return nil, false
	}
	data, ok := decodeJSON([]byte(text[start : end+1]))
	if !ok {
		return nil, false
	}
	obj, ok := data.(map[string]any)
	return obj, ok
}
