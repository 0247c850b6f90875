// Package render turns execution results into something a person can read:
// plain text for the terminal and an HTML fragment for the browser.
package render

import (
	"encoding/json"
	"fmt"
	"net/url"
	"sort"
	"strings"

	"ai-forms/internal/domain/content"
)

type field struct {
	Key   string
	Value any
}

// sortedFields orders a JSON object's keys so output is stable.
func sortedFields(obj map[string]any) []field {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out := make([]field, 0, len(keys))
	for _, k := range keys {
		out = append(out, field{Key: k, Value: obj[k]})
	}
	return out
}

func valueText(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case nil:
		return "null"
	case json.Number:
		return t.String()
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

func prettyJSON(v any) string {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

// asLink reports whether s is a bare absolute http(s) URL.
func asLink(s string) (string, bool) {
	if strings.ContainsAny(s, " \t\n") {
		return "", false
	}
	u, err := url.Parse(s)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return "", false
	}
	return u.String(), true
}

func isHTMLValue(v any) (string, bool) {
	s, ok := v.(string)
	if !ok {
		return "", false
	}
	return s, content.ContainsHTML(s)
}
