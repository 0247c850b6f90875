package entity

import (
	"sort"
	"strings"
)

// Input is the raw, unvalidated form submission for one execution.
type Input struct {
	Values map[string]string
	Files  map[string][]byte
}

func NewInput(values map[string]string) Input {
	if values == nil {
		values = make(map[string]string)
	}
	return Input{Values: values, Files: make(map[string][]byte)}
}

// Value returns the trimmed value of a field, or "" when absent.
func (in Input) Value(name string) string {
	return strings.TrimSpace(in.Values[name])
}

func (in Input) File(name string) []byte {
	return in.Files[name]
}

// FieldNames lists the submitted value and file names, sorted.
func (in Input) FieldNames() []string {
	names := make([]string, 0, len(in.Values)+len(in.Files))
	for k := range in.Values {
		names = append(names, k)
	}
	for k := range in.Files {
		if _, dup := in.Values[k]; !dup {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}
