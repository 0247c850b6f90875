package formservice

import (
	"net/mail"
	"regexp"
	"slices"
	"strconv"
	"time"

	"ai-forms/internal/domain/entity"
)

// compiledPatterns holds the field patterns the built-in services declare.
var compiledPatterns = map[string]*regexp.Regexp{
	YouTubeURLPattern: youtubeURL,
}

func matchPattern(pattern, s string) bool {
	if re, ok := compiledPatterns[pattern]; ok {
		return re.MatchString(s)
	}
	ok, err := regexp.MatchString(pattern, s)
	return err == nil && ok
}

// values holds validated input, keyed by field name. Optional fields that
// were left empty are absent.
type values map[string]any

func (v values) str(name string) string {
	s, _ := v[name].(string)
	return s
}

func (v values) integer(name string) int {
	n, _ := v[name].(int)
	return n
}

func (v values) clock(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

func (v values) bytes(name string) []byte {
	b, _ := v[name].([]byte)
	return b
}

func (v values) has(name string) bool {
	_, ok := v[name]
	return ok
}

// validate checks specs in declaration order and stops at the first failure.
func validate(specs []entity.FieldSpec, in entity.Input) (values, *entity.ValidationError) {
	out := make(values, len(specs))

	for _, spec := range specs {
		if spec.Kind == entity.FieldFile {
			data := in.File(spec.Name)
			if len(data) == 0 {
				if spec.Required {
					return nil, entity.NewValidationError(spec.Name, "%s is required", spec.Name)
				}
				continue
			}
			out[spec.Name] = data
			continue
		}

		raw := in.Value(spec.Name)
		if raw == "" {
			raw = spec.Default
		}
		if raw == "" {
			if spec.Required {
				return nil, entity.NewValidationError(spec.Name, "%s is required", spec.Name)
			}
			continue
		}

		v, verr := parseField(spec, raw)
		if verr != nil {
			return nil, verr
		}
		out[spec.Name] = v
	}

	return out, nil
}

func parseField(spec entity.FieldSpec, raw string) (any, *entity.ValidationError) {
	switch spec.Kind {
	case entity.FieldInt:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, entity.NewValidationError(spec.Name, "%s must be a whole number", spec.Name)
		}
		if spec.Min != nil && n < *spec.Min {
			return nil, entity.NewValidationError(spec.Name, "%s must be between %s", spec.Name, rangeText(spec))
		}
		if spec.Max != nil && n > *spec.Max {
			return nil, entity.NewValidationError(spec.Name, "%s must be between %s", spec.Name, rangeText(spec))
		}
		return n, nil

	case entity.FieldDate:
		d, err := time.Parse(entity.DateLayout, raw)
		if err != nil {
			return nil, entity.NewValidationError(spec.Name, "%s must be a date in YYYY-MM-DD form", spec.Name)
		}
		return d, nil

	case entity.FieldTime:
		t, err := time.Parse(entity.TimeLayout, raw)
		if err != nil {
			t, err = time.Parse("15:04:05", raw)
		}
		if err != nil {
			return nil, entity.NewValidationError(spec.Name, "%s must be a time in HH:MM form", spec.Name)
		}
		return t, nil

	case entity.FieldEmail:
		addr, err := mail.ParseAddress(raw)
		if err != nil || addr.Address != raw {
			return nil, entity.NewValidationError(spec.Name, "%s must be a valid email address", spec.Name)
		}
		return raw, nil

	case entity.FieldChoice:
		if !slices.Contains(spec.Options, raw) {
			return nil, entity.NewValidationError(spec.Name, "%s must be one of %v", spec.Name, spec.Options)
		}
		return raw, nil
	}

	if spec.Pattern != "" {
		if !matchPattern(spec.Pattern, raw) {
			return nil, entity.NewValidationError(spec.Name, "%s has an invalid format", spec.Name)
		}
	}
	return raw, nil
}

func rangeText(spec entity.FieldSpec) string {
	switch {
	case spec.Min != nil && spec.Max != nil:
		return strconv.Itoa(*spec.Min) + " and " + strconv.Itoa(*spec.Max)
	case spec.Min != nil:
		return strconv.Itoa(*spec.Min) + " and any larger value"
	default:
		return "any value and " + strconv.Itoa(*spec.Max)
	}
}
