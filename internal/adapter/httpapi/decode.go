package httpapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"ai-forms/internal/domain/entity"
)

var errUnsupportedMedia = errors.New("unsupported content type")

// decodeInput reads form values from a JSON object, a multipart form (which
// may carry files) or a urlencoded form. Non-string JSON scalars are
// converted to their text form so every service sees the same input.
func decodeInput(r *http.Request, maxBytes int64) (entity.Input, error) {
	in := entity.NewInput(nil)
	if r.ContentLength == 0 && r.Header.Get("Content-Type") == "" {
		return in, nil
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return in, fmt.Errorf("%w: %v", errUnsupportedMedia, err)
	}

	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)

	switch mediaType {
	case "application/json":
		return decodeJSONInput(r.Body, in)
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxBytes); err != nil {
			return in, fmt.Errorf("parse multipart form: %w", err)
		}
		defer r.MultipartForm.RemoveAll()
		for name, values := range r.MultipartForm.Value {
			if len(values) > 0 {
				in.Values[name] = values[0]
			}
		}
		for name, headers := range r.MultipartForm.File {
			if len(headers) == 0 {
				continue
			}
			f, err := headers[0].Open()
			if err != nil {
				return in, fmt.Errorf("open upload %s: %w", name, err)
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				return in, fmt.Errorf("read upload %s: %w", name, err)
			}
			in.Files[name] = data
		}
		return in, nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return in, fmt.Errorf("parse form: %w", err)
		}
		for name := range r.PostForm {
			in.Values[name] = r.PostForm.Get(name)
		}
		return in, nil
	default:
		return in, fmt.Errorf("%w: %s", errUnsupportedMedia, mediaType)
	}
}

func decodeJSONInput(body io.Reader, in entity.Input) (entity.Input, error) {
	dec := json.NewDecoder(body)
	dec.UseNumber()

	var raw map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return in, nil
		}
		return in, fmt.Errorf("decode json body: %w", err)
	}

	for name, v := range raw {
		switch t := v.(type) {
		case nil:
		case string:
			in.Values[name] = t
		case json.Number:
			in.Values[name] = t.String()
		case bool:
			in.Values[name] = strconv.FormatBool(t)
		default:
			return in, fmt.Errorf("field %q must be a string, number or boolean", name)
		}
	}
	return in, nil
}
