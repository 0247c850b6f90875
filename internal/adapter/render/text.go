package render

import (
	"fmt"
	"io"
	"strings"

	"ai-forms/internal/application/port/input"
	"ai-forms/internal/domain/entity"
)

type TextRenderer struct {
	// ShowSent prints the payload that was sent to the webhook.
	ShowSent bool
}

func NewTextRenderer() *TextRenderer {
	return &TextRenderer{ShowSent: true}
}

func (r *TextRenderer) Render(w io.Writer, res *input.ExecuteResult) error {
	var b strings.Builder

	switch o := res.Outcome.(type) {
	case *entity.Success:
		fmt.Fprintf(&b, "✅ %s: %s\n", res.Service.Title(), o.Message)
		r.writeSuccessBody(&b, o)
	case *entity.ValidationError:
		fmt.Fprintf(&b, "❌ %s: invalid input\n", res.Service.Title())
		if o.Field != "" {
			fmt.Fprintf(&b, "  %s: %s\n", o.Field, o.Message)
		} else {
			fmt.Fprintf(&b, "  %s\n", o.Message)
		}
	case *entity.TransportError:
		fmt.Fprintf(&b, "❌ %s: %s\n", res.Service.Title(), o.Error())
		if o.RawBody != "" {
			b.WriteString("\nresponse body:\n")
			b.WriteString(o.RawBody)
			b.WriteString("\n")
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func (r *TextRenderer) writeSuccessBody(b *strings.Builder, o *entity.Success) {
	switch {
	case o.Fields != nil:
		b.WriteString("\n")
		for _, f := range sortedFields(o.Fields) {
			fmt.Fprintf(b, "%s: %s\n", f.Key, valueText(f.Value))
		}
	case o.ContentType == entity.ContentTypeJSON:
		b.WriteString("\n")
		b.WriteString(prettyJSON(o.Data))
		b.WriteString("\n")
	case o.Raw != "":
		b.WriteString("\n")
		b.WriteString(strings.TrimRight(o.Raw, "\n"))
		b.WriteString("\n")
	}

	if r.ShowSent && len(o.Sent) > 0 {
		b.WriteString("\nsent:\n")
		b.WriteString(prettyJSON(o.Sent))
		b.WriteString("\n")
	}
}
