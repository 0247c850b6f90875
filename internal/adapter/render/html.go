package render

import (
	"html/template"
	"io"

	"ai-forms/internal/application/port/input"
	"ai-forms/internal/domain/entity"
	"ai-forms/internal/infrastructure/htmlview"
)

const fragment = `<section class="outcome outcome-{{.Kind}}" data-service="{{.Service}}" data-request-id="{{.RequestID}}">
<h2>{{.Title}}</h2>
{{- if eq .Kind "success"}}
<p class="message">{{.Message}}</p>
{{- if .Fields}}
<dl>
{{- range .Fields}}
<dt>{{.Key}}</dt>
<dd>{{if .Link}}<a href="{{.Link}}" target="_blank" rel="noopener noreferrer">{{.Text}}</a>{{else if .HTML}}{{template "html" .HTML}}{{else}}{{.Text}}{{end}}</dd>
{{- end}}
</dl>
{{- else if .HTML}}
{{template "html" .HTML}}
{{- else if .JSON}}
<pre class="json"><code>{{.JSON}}</code></pre>
{{- else if .Plain}}
<div class="text">{{.Plain}}</div>
{{- end}}
{{- else if eq .Kind "validation_error"}}
<p class="error">{{if .Field}}<strong>{{.Field}}</strong>: {{end}}{{.Message}}</p>
{{- else}}
<p class="error">{{.Message}}{{if .Status}} (status {{.Status}}){{end}}</p>
{{- if .RawBody}}
<pre class="raw"><code>{{.RawBody}}</code></pre>
{{- end}}
{{- end}}
</section>
{{define "html"}}<div class="html-view">
{{- if .Title}}<h3>{{.Title}}</h3>{{end}}
<div class="rendered">{{.Rendered}}</div>
{{- if .Truncated}}<p class="truncated">Rendered view truncated; the full response is in the source below.</p>{{end}}
<details><summary>Source</summary><pre><code>{{.Source}}</code></pre></details>
</div>{{end}}`

type htmlBlock struct {
	Title     string
	Rendered  template.HTML
	Source    string
	Truncated bool
}

type fieldView struct {
	Key  string
	Text string
	Link string
	HTML *htmlBlock
}

type outcomeView struct {
	Kind      entity.OutcomeKind
	Service   entity.ServiceID
	RequestID string
	Title     string
	Message   string
	Field     string
	Status    int
	RawBody   string
	Fields    []fieldView
	HTML      *htmlBlock
	JSON      string
	Plain     string
}

type HTMLRenderer struct {
	tmpl *template.Template
	view *htmlview.Renderer
}

func NewHTMLRenderer(view *htmlview.Renderer) *HTMLRenderer {
	return &HTMLRenderer{
		tmpl: template.Must(template.New("outcome").Parse(fragment)),
		view: view,
	}
}

func (r *HTMLRenderer) Render(w io.Writer, res *input.ExecuteResult) error {
	return r.tmpl.Execute(w, r.build(res))
}

func (r *HTMLRenderer) build(res *input.ExecuteResult) outcomeView {
	v := outcomeView{
		Kind:      res.Outcome.Kind(),
		Service:   res.Service.ID,
		RequestID: res.RequestID,
		Title:     res.Service.Title(),
	}

	switch o := res.Outcome.(type) {
	case *entity.Success:
		v.Message = o.Message
		switch {
		case o.Fields != nil:
			for _, f := range sortedFields(o.Fields) {
				v.Fields = append(v.Fields, r.fieldView(f))
			}
		case o.ContentType == entity.ContentTypeHTML:
			v.HTML = r.htmlBlock(o.Raw)
		case o.ContentType == entity.ContentTypeJSON:
			v.JSON = prettyJSON(o.Data)
		default:
			v.Plain = o.Raw
		}
	case *entity.ValidationError:
		v.Field = o.Field
		v.Message = o.Message
	case *entity.TransportError:
		v.Message = o.Message
		v.Status = o.StatusCode
		v.RawBody = o.RawBody
	}
	return v
}

func (r *HTMLRenderer) fieldView(f field) fieldView {
	fv := fieldView{Key: f.Key, Text: valueText(f.Value)}
	if s, ok := f.Value.(string); ok {
		if link, ok := asLink(s); ok {
			fv.Link = link
			return fv
		}
	}
	if s, ok := isHTMLValue(f.Value); ok {
		fv.HTML = r.htmlBlock(s)
	}
	return fv
}

func (r *HTMLRenderer) htmlBlock(raw string) *htmlBlock {
	view := r.view.Render(raw)
	return &htmlBlock{
		Title: view.Title,
		// Sanitized by bluemonday.
		Rendered:  template.HTML(view.Sanitized),
		Source:    view.Source,
		Truncated: view.Truncated,
	}
}
