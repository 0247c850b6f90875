// Package htmlview prepares HTML returned by a webhook for display: a cleaned
// and sanitized rendering plus the untouched source.
package htmlview

import (
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
)

type View struct {
	Title     string
	Sanitized string
	Source    string
	Truncated bool
}

type Config struct {
	TagsToRemove  []string
	AttrsToRemove []string
	MaxOutputSize int
}

var DefaultConfig = Config{
	TagsToRemove: []string{
		"script", "style", "noscript", "iframe", "link", "meta", "head", "title",
	},
	AttrsToRemove: []string{
		"style", "srcset", "sizes", "loading", "decoding", "fetchpriority", "tabindex",
	},
	MaxOutputSize: 200_000,
}

type Renderer struct {
	cfg    Config
	policy *bluemonday.Policy
}

func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		cfg:    cfg,
		policy: bluemonday.UGCPolicy(),
	}
}

// Render never fails: unparseable input is sanitized as-is.
func (r *Renderer) Render(raw string) View {
	v := View{Source: raw}

	doc, err := html.Parse(strings.NewReader(raw))
	if err != nil {
		v.Sanitized = r.policy.Sanitize(raw)
		return v
	}

	v.Title = findTitle(doc)

	body := findElement(doc, "body")
	if body == nil {
		body = doc
	}
	r.cleanNode(body)

	cleaned := renderChildren(body)
	if r.cfg.MaxOutputSize > 0 && len(cleaned) > r.cfg.MaxOutputSize {
		cleaned = truncate(cleaned, r.cfg.MaxOutputSize)
		v.Truncated = true
	}
	v.Sanitized = strings.TrimSpace(r.policy.Sanitize(cleaned))
	return v
}

// truncate cuts s to at most limit bytes without splitting a UTF-8 sequence.
func truncate(s string, limit int) string {
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

func findElement(n *html.Node, tag string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func findTitle(doc *html.Node) string {
	title := findElement(doc, "title")
	if title == nil {
		return ""
	}
	var sb strings.Builder
	for c := title.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(sb.String()), " ")
}

func (r *Renderer) cleanNode(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch {
		case c.Type == html.CommentNode:
			n.RemoveChild(c)
		case c.Type == html.ElementNode && isOneOf(c.Data, r.cfg.TagsToRemove...):
			n.RemoveChild(c)
		case c.Type == html.ElementNode:
			c.Attr = r.filterAttributes(c.Attr)
			r.cleanNode(c)
		}
		c = next
	}
}

func (r *Renderer) filterAttributes(attrs []html.Attribute) []html.Attribute {
	var kept []html.Attribute
	for _, attr := range attrs {
		if isOneOf(attr.Key, r.cfg.AttrsToRemove...) ||
			strings.HasPrefix(attr.Key, "data-") ||
			strings.HasPrefix(attr.Key, "on") {
			continue
		}
		kept = append(kept, attr)
	}
	return kept
}

func renderChildren(n *html.Node) string {
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&sb, c)
	}
	return sb.String()
}

func isOneOf(s string, candidates ...string) bool {
	for _, c := range candidates {
		if s == c {
			return true
		}
	}
	return false
}
