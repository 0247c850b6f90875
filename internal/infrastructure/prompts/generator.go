package prompts

import (
	"bytes"
	"strings"
	"text/template"
)

type SentimentPromptData struct {
	MaxScore   int
	Sentiments []string
}

func GenerateSentimentPrompt(baseTemplate string, data SentimentPromptData) (string, error) {
	tmpl, err := template.New("sentiment").Parse(baseTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}

// System returns an embedded prompt without its trailing newline.
func System(prompt string) string {
	return strings.TrimSpace(prompt)
}
