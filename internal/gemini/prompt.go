package gemini

import (
	"bytes"
	_ "embed"
	"text/template"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

var promptTemplate = template.Must(template.New("prompt").Parse(defaultPromptTemplate))

// PromptData holds the variables available in the prompt template.
type PromptData struct {
	Question string
}

// renderPrompt wraps a question in the legal-expert instructions.
func renderPrompt(question string) (string, error) {
	var buf bytes.Buffer
	if err := promptTemplate.Execute(&buf, PromptData{Question: question}); err != nil {
		return "", err
	}
	return buf.String(), nil
}
