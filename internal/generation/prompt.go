package generation

import (
	_ "embed"
	"fmt"
	"strings"
	"text/template"
)

//go:embed prompt.tmpl
var defaultPromptTemplate string

// promptData is the value the prompt template is executed with.
type promptData struct {
	Notes string
}

// Prompt renders the model instruction for a set of notes.
type Prompt struct {
	tmpl   *template.Template
	source string
}

// NewPrompt parses a prompt template. An empty text selects the built-in
// template. The template receives the trimmed notes as {{.Notes}}.
func NewPrompt(text string) (*Prompt, error) {
	if strings.TrimSpace(text) == "" {
		text = defaultPromptTemplate
	}

	tmpl, err := template.New("prompt").Option("missingkey=error").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse prompt template: %v", ErrInvalidConfig, err)
	}
	return &Prompt{tmpl: tmpl, source: text}, nil
}

// Render executes the template with notes.
func (p *Prompt) Render(notes string) (string, error) {
	var b strings.Builder
	if err := p.tmpl.Execute(&b, promptData{Notes: notes}); err != nil {
		return "", fmt.Errorf("failed to execute prompt template: %w", err)
	}
	return b.String(), nil
}
