package mailservice

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed templates/*
var templateFS embed.FS

// newsletterParts are the blocks every message template must define, in the order
// ParseTemplate returns them.
var newsletterParts = [...]string{"subject", "plainBody", "htmlBody"}

func NewTemplate() *Template {
	return &Template{}
}

// ParseTemplate renders the subject, plain-text and HTML parts of the named
// template under templates/ for one recipient. The subject is trimmed to a single
// header-safe line.
func (tp *Template) ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error) {
	t, err := template.New(name).ParseFS(templateFS, "templates/"+name)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("could not parse template: %w", err)
	}

	var parts [len(newsletterParts)]*bytes.Buffer
	for i, part := range newsletterParts {
		buf := new(bytes.Buffer)
		if err := t.ExecuteTemplate(buf, part, data); err != nil {
			return nil, nil, nil, fmt.Errorf("render %s of %s: %w", part, name, err)
		}
		parts[i] = buf
	}

	subject := strings.Join(strings.Fields(parts[0].String()), " ")

	return bytes.NewBufferString(subject), parts[1], parts[2], nil
}
