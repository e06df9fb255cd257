package mailservice

import (
	"bytes"
	"html"
	"html/template"

	"github.com/go-mail/mail/v2"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sushihentaime/contenthub/internal/newsletterservice"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(goldmarkhtml.WithHardWraps(), goldmarkhtml.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// compose renders the newsletter for one recipient into an RFC 5322 message.
func (s *BrokerSink) compose(recipient newsletterservice.Recipient, subject, body string, rendered template.HTML) ([]byte, error) {
	data := newsletterData{
		Subject: subject,
		Body:    body,
		HTML:    rendered,
		Name:    recipient.Name,
		Email:   recipient.Email,
	}

	subj, plainBody, htmlBody, err := s.parser.ParseTemplate(newsletterTemplate, data)
	if err != nil {
		return nil, err
	}

	msg := mail.NewMessage()
	msg.SetHeader("From", s.sender)
	msg.SetAddressHeader("To", recipient.Email, recipient.Name)
	msg.SetHeader("Subject", html.UnescapeString(subj.String()))
	msg.SetBody("text/plain", html.UnescapeString(plainBody.String()))
	msg.AddAlternative("text/html", htmlBody.String())

	buf := new(bytes.Buffer)
	if _, err := msg.WriteTo(buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// renderMarkdown converts the newsletter content to HTML safe to embed in the message.
func renderMarkdown(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return template.HTML(sanitizer.SanitizeBytes(buf.Bytes())), nil
}
