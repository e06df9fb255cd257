package mailservice

import (
	"bytes"
	"html/template"
	"log/slog"
	"sync"

	"github.com/sushihentaime/contenthub/internal/common"
)

const newsletterTemplate = "newsletter.tmpl"

// LogSink records newsletters in the application log instead of delivering them.
type LogSink struct {
	logger *slog.Logger
	newID  func() string
}

// BrokerSink renders one MIME message per recipient and publishes it to the
// newsletter exchange, where an external relay picks it up for delivery.
type BrokerSink struct {
	mu       sync.Mutex
	producer common.MessageProducer
	parser   TemplateParser
	sender   string
	logger   *slog.Logger
	newID    func() string
}

type Template struct{}

type TemplateParser interface {
	ParseTemplate(name string, data any) (*bytes.Buffer, *bytes.Buffer, *bytes.Buffer, error)
}

// newsletterData is the data handed to the newsletter template.
type newsletterData struct {
	Subject string
	Body    string
	// HTML is Body rendered from Markdown and sanitised.
	HTML  template.HTML
	Name  string
	Email string
}
