package mailservice

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTemplate(t *testing.T) {
	tp := NewTemplate()

	t.Run("newsletter", func(t *testing.T) {
		data := newsletterData{
			Subject: "Spring update",
			Body:    "First paragraph.\n\nSecond paragraph.",
			HTML:    "<p>First paragraph.</p>\n<p>Second paragraph.</p>",
			Name:    "Ann",
			Email:   "ann@example.com",
		}

		subject, plainBody, htmlBody, err := tp.ParseTemplate(newsletterTemplate, data)
		require.NoError(t, err)

		assert.Equal(t, "Spring update", subject.String())
		assert.Contains(t, plainBody.String(), "Hi Ann,")
		assert.Contains(t, plainBody.String(), "Second paragraph.")
		assert.Contains(t, htmlBody.String(), "<p>First paragraph.</p>")
		assert.Contains(t, htmlBody.String(), "ann@example.com")
	})

	t.Run("recipient name is escaped", func(t *testing.T) {
		data := newsletterData{
			Subject: "News",
			Name:    "<b>Ann</b>",
			Email:   "ann@example.com",
		}

		_, _, htmlBody, err := tp.ParseTemplate(newsletterTemplate, data)
		require.NoError(t, err)
		assert.NotContains(t, htmlBody.String(), "<b>Ann</b>")
		assert.Contains(t, htmlBody.String(), "&lt;b&gt;Ann&lt;/b&gt;")
	})

	t.Run("subject is a single line", func(t *testing.T) {
		data := newsletterData{Subject: "Spring\r\n  update", Email: "ann@example.com"}

		subject, _, _, err := tp.ParseTemplate(newsletterTemplate, data)
		require.NoError(t, err)
		assert.Equal(t, "Spring update", subject.String())
	})

	t.Run("missing template", func(t *testing.T) {
		_, _, _, err := tp.ParseTemplate("unknown.tmpl", nil)
		assert.Error(t, err)
	})
}
