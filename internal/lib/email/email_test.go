package email

import (
	"testing"

	"github.com/deppfellow/agile/internal/config"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderPreviewTemplates(t *testing.T) {
	for name, data := range PreviewData {
		t.Run(string(name), func(t *testing.T) {
			body, err := RenderTemplate(name, data)
			require.NoError(t, err)
			for _, v := range data {
				assert.Contains(t, body, v)
			}
		})
	}
}

func TestRenderEscapesContent(t *testing.T) {
	body, err := RenderTemplate(TemplateNotification, map[string]string{
		"UserName": "John",
		"Content":  "<script>alert(1)</script>",
	})
	require.NoError(t, err)
	assert.NotContains(t, body, "<script>")
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := RenderTemplate("missing", nil)
	assert.Error(t, err)
}

func TestClientDisabledWithoutKey(t *testing.T) {
	logger := zerolog.Nop()
	c := NewClient(&config.Config{}, &logger)

	assert.False(t, c.Enabled())
	assert.Error(t, c.SendNotificationEmail("john@example.com", "John", "hi"))
}
