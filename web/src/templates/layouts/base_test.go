package layouts

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
)

func TestCalculateTitle(t *testing.T) {
	assert.Equal(t, "Fatura", CalculateTitle(""))
	assert.Equal(t, "Fatura - #1111", CalculateTitle("#1111"))
}

func TestBase(t *testing.T) {
	var b strings.Builder
	require.NoError(t, Base("#1111", g.Text("body")).Render(&b))

	out := b.String()
	assert.True(t, strings.HasPrefix(out, "<!doctype html>"))
	assert.Contains(t, out, "<title>Fatura - #1111</title>")
	assert.Contains(t, out, `src="`+HTMXScript+`"`)
	assert.Contains(t, out, `href="/static/app.css"`)
	assert.Contains(t, out, "<body>body</body>")
}
