package rendering

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	g "maragu.dev/gomponents"
	"maragu.dev/gomponents/html"
)

func TestRenderComponent(t *testing.T) {
	r := NewUniversalRenderer()

	t.Run("gomponents node", func(t *testing.T) {
		out, err := r.RenderComponent(context.Background(), html.Li(g.Text("Market")))
		require.NoError(t, err)
		assert.Equal(t, "<li>Market</li>", string(out))
	})

	t.Run("templ component", func(t *testing.T) {
		component := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
			_, err := io.WriteString(w, "<p>Fatura</p>")
			return err
		})
		out, err := r.RenderComponent(context.Background(), component)
		require.NoError(t, err)
		assert.Equal(t, "<p>Fatura</p>", string(out))
	})

	t.Run("unsupported type", func(t *testing.T) {
		_, err := r.RenderComponent(context.Background(), 42)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported component type int")
	})
}

func TestRenderPage(t *testing.T) {
	e := echo.New()
	r := NewUniversalRenderer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, r.RenderPage(c, http.StatusNotFound, html.H1(g.Text("Fatura"))))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, echo.MIMETextHTMLCharsetUTF8, rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, "<h1>Fatura</h1>", rec.Body.String())
}

func TestRenderPage_FailureWritesNothing(t *testing.T) {
	e := echo.New()
	r := NewUniversalRenderer()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := r.RenderPage(c, http.StatusOK, struct{}{})
	require.Error(t, err)
	assert.False(t, c.Response().Committed, "the error handler can still answer")
}
