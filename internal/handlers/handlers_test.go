package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const viewID = "0b7c8a3e-0000-4000-8000-000000000001"

func TestHealthGet(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	require.NoError(t, HealthGet(e.NewContext(req, rec)))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "OK", rec.Body.String())
}

func bindSelection(t *testing.T, id string, form url.Values) (SelectCardRequest, error) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()

	req := httptest.NewRequest(http.MethodPost, "/views/"+id+"/selection", strings.NewReader(form.Encode()))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationForm)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/views/:id/selection")
	c.SetParamNames("id")
	c.SetParamValues(id)

	var r SelectCardRequest
	if err := c.Bind(&r); err != nil {
		return r, err
	}
	return r, c.Validate(&r)
}

func TestSelectCardRequest(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := bindSelection(t, viewID, url.Values{"card": {"2222"}})
		require.NoError(t, err)
		assert.Equal(t, viewID, r.ViewID)
		assert.Equal(t, "2222", r.Card)
	})

	t.Run("missing card", func(t *testing.T) {
		_, err := bindSelection(t, viewID, url.Values{})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Card")
	})

	t.Run("malformed view id", func(t *testing.T) {
		_, err := bindSelection(t, "not-a-uuid", url.Values{"card": {"2222"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "ViewID")
	})
}
