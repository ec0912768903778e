package presenter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"

	hateoas "github.com/totegamma/hateoas-playground"
	"github.com/totegamma/hateoas-playground/internal/domain"
)

func TestETagIsStable(t *testing.T) {
	a := ETag([]byte(`{"data":[]}`))
	assert.Equal(t, a, ETag([]byte(`{"data":[]}`)))
	assert.NotEqual(t, a, ETag([]byte(`{"data":{}}`)))
	assert.Len(t, a, 18)
}

func TestMatches(t *testing.T) {
	etag := `"00000000000000ff"`

	assert.False(t, matches("", etag))
	assert.True(t, matches(etag, etag))
	assert.True(t, matches("*", etag))
	assert.True(t, matches(`W/"00000000000000ff"`, etag))
	assert.True(t, matches(`"abc", `+etag, etag))
	assert.False(t, matches(`"abc"`, etag))
}

func TestErrorStatus(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{errors.Wrap(domain.NotFoundError{Resource: "user", ID: "x"}, "lookup"), http.StatusNotFound},
		{hateoas.ConstructionError{Resource: "user", Reason: "bad"}, http.StatusInternalServerError},
		{hateoas.EncodingError{Err: errors.New("chan")}, http.StatusInternalServerError},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		res := httptest.NewRecorder()
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), res)

		assert.NoError(t, Error(c, tc.err))
		assert.Equal(t, tc.want, res.Code, tc.err.Error())
		if tc.want == http.StatusInternalServerError {
			assert.NotContains(t, res.Body.String(), tc.err.Error())
		}
	}
}
