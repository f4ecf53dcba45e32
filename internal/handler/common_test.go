package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"athar/internal/auth"
	"athar/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestStatusFor(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{service.ErrInvalidPhone, http.StatusBadRequest},
		{fmt.Errorf("%w: title", service.ErrInvalidInput), http.StatusBadRequest},
		{service.ErrSelfReference, http.StatusBadRequest},
		{service.ErrInvalidCode, http.StatusBadRequest},
		{service.ErrInvalidCredentials, http.StatusUnauthorized},
		{auth.ErrTokenExpired, http.StatusUnauthorized},
		{service.ErrAccountBanned, http.StatusForbidden},
		{service.ErrParentNotFound, http.StatusNotFound},
		{service.ErrPhoneNotRegistered, http.StatusNotFound},
		{service.ErrDuplicatePhone, http.StatusConflict},
		{service.ErrOTPUnavailable, http.StatusServiceUnavailable},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, statusFor(c.err), c.err.Error())
	}
}

func TestFailHidesInternalErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/x", nil)

	fail(c, "test", errors.New("dial tcp 10.0.0.1:3306: refused"))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "10.0.0.1")
	assert.Contains(t, w.Body.String(), `"success":false`)
}

func TestParseRecipients(t *testing.T) {
	ids, ok := parseRecipients(json.RawMessage(`"all"`))
	assert.True(t, ok)
	assert.Nil(t, ids)

	ids, ok = parseRecipients(json.RawMessage(`[3, 5]`))
	assert.True(t, ok)
	assert.Equal(t, []uint{3, 5}, ids)

	for _, raw := range []string{`"some"`, `[]`, `{"a":1}`, `[-1]`} {
		_, ok = parseRecipients(json.RawMessage(raw))
		assert.False(t, ok, raw)
	}
}

func TestParsePagination(t *testing.T) {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodGet, "/x?page=0&limit=500", nil)
	page, limit := parsePagination(c)
	assert.Equal(t, 1, page)
	assert.Equal(t, 100, limit)
}
