package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/finapp/backend/internal/domain/shared"
	"github.com/finapp/backend/internal/infrastructure/ratelimit"
)

func newTestContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	return c, w
}

func TestHandleError(t *testing.T) {
	h := BaseHandler{}

	t.Run("domain error codes map to their status", func(t *testing.T) {
		tests := []struct {
			code string
			want int
		}{
			{"NOT_FOUND", http.StatusNotFound},
			{"ALREADY_EXISTS", http.StatusConflict},
			{"INVALID_AMOUNT", http.StatusBadRequest},
			{"INVOICE_PAID", http.StatusUnprocessableEntity},
			{"ALREADY_PAID", http.StatusUnprocessableEntity},
			{"OVERPAYMENT", http.StatusUnprocessableEntity},
		}

		for _, tt := range tests {
			t.Run(tt.code, func(t *testing.T) {
				c, w := newTestContext(t)
				h.HandleError(c, shared.NewDomainError(tt.code, "boom"))
				assert.Equal(t, tt.want, w.Code)
				assert.Contains(t, w.Body.String(), tt.code)
			})
		}
	})

	t.Run("payment rule violations are not server errors", func(t *testing.T) {
		for _, code := range []string{"ALREADY_PAID", "OVERPAYMENT"} {
			c, w := newTestContext(t)
			h.HandleError(c, shared.NewDomainError(code, "rejected"))
			assert.Less(t, w.Code, http.StatusInternalServerError, code)
		}
	})

	t.Run("rate limit rejection yields 429 with Retry-After", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, &ratelimit.ExceededError{Wait: 42 * time.Second})

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "42", w.Header().Get("Retry-After"))
		assert.Contains(t, w.Body.String(), "RATE_LIMITED")
	})

	t.Run("sub-second wait rounds up to one second", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, &ratelimit.ExceededError{Wait: 200 * time.Millisecond})

		assert.Equal(t, http.StatusTooManyRequests, w.Code)
		assert.Equal(t, "1", w.Header().Get("Retry-After"))
	})

	t.Run("unknown errors yield 500", func(t *testing.T) {
		c, w := newTestContext(t)
		h.HandleError(c, errors.New("connection reset"))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Contains(t, w.Body.String(), "INTERNAL_ERROR")
	})
}
