package utils

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidatePhone(t *testing.T) {
	for _, ok := range []string{"+996 555 123-456", "(555) 123456", "+14155552671", "5551234"} {
		assert.True(t, ValidatePhone(ok), ok)
	}
	for _, bad := range []string{"", "abc", "+0123", "+1234567890123456"} {
		assert.False(t, ValidatePhone(bad), bad)
	}
	assert.Equal(t, "+996555123456", NormalizePhone(" +996 (555) 123-456 "))
}

func TestParseClock(t *testing.T) {
	got, err := ParseClock("09:30")
	require.NoError(t, err)
	assert.Equal(t, "09:30:00", got)

	got, err = ParseClock("18:05:10")
	require.NoError(t, err)
	assert.Equal(t, "18:05:10", got)

	_, err = ParseClock("25:00")
	assert.Error(t, err)
}

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2026, 3, 14, 15, 9, 26, 5, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), BeginningOfDay(in))
	assert.Equal(t, "15:09:26", Clock(in))
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/auth/login", NewRateLimiter(0.001, 2).Middleware(), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
		req.RemoteAddr = "10.0.0.1:5000"
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", nil)
	req.RemoteAddr = "10.0.0.2:5000"
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code, "buckets are per client")
}
