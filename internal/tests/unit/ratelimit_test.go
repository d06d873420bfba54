package unit

import (
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"tipjar/internal/middlewares"
	"tipjar/internal/tests/mocks"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newLimitedRouter(limiter middlewares.RateLimiter, limit int) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	m := middlewares.NewRateLimitMiddleware(slog.Default(), limiter, "tip_create", limit, time.Minute)
	router.POST("/tip", m.Handle(), func(c *gin.Context) {
		c.Status(http.StatusCreated)
	})
	return router
}

func TestRateLimitMiddleware_RejectsOverLimit(t *testing.T) {
	// Arrange
	limiter := new(mocks.RateLimiterMock)
	limiter.On("Allow", mock.Anything, "tip_create", mock.Anything, 2, time.Minute).Return(true, 60, nil).Once()
	limiter.On("Allow", mock.Anything, "tip_create", mock.Anything, 2, time.Minute).Return(false, 42, nil).Once()

	router := newLimitedRouter(limiter, 2)

	// Act
	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodPost, "/tip", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodPost, "/tip", nil))

	// Assert
	assert.Equal(t, http.StatusCreated, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.Equal(t, "42", second.Header().Get("Retry-After"))
	assert.Contains(t, second.Body.String(), middlewares.ErrRateLimited.Error())
	limiter.AssertExpectations(t)
}

func TestRateLimitMiddleware_FailsOpen(t *testing.T) {
	// Arrange
	limiter := new(mocks.RateLimiterMock)
	limiter.On("Allow", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(false, 0, errors.New("redis down")).Once()

	router := newLimitedRouter(limiter, 5)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tip", nil))

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
}

func TestRateLimitMiddleware_DisabledWithoutLimit(t *testing.T) {
	// Arrange
	limiter := new(mocks.RateLimiterMock)
	router := newLimitedRouter(limiter, 0)
	rec := httptest.NewRecorder()

	// Act
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/tip", nil))

	// Assert
	assert.Equal(t, http.StatusCreated, rec.Code)
	limiter.AssertNotCalled(t, "Allow", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
