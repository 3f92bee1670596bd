package api

import (
	"time"

	"catalogapi.app/internal/core/account"
	"catalogapi.app/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/ratelimit"
)

const userContextKey = "user"

// RateLimitMiddleware spaces requests to at most rps per second.
// A non-positive rps disables limiting.
func RateLimitMiddleware(rps int) gin.HandlerFunc {
	if rps <= 0 {
		return func(c *gin.Context) {}
	}
	limit := ratelimit.New(rps)
	return func(c *gin.Context) {
		limit.Take()
	}
}

func (s *HTTPServerAdapter) metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.metrics.ObserveRequest(c.Request.Method, c.FullPath(), c.Writer.Status(), time.Since(start))
	}
}

// authMiddleware admits requests carrying a valid session cookie and
// stores the signed-in user under "user"
func (s *HTTPServerAdapter) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := c.Cookie(s.config.CookieName)

		userID, err := s.tokens.Verify(token)
		if err != nil {
			s.abortWithError(c, err)
			return
		}

		user, err := s.accountUseCase.CurrentUser(c.Request.Context(), userID)
		if err != nil {
			s.abortWithError(c, err)
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

func (s *HTTPServerAdapter) abortWithError(c *gin.Context, err error) {
	s.handleError(c, err)
	c.Abort()
}

// currentUser returns the user stored by authMiddleware
func currentUser(c *gin.Context) (*account.User, error) {
	value, ok := c.Get(userContextKey)
	if !ok {
		return nil, errors.NewUnauthorizedError("Unauthorized - No Token Provided")
	}
	user, ok := value.(*account.User)
	if !ok || user == nil {
		return nil, errors.NewUnauthorizedError("Unauthorized - Invalid Token")
	}
	return user, nil
}
