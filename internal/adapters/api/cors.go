package api

import (
	"net/http"
	"strings"

	"catalogapi.app/internal/ports"
	"catalogapi.app/pkg/errors"
	"github.com/gin-gonic/gin"
	"github.com/go-chi/cors"
)

const corsRejection = "Not allowed by CORS"

var (
	corsMethods = []string{"GET", "POST", "HEAD", "PUT", "PATCH", "UPDATE", "DELETE"}
	corsHeaders = []string{"Content-Type", "Authorization"}
)

// OriginGate decides whether a browser origin may call the API
type OriginGate struct {
	allowed []string
	logger  ports.Logger
}

func NewOriginGate(allowed []string, logger ports.Logger) *OriginGate {
	return &OriginGate{
		allowed: append([]string(nil), allowed...),
		logger:  logger,
	}
}

// Check returns a forbidden error for an origin outside the allowlist.
// Requests without an Origin header are let through.
func (g *OriginGate) Check(origin string) error {
	if g.allows(origin) {
		return nil
	}
	if g.logger != nil {
		g.logger.Error("CORS blocked origin",
			ports.F("origin", origin),
			ports.F("allowedOrigins", g.allowed))
	}
	return errors.NewForbiddenError(corsRejection)
}

func (g *OriginGate) allows(origin string) bool {
	if origin == "" {
		return true
	}
	normalized := strings.TrimSuffix(origin, "/")
	for _, candidate := range g.allowed {
		if strings.TrimSuffix(candidate, "/") == normalized {
			return true
		}
	}
	return false
}

// Allowed returns a copy of the allowlist
func (g *OriginGate) Allowed() []string {
	return append([]string(nil), g.allowed...)
}

func (s *HTTPServerAdapter) corsMiddleware() gin.HandlerFunc {
	headers := cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return s.gate.allows(origin)
		},
		AllowedMethods:   corsMethods,
		AllowedHeaders:   corsHeaders,
		AllowCredentials: true,
	})
	emit := wrapHandler(headers)

	return func(c *gin.Context) {
		if err := s.gate.Check(c.GetHeader("Origin")); err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{Error: corsRejection})
			return
		}
		emit(c)
	}
}

// wrapHandler runs a net/http middleware inside gin. When the middleware
// answers the request itself, as go-chi/cors does for preflights, the
// gin chain is aborted.
func wrapHandler(middleware func(http.Handler) http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		passed := false
		middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			passed = true
			c.Request = r
			c.Next()
		})).ServeHTTP(c.Writer, c.Request)

		if !passed {
			c.Writer.WriteHeaderNow()
			c.Abort()
		}
	}
}
