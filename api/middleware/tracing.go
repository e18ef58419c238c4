package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"
)

// NewRelicMiddleware returns a gin middleware that opens a transaction per
// request. A nil application yields a pass-through, so callers do not need
// to branch on whether telemetry is configured.
func NewRelicMiddleware(app *newrelic.Application) gin.HandlerFunc {
	if app == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}
	return nrgin.Middleware(app)
}
