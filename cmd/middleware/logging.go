package middleware

import (
	"time"

	"github.com/google/uuid"
	"github.com/wb-go/wbf/ginext"
	"github.com/wb-go/wbf/zlog"
)

// LoggingMiddleware tags every request with an id and logs one line on the
// way out.
func LoggingMiddleware() func(ctx *ginext.Context) {
	return func(ctx *ginext.Context) {
		start := time.Now()
		requestID := uuid.NewString()
		ctx.Writer.Header().Set("X-Request-ID", requestID)

		ctx.Next()

		zlog.Logger.Info().
			Str("request_id", requestID).
			Str("method", ctx.Request.Method).
			Str("path", ctx.Request.URL.Path).
			Int("status", ctx.Writer.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	}
}
