package middleware

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
)

const slowRequest = 200 * time.Millisecond

func RequestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		latency := time.Since(start)
		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency", latency,
			"ip", c.ClientIP(),
		}

		switch {
		case c.Writer.Status() >= 500:
			slog.Error("request", attrs...)
		case latency > slowRequest:
			slog.Warn("slow request", attrs...)
		default:
			slog.Info("request", attrs...)
		}
	}
}
