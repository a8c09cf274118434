package middleware

import (
	"strings"
	"time"

	"github.com/steveiliop56/tinynotion/internal/utils"

	"github.com/gin-gonic/gin"
)

var (
	loggerSkipPathsPrefix = []string{
		"GET /api/healthz",
		"HEAD /api/healthz",
		"GET /favicon.ico",
	}
)

type ZerologMiddleware struct{}

func NewZerologMiddleware() *ZerologMiddleware {
	return &ZerologMiddleware{}
}

func (m *ZerologMiddleware) Init() error {
	return nil
}

func (m *ZerologMiddleware) logPath(path string) bool {
	for _, prefix := range loggerSkipPathsPrefix {
		if strings.HasPrefix(path, prefix) {
			return false
		}
	}
	return true
}

func (m *ZerologMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tStart := time.Now()

		c.Next()

		code := c.Writer.Status()
		address := c.Request.RemoteAddr
		clientIP := c.ClientIP()
		method := c.Request.Method
		path := c.Request.URL.Path

		latency := time.Since(tStart).String()

		// health checks and similar noise are only logged at debug
		if !m.logPath(method + " " + path) {
			utils.Log.HTTP.Debug().Str("method", method).Str("path", path).Str("address", address).Int("status", code).Str("latency", latency).Msg("Request")
			return
		}

		switch {
		case code >= 200 && code < 300:
			utils.Log.HTTP.Info().Str("method", method).Str("path", path).Str("address", address).Str("clientIp", clientIP).Int("status", code).Str("latency", latency).Msg("Request")
		case code >= 300 && code < 400:
			utils.Log.HTTP.Warn().Str("method", method).Str("path", path).Str("address", address).Str("clientIp", clientIP).Int("status", code).Str("latency", latency).Msg("Request")
		case code >= 400:
			utils.Log.HTTP.Error().Str("method", method).Str("path", path).Str("address", address).Str("clientIp", clientIP).Int("status", code).Str("latency", latency).Msg("Request")
		}
	}
}
