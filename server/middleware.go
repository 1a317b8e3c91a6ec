package server

import (
	"errors"
	"fmt"
	"hourbox/auth"
	L "hourbox/logger"
	"hourbox/metrics"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

const CTX_USER_ID = "userId"

// AuthMiddleware requires a valid bearer JWT and stores the user id in the context.
func AuthMiddleware(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := auth.BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			message := "invalid authorization header format"
			if errors.Is(err, auth.ErrMissingToken) {
				message = err.Error()
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": message})
			return
		}
		claims, err := auth.ValidateAccessToken(token, jwtSecret)
		if err != nil {
			L.Debug(fmt.Sprintf("rejected token: %v", err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": auth.ErrInvalidToken.Error()})
			return
		}
		c.Set(CTX_USER_ID, claims.UserId)
		c.Next()
	}
}

func MetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unknown"
		}
		c.Next()
		status := strconv.Itoa(c.Writer.Status())
		metrics.HttpRequests.WithLabelValues(c.Request.Method, endpoint, status).Inc()
		metrics.HttpRequestDuration.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}

// LoggerMiddleware logs every request through L; server errors at warn level.
func LoggerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		line := fmt.Sprintf("%s %s %d %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start).Round(time.Microsecond))
		if c.Writer.Status() >= http.StatusInternalServerError {
			L.Warn(line)
			return
		}
		L.Info(line)
	}
}
