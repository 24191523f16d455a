// Package middleware contains Gin middleware functions.
// Middleware runs before the route handler and either calls c.Next() to
// continue or one of the c.Abort* helpers to stop the chain.
package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyAPIKey is where auth middleware stores the caller's key for
// downstream middleware such as RateLimit.
const ContextKeyAPIKey = "api_key"

// APIKeyAuth returns middleware that accepts any of the configured client keys.
// The key comes from the X-API-Key header or the api_key query param.
func APIKeyAuth(validKeys []string) gin.HandlerFunc {
	return keyAuth(validKeys, "API key", http.StatusUnauthorized)
}

// AdminKeyAuth is APIKeyAuth for admin endpoints. A present but unknown key
// is a 403 rather than a 401.
func AdminKeyAuth(adminKeys []string) gin.HandlerFunc {
	return keyAuth(adminKeys, "admin API key", http.StatusForbidden)
}

func keyAuth(keys []string, kind string, invalidStatus int) gin.HandlerFunc {
	// map[string]struct{} is Go's set idiom.
	keySet := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		keySet[k] = struct{}{}
	}

	return func(c *gin.Context) {
		key := requestKey(c)
		if key == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "missing " + kind,
			})
			return
		}

		if _, ok := keySet[key]; !ok {
			c.AbortWithStatusJSON(invalidStatus, gin.H{
				"error": "invalid " + kind,
			})
			return
		}

		c.Set(ContextKeyAPIKey, key)
		c.Next()
	}
}

func requestKey(c *gin.Context) string {
	if key := c.GetHeader("X-API-Key"); key != "" {
		return key
	}
	return c.Query("api_key")
}
