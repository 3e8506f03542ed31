package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	TimezoneHeader     = "X-Timezone"
	timezoneQuery      = "tz"
	ContextLocationKey = "location"
)

// Timezone resolves the caller's IANA zone from the X-Timezone header or the
// tz query parameter. Requests without either use fallback.
func Timezone(fallback *time.Location) gin.HandlerFunc {
	if fallback == nil {
		fallback = time.UTC
	}

	return func(c *gin.Context) {
		name := strings.TrimSpace(c.GetHeader(TimezoneHeader))
		if name == "" {
			name = strings.TrimSpace(c.Query(timezoneQuery))
		}

		loc := fallback
		if name != "" {
			parsed, err := time.LoadLocation(name)
			if err != nil || strings.EqualFold(name, "local") {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid timezone", "timezone": name})
				return
			}
			loc = parsed
		}

		c.Set(ContextLocationKey, loc)
		c.Next()
	}
}

// GetLocation returns the zone stored by Timezone, or UTC.
func GetLocation(c *gin.Context) *time.Location {
	if v, ok := c.Get(ContextLocationKey); ok {
		if loc, ok := v.(*time.Location); ok && loc != nil {
			return loc
		}
	}
	return time.UTC
}
