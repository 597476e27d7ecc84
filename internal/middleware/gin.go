package middleware

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tollgate-io/tollgate/internal/routing"
)

// GinHandler returns the instrumentation hook as a gin middleware. Route
// metadata comes from gin's own convention: the matched full path pattern
// and the resolved parameters on the context.
func (m *TelemetryMiddleware) GinHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.exposition.Matches(c.Request.URL.Path) {
			m.exposition.ServeHTTP(c.Writer, c.Request)
			c.Abort()
			return
		}

		start := time.Now()
		requestSize := parseSize(c.Request.Header.Get("Content-Length"))

		defer func() {
			rec := recover()

			status := c.Writer.Status()
			if rec != nil && !c.Writer.Written() {
				status = http.StatusInternalServerError
			}

			info := routing.RouteInfo{
				BasePath: m.basePath,
				Pattern:  c.FullPath(),
				RawPath:  c.Request.URL.Path,
				Params:   ginParams(c.Params),
			}
			if alt, ok := routing.RouteFromContext(c.Request.Context()); ok {
				info.AltPattern = alt
			}

			m.record(c.Request.Method, status, info, requestSize, ginResponseSize(c), time.Since(start))

			if rec != nil {
				panic(rec)
			}
		}()

		c.Next()
	}
}

func ginParams(params gin.Params) map[string]string {
	if len(params) == 0 {
		return nil
	}
	resolved := make(map[string]string, len(params))
	for _, p := range params {
		resolved[p.Key] = p.Value
	}
	return resolved
}

func ginResponseSize(c *gin.Context) float64 {
	if header := c.Writer.Header().Get("Content-Length"); header != "" {
		if declared := parseSize(header); declared > 0 {
			return declared
		}
	}
	if size := c.Writer.Size(); size > 0 {
		return float64(size)
	}
	return 0
}
