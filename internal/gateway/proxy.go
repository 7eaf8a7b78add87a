// Package gateway routes approved requests to the downstream services.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// newProxy builds a reverse proxy for a downstream service base URL. The
// request path is forwarded unchanged; identity headers injected by the
// auth filter travel with the request.
func newProxy(target string, logger *zap.Logger) (gin.HandlerFunc, error) {
	targetURL, err := url.Parse(target)
	if err != nil {
		return nil, fmt.Errorf("invalid downstream url %s: %w", target, err)
	}

	proxy := httputil.NewSingleHostReverseProxy(targetURL)
	proxy.ErrorHandler = func(w http.ResponseWriter, r *http.Request, err error) {
		logger.Error("downstream unreachable",
			zap.String("path", r.URL.Path),
			zap.String("target", targetURL.Host),
			zap.Error(err))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadGateway)
		fmt.Fprintf(w, `{"error": "downstream service unavailable", "status": %d}`, http.StatusBadGateway)
	}

	return func(c *gin.Context) {
		proxy.ServeHTTP(c.Writer, c.Request)
	}, nil
}
