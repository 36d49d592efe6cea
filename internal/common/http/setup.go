package http

import (
	"net/http"

	"github.com/AlibekovAA/microblog/internal/common/httpmetrics"
	"github.com/AlibekovAA/microblog/internal/common/logger"
)

// BuildBaseHandler wraps handler with the middleware every route shares.
func BuildBaseHandler(appName string, log *logger.Logger, maxRequestSize int64, handler http.Handler) http.Handler {
	metrics := httpmetrics.New(appName)
	recovery := RecoveryMiddleware(log)
	maxSize := MaxRequestSizeMiddleware(maxRequestSize)

	return SecurityHeadersMiddleware(recovery(TraceIDMiddleware(maxSize(metrics.Wrap(handler)))))
}
