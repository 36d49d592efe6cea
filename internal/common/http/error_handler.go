package http

import (
	"net/http"
	"strconv"

	commonerrors "github.com/AlibekovAA/microblog/internal/common/errors"
	"github.com/AlibekovAA/microblog/internal/common/httpmetrics"
	"github.com/AlibekovAA/microblog/internal/common/logger"
	"github.com/AlibekovAA/microblog/internal/observability/metrics"
)

type ErrorHandler struct {
	log *logger.Logger
}

func NewErrorHandler(log *logger.Logger) *ErrorHandler {
	return &ErrorHandler{log: log}
}

// HandleError answers with the DomainError's client message, or a generic 500.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	if domainErr, ok := commonerrors.AsDomainError(err); ok {
		h.handleDomainError(w, r, domainErr)
		return
	}

	h.log.WithFields(r.Context(), logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"action": "unhandled_error",
	}).Errorf("unhandled error: %v", err)

	h.countHTTPError(r, http.StatusInternalServerError)
	WriteError(w, http.StatusInternalServerError, commonerrors.ErrInternalError.Message())
}

func (h *ErrorHandler) handleDomainError(w http.ResponseWriter, r *http.Request, err commonerrors.DomainError) {
	status := err.HTTPStatus()

	entry := h.log.WithFields(r.Context(), logger.Fields{
		"error_code": err.Code(),
		"category":   string(err.Category()),
		"status":     status,
		"action":     "domain_error",
	})

	if status >= http.StatusInternalServerError {
		entry.Errorf("domain error: %s", err.Error())
	} else if h.log.ShouldLog(logger.DEBUG) {
		entry.Debugf("domain error: %s", err.Error())
	}

	metrics.DomainErrorsTotal.WithLabelValues(
		string(err.Category()),
		err.Code(),
		strconv.Itoa(status),
	).Inc()
	h.countHTTPError(r, status)

	WriteError(w, status, err.Message())
}

// HandleRawError writes err's own text, for endpoints that surface failures verbatim.
func (h *ErrorHandler) HandleRawError(w http.ResponseWriter, r *http.Request, status int, err error) {
	h.log.WithFields(r.Context(), logger.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"status": status,
		"action": "raw_error",
	}).Errorf("request failed: %v", err)

	h.countHTTPError(r, status)
	WriteError(w, status, err.Error())
}

func (h *ErrorHandler) countHTTPError(r *http.Request, status int) {
	metrics.HTTPErrorsTotal.WithLabelValues(
		strconv.Itoa(status),
		httpmetrics.NormalizePath(r.URL.Path),
		r.Method,
	).Inc()
}
