package ai

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/openai/openai-go/v3"
	"google.golang.org/genai"

	"github.com/comitanigiacomo/habitual/internal/core/domain"
)

// statusCode digs the HTTP status out of provider SDK errors, or 0.
func statusCode(err error) int {
	var oaErr *openai.Error
	if errors.As(err, &oaErr) {
		return oaErr.StatusCode
	}

	var gErr genai.APIError
	if errors.As(err, &gErr) {
		return gErr.Code
	}
	var gErrPtr *genai.APIError
	if errors.As(err, &gErrPtr) && gErrPtr != nil {
		return gErrPtr.Code
	}

	return 0
}

// classify marks client errors as domain.ErrMotivationRejected so callers
// stop retrying. Rate limits, timeouts and server errors stay retryable.
func classify(provider string, err error) error {
	status := statusCode(err)

	switch {
	case status == http.StatusTooManyRequests,
		status == http.StatusRequestTimeout,
		status >= http.StatusInternalServerError:
		return fmt.Errorf("%s: status %d: %w", provider, status, err)
	case status >= http.StatusBadRequest:
		return fmt.Errorf("%s: %w: status %d: %w", provider, domain.ErrMotivationRejected, status, err)
	default:
		return fmt.Errorf("%s: %w", provider, err)
	}
}
