package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"go-media-api/internal/model"
)

func Timeout(timeout time.Duration) func(http.Handler) http.Handler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	// Same error envelope the handlers write, rendered once up front.
	body, _ := json.Marshal(model.ErrorResponse{
		Success: false,
		Error: &model.APIError{
			Code:    "REQUEST_TIMEOUT",
			Message: "request timed out",
		},
	})

	return func(next http.Handler) http.Handler {
		return http.TimeoutHandler(next, timeout, string(body))
	}
}
