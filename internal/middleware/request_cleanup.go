package middleware

import (
	"io"
	"net/http"
)

// LimitAndDrainRequest caps how much of the request body a handler may read,
// then drains and closes whatever the handler left behind so the
// connection can be reused
func LimitAndDrainRequest(maxBodyBytes int64) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body := r.Body
			if body != nil && maxBodyBytes > 0 {
				r.Body = http.MaxBytesReader(w, body, maxBodyBytes)
			}
			next.ServeHTTP(w, r)
			if body != nil {
				_, _ = io.Copy(io.Discard, body)
				_ = body.Close()
			}
		})
	}
}
