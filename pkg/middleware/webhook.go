package middleware

import (
	"crypto/subtle"
	"net/http"

	"go.uber.org/zap"

	"github.com/sameer-776/seminar-app/pkg/utils"
)

const webhookHeader = "X-Webhook-Token"

// Webhook gates the event endpoints with a shared secret. The trigger
// host is a machine caller, not an end user, so it does not carry a
// user token.
func Webhook(token string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got := r.Header.Get(webhookHeader)
			if token == "" || subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
				logger.Warn("Webhook token rejected",
					zap.String("path", r.URL.Path),
					zap.String("ip", r.RemoteAddr),
				)
				utils.ResponseUnauthorized(w, "Invalid webhook token")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
