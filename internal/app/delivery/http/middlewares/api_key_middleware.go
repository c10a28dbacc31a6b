package middlewares

import (
	"context"
	"net/http"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"
)

const HeaderAPIKey = "x-api-key"

// APIKeyAuth guards the inbound response endpoint. The presented key is
// compared against the configured bcrypt hash; a missing or wrong key is
// rejected outright.
func (m *Middlewares) APIKeyAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		apiKey := r.Header.Get(HeaderAPIKey)

		if apiKey == "" || !utils.CheckAPIKeyHash(apiKey, m.InternalConfig.App.InboundAPIKeyHash) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrInvalidAPIKey(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_API_KEY_AUTH, true)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
