package routers

import (
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/controllers"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachResponseRouter(router chi.Router, middlewares *middlewares.Middlewares, ctrl *controllers.ResponseController) {
	// Inbound documents come from the clearinghouse forwarder, which
	// authenticates with a static API key.
	router.With(middlewares.APIKeyAuth).Post("/", ctrl.ProcessInbound)
}
