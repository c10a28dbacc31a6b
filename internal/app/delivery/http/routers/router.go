package routers

import (
	"fmt"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/config"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/controllers"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	submissionController *controllers.SubmissionController,
	responseController *controllers.ResponseController,
	healthController *controllers.HealthController,
) {

	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging(middlewares.Log))

	endpointPrefix := fmt.Sprintf("/%s", internalConfig.App.EndpointPrefix)
	versionPrefix := fmt.Sprintf("/%s", internalConfig.App.Version)

	router.Get("/healthz", healthController.Check)

	router.Route(endpointPrefix, func(r chi.Router) {
		r.Route(versionPrefix, func(r chi.Router) {
			r.Route("/invoices", func(r chi.Router) {
				attachInvoiceSubmissionRouter(r, middlewares, submissionController)
			})

			r.Route("/records", func(r chi.Router) {
				attachRecordSubmissionRouter(r, middlewares, submissionController)
			})

			r.Route("/submissions", func(r chi.Router) {
				attachSubmissionRouter(r, middlewares, submissionController)
			})

			r.Route("/responses", func(r chi.Router) {
				attachResponseRouter(r, middlewares, responseController)
			})
		})
	})
}
