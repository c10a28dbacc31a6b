package routers

import (
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/controllers"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachInvoiceSubmissionRouter(router chi.Router, middlewares *middlewares.Middlewares, ctrl *controllers.SubmissionController) {
	// POST /invoices/{invoiceID}/submissions
	router.Post("/{invoiceID}/submissions", ctrl.SubmitInvoice)
}

func attachRecordSubmissionRouter(router chi.Router, middlewares *middlewares.Middlewares, ctrl *controllers.SubmissionController) {
	// POST /records/{recordID}/submissions
	router.Post("/{recordID}/submissions", ctrl.SubmitInvoice)
}

func attachSubmissionRouter(router chi.Router, middlewares *middlewares.Middlewares, ctrl *controllers.SubmissionController) {
	router.Get("/{submissionID}", ctrl.GetSubmission)
	router.Get("/{submissionID}/history", ctrl.ListHistory)
	router.Post("/{submissionID}/retransmit", ctrl.Retransmit)
}
