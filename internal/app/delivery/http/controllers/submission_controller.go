package controllers

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/dto/requests"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	json "github.com/goccy/go-json"
	"go.uber.org/zap"
)

type SubmissionController struct {
	Log               *zap.Logger
	SubmissionUsecase contracts.SubmissionUsecase
}

var (
	submissionControllerInstance *SubmissionController
	onceSubmissionController     sync.Once
)

func NewSubmissionController(logger *zap.Logger, submissionUsecase contracts.SubmissionUsecase) *SubmissionController {
	onceSubmissionController.Do(func() {
		submissionControllerInstance = &SubmissionController{
			Log:               logger,
			SubmissionUsecase: submissionUsecase,
		}
	})
	return submissionControllerInstance
}

func (ctrl *SubmissionController) SubmitInvoice(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SubmissionController.SubmitInvoice requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("SubmissionController.SubmitInvoice called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.SubmitInvoice)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		ctrl.Log.Error("SubmissionController.SubmitInvoice error decoding JSON",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	request.InvoiceID = chi.URLParam(r, "invoiceID")
	request.RecordID = chi.URLParam(r, "recordID")

	if err := utils.ValidateStruct(request); err != nil {
		ctrl.Log.Error("SubmissionController.SubmitInvoice validation error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	response, err := ctrl.SubmissionUsecase.Submit(ctx, request)
	if err != nil {
		ctrl.Log.Error("SubmissionController.SubmitInvoice error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if err == context.DeadlineExceeded {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitInvoiceSuccessMessage, response)
}

func (ctrl *SubmissionController) Retransmit(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SubmissionController.Retransmit requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	submissionID := chi.URLParam(r, "submissionID")
	if submissionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "submissionID"))
		return
	}
	ctrl.Log.Info("SubmissionController.Retransmit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSubmissionIDKey, submissionID),
	)

	ctx, cancel := context.WithTimeout(r.Context(), 120*time.Second)
	defer cancel()

	response, err := ctrl.SubmissionUsecase.Retransmit(ctx, submissionID)
	if err != nil {
		ctrl.Log.Error("SubmissionController.Retransmit error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RetransmitSubmissionSuccessMessage, response)
}

func (ctrl *SubmissionController) GetSubmission(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SubmissionController.GetSubmission requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	submissionID := chi.URLParam(r, "submissionID")
	if submissionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "submissionID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	submission, err := ctrl.SubmissionUsecase.GetSubmission(ctx, submissionID)
	if err != nil {
		ctrl.Log.Error("SubmissionController.GetSubmission error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSubmissionSuccessMessage, submission)
}

func (ctrl *SubmissionController) ListHistory(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("SubmissionController.ListHistory requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	submissionID := chi.URLParam(r, "submissionID")
	if submissionID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(nil, "submissionID"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	entries, err := ctrl.SubmissionUsecase.ListHistory(ctx, submissionID)
	if err != nil {
		ctrl.Log.Error("SubmissionController.ListHistory error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSubmissionHistorySuccessMessage, entries)
}
