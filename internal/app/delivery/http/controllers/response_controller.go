package controllers

import (
	"context"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/app/contracts"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/exceptions"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"

	"go.uber.org/zap"
)

type ResponseController struct {
	Log             *zap.Logger
	ResponseUsecase contracts.ResponseUsecase
}

var (
	responseControllerInstance *ResponseController
	onceResponseController     sync.Once
)

func NewResponseController(logger *zap.Logger, responseUsecase contracts.ResponseUsecase) *ResponseController {
	onceResponseController.Do(func() {
		responseControllerInstance = &ResponseController{
			Log:             logger,
			ResponseUsecase: responseUsecase,
		}
	})
	return responseControllerInstance
}

// ProcessInbound accepts the raw clearinghouse response document. The body
// is passed through untouched so the tolerant decoder sees exactly what the
// clearinghouse sent.
func (ctrl *ResponseController) ProcessInbound(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		ctrl.Log.Error("ResponseController.ProcessInbound requestID not found in context")
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}
	ctrl.Log.Info("ResponseController.ProcessInbound called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		ctrl.Log.Error("ResponseController.ProcessInbound error reading body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrResponseEmptyContent(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	result, err := ctrl.ResponseUsecase.ProcessInbound(ctx, body)
	if err != nil {
		ctrl.Log.Error("ResponseController.ProcessInbound error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ApplyResponseSuccessMessage, result)
}
