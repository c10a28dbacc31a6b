package controllers

import (
	"net/http"
	"sync"

	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/constvars"
	"github.com/sharyyoru/aestheticclinic-sub005/internal/pkg/utils"

	"go.uber.org/zap"
)

type HealthController struct {
	Log *zap.Logger
}

var (
	healthControllerInstance *HealthController
	onceHealthController     sync.Once
)

func NewHealthController(logger *zap.Logger) *HealthController {
	onceHealthController.Do(func() {
		healthControllerInstance = &HealthController{Log: logger}
	})
	return healthControllerInstance
}

func (ctrl *HealthController) Check(w http.ResponseWriter, r *http.Request) {
	utils.BuildSuccessResponse(w, constvars.StatusOK, "ok", nil)
}
