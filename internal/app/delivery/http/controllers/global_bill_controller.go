package controllers

import (
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/utils"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type GlobalBillController struct {
	Log               *zap.Logger
	GlobalBillUsecase contracts.GlobalBillUsecase
}

var (
	globalBillControllerInstance *GlobalBillController
	onceGlobalBillController     sync.Once
)

func NewGlobalBillController(logger *zap.Logger, globalBillUsecase contracts.GlobalBillUsecase) *GlobalBillController {
	onceGlobalBillController.Do(func() {
		instance := &GlobalBillController{
			Log:               logger,
			GlobalBillUsecase: globalBillUsecase,
		}
		globalBillControllerInstance = instance
	})
	return globalBillControllerInstance
}

func (ctrl *GlobalBillController) Totals(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	globalBillID, err := strconv.Atoi(chi.URLParam(r, constvars.URLParamGlobalBillID))
	if err != nil || globalBillID <= 0 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamGlobalBillID))
		return
	}

	totals := ctrl.GlobalBillUsecase.AggregateTotals(r.Context(), globalBillID)

	utils.BuildSuccessResponse(w, constvars.StatusOK, "totals aggregated", totals)
}

func (ctrl *GlobalBillController) ListConsommations(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	globalBillID, err := strconv.Atoi(chi.URLParam(r, constvars.URLParamGlobalBillID))
	if err != nil || globalBillID <= 0 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamGlobalBillID))
		return
	}

	consommations, err := ctrl.GlobalBillUsecase.ListConsommations(r.Context(), globalBillID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, asClientError(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "consommations fetched", consommations)
}
