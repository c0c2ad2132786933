package controllers

import (
	"billsync-service/internal/app/config"
	"billsync-service/internal/app/contracts"
	"billsync-service/internal/app/services/shared/ratelimiter"
	"billsync-service/internal/pkg/constvars"
	"billsync-service/internal/pkg/dto/requests"
	"billsync-service/internal/pkg/exceptions"
	"billsync-service/internal/pkg/utils"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type ConsommationController struct {
	Log                 *zap.Logger
	ConsommationUsecase contracts.ConsommationUsecase
	RateUsecase         contracts.RateUsecase
	Limiter             *ratelimiter.ResourceLimiter
	InternalConfig      *config.InternalConfig
}

var (
	consommationControllerInstance *ConsommationController
	onceConsommationController     sync.Once
)

func NewConsommationController(
	logger *zap.Logger,
	consommationUsecase contracts.ConsommationUsecase,
	rateUsecase contracts.RateUsecase,
	limiter *ratelimiter.ResourceLimiter,
	internalConfig *config.InternalConfig,
) *ConsommationController {
	onceConsommationController.Do(func() {
		instance := &ConsommationController{
			Log:                 logger,
			ConsommationUsecase: consommationUsecase,
			RateUsecase:         rateUsecase,
			Limiter:             limiter,
			InternalConfig:      internalConfig,
		}
		consommationControllerInstance = instance
	})
	return consommationControllerInstance
}

func (ctrl *ConsommationController) Create(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.CreateConsommation)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// The create call is not idempotent and recovery queries are expensive,
	// so each beneficiary gets a fixed-window quota.
	limiterOutput, err := ctrl.Limiter.ApplyResourceLimiter(r.Context(), &ratelimiter.ApplyResourceLimiterInput{
		ResourceName:      strconv.Itoa(request.BeneficiaryID),
		LimiterGroupName:  "consommation-create",
		WindowDurationSec: ctrl.InternalConfig.App.CreateWindowSec,
		MaxQuota:          ctrl.InternalConfig.App.CreateMaxQuota,
	})
	if err == nil && !limiterOutput.Allowed {
		w.Header().Set(constvars.HeaderRetryAfter, strconv.Itoa(limiterOutput.RetryAfterSecs))
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrConsommationCreateRateLimited(limiterOutput.RetryAfterSecs))
		return
	}
	if err != nil {
		// Limiter store being down should not block billing.
		ctrl.Log.Warn("ConsommationController.Create limiter unavailable, allowing request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	created, err := ctrl.ConsommationUsecase.CreateWithRecovery(r.Context(), request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, asClientError(err))
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, "consommation created", created)
}

func (ctrl *ConsommationController) ResolveRates(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	consommationID, err := strconv.Atoi(chi.URLParam(r, constvars.URLParamConsommationID))
	if err != nil || consommationID <= 0 {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLParamConsommationID))
		return
	}

	globalBillID := 0
	if raw := r.URL.Query().Get(constvars.URLQueryParamGlobalBillID); raw != "" {
		globalBillID, err = strconv.Atoi(raw)
		if err != nil || globalBillID < 0 {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrURLParamIDValidation(err, constvars.URLQueryParamGlobalBillID))
			return
		}
	}

	resolution := ctrl.RateUsecase.ResolveRates(r.Context(), &requests.ResolveRates{
		ConsommationID: consommationID,
		GlobalBillID:   globalBillID,
	})

	utils.BuildSuccessResponse(w, constvars.StatusOK, "rates resolved", resolution)
}

func (ctrl *ConsommationController) PollPaymentStatus(w http.ResponseWriter, r *http.Request) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrMissingRequestID(nil))
		return
	}

	request := new(requests.PollPaymentStatus)
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	if err := utils.ValidateStruct(request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	statusMap := ctrl.ConsommationUsecase.PollPaymentStatus(r.Context(), request.ConsommationIDs)

	utils.BuildSuccessResponse(w, constvars.StatusOK, "payment status fetched", statusMap)
}
