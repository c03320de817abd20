package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/delivery/http/middlewares"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type ConsentController struct {
	Log            *zap.Logger
	ConsentUsecase contracts.ConsentUsecase
}

func NewConsentController(logger *zap.Logger, consentUsecase contracts.ConsentUsecase) *ConsentController {
	return &ConsentController{
		Log:            logger,
		ConsentUsecase: consentUsecase,
	}
}

func (ctrl *ConsentController) StoreConsent(w http.ResponseWriter, r *http.Request) {
	request := new(requests.StoreConsent)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeStoreConsentRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	// The IP feeds anonymous-id derivation only; it is never persisted.
	request.RemoteIP = utils.ExtractClientIP(r)
	request.UserAgent = utils.ExtractUserAgent(r)

	var actor *contracts.Actor
	if resolved, ok := middlewares.ActorFromContext(r.Context()); ok {
		actor = &resolved
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsentUsecase.StoreConsent(ctx, actor, request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, "consent recorded", response)
}

func (ctrl *ConsentController) WithdrawConsent(w http.ResponseWriter, r *http.Request) {
	request := new(requests.WithdrawConsent)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeWithdrawConsentRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	var actor *contracts.Actor
	if resolved, ok := middlewares.ActorFromContext(r.Context()); ok {
		actor = &resolved
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	err = ctrl.ConsentUsecase.WithdrawConsent(ctx, actor, request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "consent withdrawn", nil)
}

func (ctrl *ConsentController) History(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, total, err := ctrl.ConsentUsecase.History(ctx, actor, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, "consent history retrieved", paginationResponse, response)
}

func (ctrl *ConsentController) List(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	pagination := utils.BuildPaginationRequest(r)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, total, err := ctrl.ConsentUsecase.List(ctx, actor, pagination)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	paginationResponse := utils.BuildPaginationResponse(total, pagination.Page, pagination.PageSize, r.URL.Path)
	utils.BuildSuccessResponseWithPagination(w, constvars.StatusOK, "consents retrieved", paginationResponse, response)
}

// Stats is public: the usecase only returns ledger-wide aggregates.
func (ctrl *ConsentController) Stats(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.ConsentUsecase.Stats(ctx)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, "consent stats retrieved", response)
}
