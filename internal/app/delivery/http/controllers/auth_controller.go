package controllers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/contracts"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type AuthController struct {
	Log            *zap.Logger
	AuthUsecase    contracts.AuthUsecase
	InternalConfig *config.InternalConfig
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase, internalConfig *config.InternalConfig) *AuthController {
	return &AuthController{
		Log:            logger,
		AuthUsecase:    authUsecase,
		InternalConfig: internalConfig,
	}
}

func (ctrl *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	request := new(requests.Register)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeRegisterRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AuthUsecase.Register(ctx, request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, "registration received, awaiting activation", response)
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	request := new(requests.Login)
	err := json.NewDecoder(r.Body).Decode(&request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}
	utils.SanitizeLoginRequest(request)

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AuthUsecase.Login(ctx, request)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.setRefreshCookie(w, response.Refresh)
	utils.BuildSuccessResponse(w, constvars.StatusOK, "login successful", response)
}

func (ctrl *AuthController) Refresh(w http.ResponseWriter, r *http.Request) {
	request := new(requests.Refresh)
	// The body is optional; the cookie fallback covers browser clients.
	_ = json.NewDecoder(r.Body).Decode(&request)

	refreshToken := utils.RefreshTokenFromRequest(r, request.Refresh)
	if refreshToken == "" {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(errors.New("no refresh credential in body or cookie")))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AuthUsecase.Refresh(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.setRefreshCookie(w, response.Refresh)
	utils.BuildSuccessResponse(w, constvars.StatusOK, "token refreshed", response)
}

func (ctrl *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	request := new(requests.Logout)
	_ = json.NewDecoder(r.Body).Decode(&request)

	refreshToken := utils.RefreshTokenFromRequest(r, request.Refresh)

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	response, err := ctrl.AuthUsecase.Logout(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctrl.clearRefreshCookie(w)
	utils.BuildSuccessResponse(w, constvars.StatusOK, "logout successful", response)
}

func (ctrl *AuthController) setRefreshCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     ctrl.InternalConfig.Cookie.RefreshName,
		Value:    token,
		Path:     "/",
		Domain:   ctrl.InternalConfig.Cookie.Domain,
		MaxAge:   int(ctrl.AuthUsecase.RefreshTokenTTL().Seconds()),
		HttpOnly: true,
		Secure:   ctrl.InternalConfig.App.Env != "development",
		SameSite: http.SameSiteStrictMode,
	})
}

func (ctrl *AuthController) clearRefreshCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     ctrl.InternalConfig.Cookie.RefreshName,
		Value:    "",
		Path:     "/",
		Domain:   ctrl.InternalConfig.Cookie.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   ctrl.InternalConfig.App.Env != "development",
		SameSite: http.SameSiteStrictMode,
	})
}
