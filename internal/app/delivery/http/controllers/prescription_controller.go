package controllers

import (
	"context"
	"net/http"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/delivery/http/middlewares"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/constvars"
	"carelink-service/internal/pkg/dto/responses"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type PrescriptionController struct {
	Log                 *zap.Logger
	PrescriptionUsecase contracts.PrescriptionUsecase
}

func NewPrescriptionController(logger *zap.Logger, prescriptionUsecase contracts.PrescriptionUsecase) *PrescriptionController {
	return &PrescriptionController{
		Log:                 logger,
		PrescriptionUsecase: prescriptionUsecase,
	}
}

func (ctrl *PrescriptionController) ConvertServiceDemand(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}

	demandID, err := utils.ParseUintPathParam(chi.URLParam(r, "demandID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	prescription, err := ctrl.PrescriptionUsecase.ConvertServiceDemand(ctx, actor, demandID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, "service demand converted", mapPrescriptionToResponse(prescription))
}

func (ctrl *PrescriptionController) Scheduled(w http.ResponseWriter, r *http.Request) {
	actor, ok := middlewares.ActorFromContext(r.Context())
	if !ok {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrTokenMissing(nil))
		return
	}
	if !actor.Role.IsStaff() {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrForbiddenRole(nil))
		return
	}

	prescriptionID, err := utils.ParseUintPathParam(chi.URLParam(r, "prescriptionID"))
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	scheduled, err := ctrl.PrescriptionUsecase.IsScheduled(ctx, prescriptionID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	response := &responses.PrescriptionScheduled{
		PrescriptionID: prescriptionID,
		IsScheduled:    scheduled,
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, "prescription schedule status retrieved", response)
}

func mapPrescriptionToResponse(prescription *models.Prescription) *responses.Prescription {
	response := &responses.Prescription{
		ID:         prescription.ID,
		PatientID:  prescription.PatientID,
		ServiceID:  prescription.ServiceID,
		Medication: prescription.Medication,
		StartDate:  prescription.StartDate.Format(utils.DateLayout),
		Status:     string(prescription.Status),
		Frequency:  prescription.Frequency,
		Note:       prescription.Note,
	}
	if prescription.EndDate != nil {
		response.EndDate = prescription.EndDate.Format(utils.DateLayout)
	}
	return response
}
