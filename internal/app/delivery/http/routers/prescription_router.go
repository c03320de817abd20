package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachPrescriptionRoutes(router chi.Router, middlewares *middlewares.Middlewares, prescriptionController *controllers.PrescriptionController) {
	router.Use(middlewares.Authenticate)

	router.Post("/service-demands/{demandID}/convert", prescriptionController.ConvertServiceDemand)
	router.Get("/{prescriptionID}/scheduled", prescriptionController.Scheduled)
}
