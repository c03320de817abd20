package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachScheduleRoutes(router chi.Router, middlewares *middlewares.Middlewares, scheduleController *controllers.ScheduleController) {
	router.Use(middlewares.Authenticate)

	router.Post("/quick-schedule", scheduleController.CreateAppointment)
	router.Post("/recurring-schedule", scheduleController.CreateRecurringAppointments)
	router.Get("/calendar", scheduleController.Calendar)
	router.Get("/availability", scheduleController.Availability)
	router.Get("/patient/schedule", scheduleController.PatientSchedule)
	router.Get("/family/schedule", scheduleController.FamilySchedule)
	router.Post("/change-request", scheduleController.RequestScheduleChange)

	router.Route("/appointment/{timeslotID}", func(r chi.Router) {
		r.Get("/", scheduleController.GetAppointment)
		r.Patch("/", scheduleController.UpdateTimeslot)
		r.Delete("/", scheduleController.DeleteAppointment)
	})
}
