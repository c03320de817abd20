package routers

import (
	"time"

	"carelink-service/internal/app/config"
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"
	"carelink-service/internal/pkg/constvars"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	scheduleController *controllers.ScheduleController,
	invoiceController *controllers.InvoiceController,
	consentController *controllers.ConsentController,
	notificationController *controllers.NotificationController,
	prescriptionController *controllers.PrescriptionController,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", constvars.HeaderXRequestID},
		ExposedHeaders:   []string{"Link", constvars.HeaderXRequestID},
		AllowCredentials: true,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	rateLimiter := httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second)
	router.Use(rateLimiter)

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.Recoverer)

	router.Route(internalConfig.App.EndpointPrefix, func(r chi.Router) {
		r.Route("/"+constvars.ResourceAuth, func(r chi.Router) {
			attachAuthRoutes(r, middlewares, authController, userController, consentController)
		})
		r.Route("/"+constvars.ResourceSchedules, func(r chi.Router) {
			attachScheduleRoutes(r, middlewares, scheduleController)
		})
		r.Route("/"+constvars.ResourceInvoices, func(r chi.Router) {
			attachInvoiceRoutes(r, middlewares, invoiceController)
		})
		r.Route("/notifications", func(r chi.Router) {
			attachNotificationRoutes(r, middlewares, notificationController)
		})
		r.Route("/prescriptions", func(r chi.Router) {
			attachPrescriptionRoutes(r, middlewares, prescriptionController)
		})
	})
}
