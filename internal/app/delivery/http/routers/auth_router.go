package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(
	router chi.Router,
	middlewares *middlewares.Middlewares,
	authController *controllers.AuthController,
	userController *controllers.UserController,
	consentController *controllers.ConsentController,
) {
	router.Post("/register", authController.Register)
	router.Post("/login", authController.Login)
	router.Post("/token/refresh", authController.Refresh)
	router.Post("/logout", authController.Logout)

	router.Route("/users", func(r chi.Router) {
		r.Use(middlewares.Authenticate)
		r.Post("/", userController.CreateUser)
		r.Delete("/{userID}", userController.DeleteUser)
		r.Get("/{userID}/unpaid-invoices", userController.UnpaidInvoices)
	})

	router.Route("/consent", func(r chi.Router) {
		r.With(middlewares.OptionalAuthenticate).Post("/store", consentController.StoreConsent)
		r.With(middlewares.OptionalAuthenticate).Post("/withdraw", consentController.WithdrawConsent)
		r.With(middlewares.Authenticate).Get("/history", consentController.History)
		r.Get("/stats", consentController.Stats)
		r.With(middlewares.Authenticate).Get("/", consentController.List)
	})
}
