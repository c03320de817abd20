package routers

import (
	"carelink-service/internal/app/delivery/http/controllers"
	"carelink-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachInvoiceRoutes(router chi.Router, middlewares *middlewares.Middlewares, invoiceController *controllers.InvoiceController) {
	router.Use(middlewares.Authenticate)

	router.Post("/generate", invoiceController.GenerateInvoice)
	router.Get("/{invoiceID}", invoiceController.GetInvoice)
}
