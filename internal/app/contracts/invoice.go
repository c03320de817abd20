package contracts

import (
	"context"
	"time"

	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/dto/requests"
	"carelink-service/internal/pkg/dto/responses"

	"gorm.io/gorm"
)

type InvoiceUsecase interface {
	GenerateInvoice(ctx context.Context, actor Actor, request *requests.GenerateInvoice) (*responses.Invoice, error)
	GetInvoice(ctx context.Context, actor Actor, invoiceID uint) (*responses.Invoice, error)
	UnpaidInvoices(ctx context.Context, actor Actor, userID uint) ([]responses.Invoice, error)
}

type InvoiceRepository interface {
	WithTx(tx *gorm.DB) InvoiceRepository
	Create(ctx context.Context, invoice *models.Invoice) error
	FindByID(ctx context.Context, invoiceID uint) (*models.Invoice, error)
	FindByPeriod(ctx context.Context, patientID uint, periodStart, periodEnd time.Time) (*models.Invoice, error)
	ListOpenByPatient(ctx context.Context, patientID uint) ([]models.Invoice, error)
	HasInvoiceCreatedSince(ctx context.Context, patientID uint, since time.Time) (bool, error)
	ListBillableTimeslots(ctx context.Context, patientID uint, periodStart, periodEnd time.Time) ([]TimeslotWithSchedule, error)
}
