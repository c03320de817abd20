package invoices

import (
	"context"
	"errors"
	"time"

	"carelink-service/internal/app/contracts"
	"carelink-service/internal/app/models"
	"carelink-service/internal/pkg/exceptions"
	"carelink-service/internal/pkg/utils"

	"gorm.io/gorm"
)

type invoiceGormRepository struct {
	DB *gorm.DB
}

func NewInvoiceGormRepository(db *gorm.DB) contracts.InvoiceRepository {
	return &invoiceGormRepository{DB: db}
}

func (r *invoiceGormRepository) WithTx(tx *gorm.DB) contracts.InvoiceRepository {
	return &invoiceGormRepository{DB: tx}
}

func (r *invoiceGormRepository) Create(ctx context.Context, invoice *models.Invoice) error {
	if err := r.DB.WithContext(ctx).Create(invoice).Error; err != nil {
		// idx_invoice_period guards one invoice per patient and period.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return exceptions.ErrDuplicateInvoice(err)
		}
		return exceptions.ErrDatabaseOperation(err)
	}
	return nil
}

func (r *invoiceGormRepository) FindByID(ctx context.Context, invoiceID uint) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.DB.WithContext(ctx).Preload("Lines").First(&invoice, invoiceID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &invoice, nil
}

func (r *invoiceGormRepository) FindByPeriod(ctx context.Context, patientID uint, periodStart, periodEnd time.Time) (*models.Invoice, error) {
	var invoice models.Invoice
	err := r.DB.WithContext(ctx).
		Preload("Lines").
		Where("patient_id = ? AND period_start = ? AND period_end = ?",
			patientID, utils.TruncateToDate(periodStart), utils.TruncateToDate(periodEnd)).
		First(&invoice).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return &invoice, nil
}

func (r *invoiceGormRepository) ListOpenByPatient(ctx context.Context, patientID uint) ([]models.Invoice, error) {
	var invoices []models.Invoice
	err := r.DB.WithContext(ctx).
		Where("patient_id = ? AND status IN ?", patientID, []models.InvoiceStatus{
			models.InvoiceInProgress,
			models.InvoiceContested,
			"Open",
		}).
		Order("period_start").
		Find(&invoices).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}
	return invoices, nil
}

func (r *invoiceGormRepository) HasInvoiceCreatedSince(ctx context.Context, patientID uint, since time.Time) (bool, error) {
	var count int64
	err := r.DB.WithContext(ctx).
		Model(&models.Invoice{}).
		Where("patient_id = ? AND created_at >= ?", patientID, since).
		Count(&count).Error
	if err != nil {
		return false, exceptions.ErrDatabaseOperation(err)
	}
	return count > 0, nil
}

func (r *invoiceGormRepository) ListBillableTimeslots(ctx context.Context, patientID uint, periodStart, periodEnd time.Time) ([]contracts.TimeslotWithSchedule, error) {
	var schedules []models.Schedule
	err := r.DB.WithContext(ctx).
		Preload("Timeslots", "status IN ?", []models.TimeslotStatus{
			models.TimeslotCompleted,
			models.TimeslotConfirmed,
		}).
		Preload("Timeslots.Prescription").
		Where("patient_id = ? AND date >= ? AND date <= ?",
			patientID, utils.TruncateToDate(periodStart), utils.TruncateToDate(periodEnd)).
		Order("date").
		Find(&schedules).Error
	if err != nil {
		return nil, exceptions.ErrDatabaseOperation(err)
	}

	var entries []contracts.TimeslotWithSchedule
	for i := range schedules {
		for j := range schedules[i].Timeslots {
			entries = append(entries, contracts.TimeslotWithSchedule{
				Timeslot: schedules[i].Timeslots[j],
				Schedule: schedules[i],
			})
		}
	}
	return entries, nil
}
