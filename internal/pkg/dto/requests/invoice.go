package requests

type GenerateInvoice struct {
	PatientID   uint   `json:"patient_id" validate:"required"`
	PeriodStart string `json:"period_start" validate:"required,ymd"`
	PeriodEnd   string `json:"period_end" validate:"required,ymd"`
}
