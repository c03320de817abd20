package responses

type InvoiceLine struct {
	ID              uint   `json:"id"`
	TimeslotID      uint   `json:"timeslot_id"`
	ServiceID       uint   `json:"service_id"`
	ServiceName     string `json:"service_name"`
	ProviderID      uint   `json:"provider_id"`
	Date            string `json:"date"`
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	Price           string `json:"price"`
	TimeslotStatus  string `json:"timeslot_status"`
	CoveredByINAMI  bool   `json:"covered_by_insurance"`
	CoveragePercent string `json:"coverage_percentage,omitempty"`
	InsuranceCovers string `json:"insurance_covers,omitempty"`
}

type Invoice struct {
	ID          uint          `json:"id"`
	PatientID   uint          `json:"patient_id"`
	PeriodStart string        `json:"period_start"`
	PeriodEnd   string        `json:"period_end"`
	Status      string        `json:"status"`
	Amount      string        `json:"amount"`
	Lines       []InvoiceLine `json:"lines"`
}
