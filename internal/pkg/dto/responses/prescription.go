package responses

type Prescription struct {
	ID         uint   `json:"id"`
	PatientID  uint   `json:"patient_id"`
	ServiceID  uint   `json:"service_id"`
	Medication string `json:"medication"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date,omitempty"`
	Status     string `json:"status"`
	Frequency  string `json:"frequency,omitempty"`
	Note       string `json:"note,omitempty"`
}

type PrescriptionScheduled struct {
	PrescriptionID uint `json:"prescription_id"`
	IsScheduled    bool `json:"is_scheduled"`
}
