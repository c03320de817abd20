package requests

// ConsentDecisions mirror the four GDPR cookie categories. Essential is
// accepted from the client but always stored as granted.
type ConsentDecisions struct {
	Essential  bool `json:"essential"`
	Analytics  bool `json:"analytics"`
	Marketing  bool `json:"marketing"`
	Functional bool `json:"functional"`
}

type StoreConsent struct {
	AnonymousID string           `json:"anonymous_id"`
	Decisions   ConsentDecisions `json:"decisions"`
	PageURL     string           `json:"page_url"`
	Method      string           `json:"method" validate:"omitempty,oneof=banner settings"`
	// Filled by the controller, never by the client.
	UserAgent string `json:"-"`
	RemoteIP  string `json:"-"`
}

type WithdrawConsent struct {
	AnonymousID string `json:"anonymous_id"`
	Reason      string `json:"reason" validate:"required"`
}
