package responses

type ConsentDecisions struct {
	Essential  bool `json:"essential"`
	Analytics  bool `json:"analytics"`
	Marketing  bool `json:"marketing"`
	Functional bool `json:"functional"`
}

type Consent struct {
	ID               uint             `json:"id"`
	AnonymousID      string           `json:"anonymous_id,omitempty"`
	UserID           *uint            `json:"user_id,omitempty"`
	Decisions        ConsentDecisions `json:"decisions"`
	PolicyVersion    string           `json:"policy_version"`
	Method           string           `json:"method"`
	PageURL          string           `json:"page_url,omitempty"`
	CreatedAt        string           `json:"created_at"`
	ExpiresAt        string           `json:"expires_at"`
	WithdrawnAt      *string          `json:"withdrawn_at,omitempty"`
	WithdrawalReason string           `json:"withdrawal_reason,omitempty"`
}

type ConsentStats struct {
	Total          int64 `json:"total"`
	Active         int64 `json:"active"`
	Withdrawn      int64 `json:"withdrawn"`
	Expired        int64 `json:"expired"`
	AnalyticsOptIn int64 `json:"analytics_opt_in"`
	MarketingOptIn int64 `json:"marketing_opt_in"`
}
