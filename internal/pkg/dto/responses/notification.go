package responses

type Notification struct {
	ID          uint   `json:"id"`
	RecipientID uint   `json:"recipient_id"`
	Type        string `json:"type"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	IsRead      bool   `json:"is_read"`
	CreatedAt   string `json:"created_at"`
}

type Ticket struct {
	ID           uint   `json:"id"`
	Category     string `json:"category"`
	Priority     string `json:"priority"`
	AssignedTeam string `json:"assigned_team"`
	Status       string `json:"status"`
	Subject      string `json:"subject"`
	CreatedAt    string `json:"created_at"`
}
