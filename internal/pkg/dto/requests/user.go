package requests

type CreateUser struct {
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,password"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=Patient FamilyPatient Provider Coordinator Administrative SocialAssistant Administrator"`
	BirthDate string `json:"birth_date" validate:"omitempty,ymd"`
}

type DeleteUser struct {
	// Anonymize requests GDPR-style anonymization instead of a plain
	// deactivation when deletion is not blocked.
	Anonymize bool   `json:"anonymize"`
	Reason    string `json:"reason"`
}
