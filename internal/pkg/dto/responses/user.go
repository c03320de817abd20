package responses

type User struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
	CreatedAt string `json:"created_at"`
}

type DeleteUser struct {
	UserID     uint   `json:"user_id"`
	Anonymized bool   `json:"anonymized"`
	Detail     string `json:"detail"`
}
