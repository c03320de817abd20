package responses

type UserInfo struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Role      string `json:"role"`
	IsActive  bool   `json:"is_active"`
}

type Login struct {
	Access   string   `json:"access"`
	Refresh  string   `json:"refresh"`
	UserInfo UserInfo `json:"user_info"`
}

type Refresh struct {
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

type Logout struct {
	Detail string `json:"detail"`
}

type Register struct {
	UserID    uint `json:"user_id"`
	PatientID uint `json:"patient_id"`
}
