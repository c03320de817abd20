package requests

type Login struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type Register struct {
	Email          string `json:"email" validate:"required,email"`
	Password       string `json:"password" validate:"required,password"`
	RetypePassword string `json:"retype_password" validate:"required,eqfield=Password"`
	FirstName      string `json:"first_name" validate:"required"`
	LastName       string `json:"last_name" validate:"required"`
	BirthDate      string `json:"birth_date" validate:"omitempty,ymd"`
	NationalNumber string `json:"national_number"`
}

// Refresh and Logout accept the credential in the body; when absent the
// carelink_refresh cookie is consulted instead.
type Refresh struct {
	Refresh string `json:"refresh"`
}

type Logout struct {
	Refresh string `json:"refresh"`
}
