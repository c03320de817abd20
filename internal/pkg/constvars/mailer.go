package constvars

const (
	EmailSendBasicEmailSubjectFormat = "To: %s\r\nSubject: %s\r\n\r\n%s\r\n"

	EmailSubjectVerifyAccount = "Activate your CareLink account"
	EmailBodyVerifyAccount    = "Welcome to CareLink. A coordinator will review and activate your account shortly."
)
