package constvars

const (
	RegexContainAtLeastOneSpecialChar = `[!@#\$%\^&\*\(\)_\+\-=\[\]\{\};':"\\|,.<>\/?]`
	RegexContainAtLeastOneUppercase   = `[A-Z]`
)
