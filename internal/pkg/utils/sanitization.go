package utils

import (
	"strings"
	"unicode"

	"carelink-service/internal/pkg/dto/requests"
)

func cleanWhiteSpaceFromEachStringOfAnArray(input []string) []string {
	sanitizedArray := make([]string, len(input))
	for i, v := range input {
		sanitizedArray[i] = strings.TrimSpace(v)
	}
	return sanitizedArray
}

func capitalizeFirstLetter(s string) string {
	if len(s) == 0 {
		return s
	}

	first := string(unicode.ToUpper(rune(s[0])))

	return first + s[1:]
}

func SanitizeLoginRequest(input *requests.Login) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Password = strings.TrimSpace(input.Password)
}

func SanitizeRegisterRequest(input *requests.Register) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Password = strings.TrimSpace(input.Password)
	input.RetypePassword = strings.TrimSpace(input.RetypePassword)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.BirthDate = strings.TrimSpace(input.BirthDate)
	input.NationalNumber = strings.TrimSpace(input.NationalNumber)
}

func SanitizeCreateUserRequest(input *requests.CreateUser) {
	input.Email = strings.TrimSpace(strings.ToLower(input.Email))
	input.Password = strings.TrimSpace(input.Password)
	input.FirstName = strings.TrimSpace(input.FirstName)
	input.LastName = strings.TrimSpace(input.LastName)
	input.Role = capitalizeFirstLetter(strings.TrimSpace(input.Role))
	input.BirthDate = strings.TrimSpace(input.BirthDate)
}

func SanitizeCreateAppointmentRequest(input *requests.CreateAppointment) {
	input.Date = strings.TrimSpace(input.Date)
	input.StartTime = strings.TrimSpace(input.StartTime)
	input.EndTime = strings.TrimSpace(input.EndTime)
	input.Description = strings.TrimSpace(input.Description)
}

func SanitizeCreateRecurringAppointmentRequest(input *requests.CreateRecurringAppointment) {
	SanitizeCreateAppointmentRequest(&input.CreateAppointment)
	input.Dates = cleanWhiteSpaceFromEachStringOfAnArray(input.Dates)
	if input.Recurrence != nil {
		input.Recurrence.Frequency = strings.TrimSpace(strings.ToLower(input.Recurrence.Frequency))
		input.Recurrence.EndType = strings.TrimSpace(strings.ToLower(input.Recurrence.EndType))
		input.Recurrence.EndDate = strings.TrimSpace(input.Recurrence.EndDate)
	}
}

func SanitizeStoreConsentRequest(input *requests.StoreConsent) {
	input.AnonymousID = strings.TrimSpace(input.AnonymousID)
	input.PageURL = strings.TrimSpace(input.PageURL)
	input.Method = strings.TrimSpace(strings.ToLower(input.Method))
}

func SanitizeWithdrawConsentRequest(input *requests.WithdrawConsent) {
	input.AnonymousID = strings.TrimSpace(input.AnonymousID)
	input.Reason = strings.TrimSpace(input.Reason)
}

func SanitizeScheduleChangeRequest(input *requests.ScheduleChangeRequest) {
	input.RequestType = strings.TrimSpace(strings.ToLower(input.RequestType))
	input.Reason = strings.TrimSpace(input.Reason)
	input.RequestedDate = strings.TrimSpace(input.RequestedDate)
	input.RequestedTime = strings.TrimSpace(input.RequestedTime)
}
