package contracts

import "carelink-service/internal/app/models"

// Actor is the authenticated principal resolved from the access credential
// by the authentication middleware. Usecases branch on Role capabilities
// without another user lookup.
type Actor struct {
	ID    uint
	Email string
	Role  models.Role
}
