package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	for _, role := range []Role{RolePatient, RoleFamilyPatient, RoleProvider, RoleCoordinator, RoleAdministrative, RoleSocialAssistant, RoleAdministrator} {
		assert.True(t, role.Valid(), "%s should be a known role", role)
	}
	assert.False(t, Role("Admin").Valid())
	assert.False(t, Role("").Valid())
}

func TestRoleCapabilities(t *testing.T) {
	t.Run("Schedule Creation", func(t *testing.T) {
		assert.True(t, RoleCoordinator.CanCreateSchedule())
		assert.True(t, RoleAdministrative.CanCreateSchedule())
		assert.True(t, RoleAdministrator.CanCreateSchedule())
		assert.False(t, RoleProvider.CanCreateSchedule())
		assert.False(t, RolePatient.CanCreateSchedule())
	})

	t.Run("User Management", func(t *testing.T) {
		assert.True(t, RoleAdministrator.CanManageUsers())
		assert.True(t, RoleAdministrative.CanManageUsers())
		assert.False(t, RoleCoordinator.CanManageUsers())
	})

	t.Run("Invoice Generation", func(t *testing.T) {
		assert.True(t, RoleCoordinator.CanGenerateInvoices())
		assert.False(t, RoleSocialAssistant.CanGenerateInvoices())
		assert.False(t, RolePatient.CanGenerateInvoices())
	})

	t.Run("Schedule Change Requests", func(t *testing.T) {
		assert.True(t, RolePatient.CanRequestScheduleChange())
		assert.True(t, RoleFamilyPatient.CanRequestScheduleChange())
		assert.False(t, RoleCoordinator.CanRequestScheduleChange())
	})

	t.Run("Staff", func(t *testing.T) {
		assert.True(t, RoleProvider.IsStaff())
		assert.True(t, RoleSocialAssistant.IsStaff())
		assert.False(t, RolePatient.IsStaff())
		assert.False(t, RoleFamilyPatient.IsStaff())
	})
}

func TestNormalizeInvoiceStatus(t *testing.T) {
	assert.Equal(t, InvoiceInProgress, NormalizeInvoiceStatus(InvoiceStatus("Open")))
	assert.Equal(t, InvoicePaid, NormalizeInvoiceStatus(InvoicePaid))
}

func TestInvoiceStatusIsOpen(t *testing.T) {
	assert.True(t, InvoiceInProgress.IsOpen())
	assert.True(t, InvoiceContested.IsOpen())
	assert.True(t, InvoiceStatus("Open").IsOpen(), "legacy value counts as open")
	assert.False(t, InvoicePaid.IsOpen())
	assert.False(t, InvoiceCancelled.IsOpen())
}
