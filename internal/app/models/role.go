package models

type Role string

const (
	RolePatient         Role = "Patient"
	RoleFamilyPatient   Role = "FamilyPatient"
	RoleProvider        Role = "Provider"
	RoleCoordinator     Role = "Coordinator"
	RoleAdministrative  Role = "Administrative"
	RoleSocialAssistant Role = "SocialAssistant"
	RoleAdministrator   Role = "Administrator"
)

func (r Role) Valid() bool {
	switch r {
	case RolePatient, RoleFamilyPatient, RoleProvider, RoleCoordinator,
		RoleAdministrative, RoleSocialAssistant, RoleAdministrator:
		return true
	}
	return false
}

// Capability predicates. Control flow branches on these, never on raw
// string comparison at call sites.

func (r Role) CanCreateSchedule() bool {
	switch r {
	case RoleCoordinator, RoleAdministrative, RoleAdministrator:
		return true
	}
	return false
}

func (r Role) CanManageUsers() bool {
	return r == RoleAdministrator || r == RoleAdministrative
}

func (r Role) CanGenerateInvoices() bool {
	switch r {
	case RoleCoordinator, RoleAdministrative, RoleAdministrator:
		return true
	}
	return false
}

func (r Role) CanViewInternalNotes() bool {
	switch r {
	case RoleProvider, RoleCoordinator, RoleAdministrative, RoleSocialAssistant, RoleAdministrator:
		return true
	}
	return false
}

func (r Role) CanRequestScheduleChange() bool {
	return r == RolePatient || r == RoleFamilyPatient
}

func (r Role) IsStaff() bool {
	switch r {
	case RoleProvider, RoleCoordinator, RoleAdministrative, RoleSocialAssistant, RoleAdministrator:
		return true
	}
	return false
}
