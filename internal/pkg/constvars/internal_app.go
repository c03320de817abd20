package constvars

type ContextKey string

const (
	ResourceUsers     = "users"
	ResourceAuth      = "account"
	ResourceSchedules = "schedule"
	ResourceInvoices  = "invoices"
	ResourceConsents  = "consent"
)

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CRLNK_SVC_"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
)

const (
	MongoCollectionActionLogs = "action_logs"
)

// Refresh credential transport.
const (
	RefreshCookieName    = "carelink_refresh"
	RefreshLockKeyPrefix = "refresh_lock:"
	LogoutSuccessDetail  = "Successfully logged out"
)

// Service classes with dedicated pricing semantics. Every other service id
// falls through to default pricing.
const (
	ServiceIDHousekeeping = 1
	ServiceIDFamilyHelp   = 2
	ServiceIDNursing      = 3
)

// Ticket categories and the teams they route to.
const (
	TicketCategoryAppointmentIssue  = "Appointment Issue"
	TicketCategoryAccountManagement = "Account Management"
	TicketCategoryProfileActivation = "Profile Activation"

	TicketTeamCoordinator   = "Coordinator"
	TicketTeamAdministrator = "Administrator"

	TicketPriorityLow    = "Low"
	TicketPriorityMedium = "Medium"
	TicketPriorityHigh   = "High"
)

// Prescriptions converted from service demands carry the originating demand
// id in the note under this prefix; conversion is idempotent on it.
const (
	ServiceDemandNotePrefixFormat = "Service Demand #%d:"
)

const (
	ConsentWithdrawalSuperseded = "Superseded by new consent with different preferences"
	ConsentMethodBanner         = "banner"
	ConsentMethodSettings       = "settings"
	ConsentUserAgentMaxLength   = 100
)
