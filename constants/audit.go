package constants

// User role
const (
	RoleLandlord   = "landlord"
	RoleAdmin      = "admin"
	RoleSuperAdmin = "super_admin"
)

// Audit entity types
const (
	EntityAvailabilityBlock = "availability_block"
	EntityContract          = "contract"
)

// Audit actions
const (
	AuditActionCreated           = "created"
	AuditActionUpdated           = "updated"
	AuditActionDeleted           = "deleted"
	AuditActionForcedOverlap     = "forced-overlap"
	AuditActionAvailabilityFreed = "availability-freed"
)

// Vacancy aggregation policies
const (
	VacancyPolicySummed = "summed"
	VacancyPolicyMerged = "merged"
)

const (
	DefaultVacancyWindowDays = 30
	DefaultUpcomingDays      = 14
	DefaultAuditLimit        = 10
	MaxAuditLimit            = 100
)

// DateLayout định dạng ngày dùng cho API
const DateLayout = "2006-01-02"
