package model

// ==== Roles ====
const (
	RoleClient    = "CLIENT"
	RoleCollector = "COLLECTOR"
	RoleAdmin     = "ADMIN"
)

// ==== User Status ====
const (
	UserStatusActive   = "ACTIVE"
	UserStatusInactive = "INACTIVE"
	UserStatusBanned   = "BANNED"
)

// ==== Collection Request Status ====
const (
	RequestStatusPending    = "PENDING"
	RequestStatusAccepted   = "ACCEPTED"
	RequestStatusInProgress = "IN_PROGRESS"
	RequestStatusCompleted  = "COMPLETED"
	RequestStatusCancelled  = "CANCELLED"
)

// ==== Collection Type ====
const (
	CollectionTypeOneTime   = "ONE_TIME"
	CollectionTypeRecurring = "RECURRING"
)

// ==== Recurrence Frequency ====
const (
	FrequencyDaily    = "DAILY"
	FrequencyWeekly   = "WEEKLY"
	FrequencyBiweekly = "BIWEEKLY"
	FrequencyMonthly  = "MONTHLY"
)

// ==== Request Event Type ====
const (
	EventRequestCreated      = "REQUEST_CREATED"
	EventRequestAccepted     = "REQUEST_ACCEPTED"
	EventRequestStarted      = "REQUEST_STARTED"
	EventRequestCompleted    = "REQUEST_COMPLETED"
	EventRequestCancelled    = "REQUEST_CANCELLED"
	EventAvailabilityChanged = "AVAILABILITY_CHANGED"
	EventRatingChanged       = "RATING_CHANGED"
)
