package protocol

// Kind names a failure reported as "ERROR <Kind>".
type Kind string

// Protocol errors.
const (
	KindUnknownCommand Kind = "UnknownCommand"
	KindBadPayload     Kind = "BadPayload"
)

// Auth errors.
const (
	KindNotLoggedIn      Kind = "NotLoggedIn"
	KindPermissionDenied Kind = "PermissionDenied"
	KindDenied           Kind = "Denied"
	KindAuthFailed       Kind = "AuthFailed"
	KindAuthError        Kind = "AuthError"
)

// Domain rule violations.
const (
	KindExists              Kind = "Exists"
	KindNotFound            Kind = "NotFound"
	KindOutsideWorkingHours Kind = "OutsideWorkingHours"
	KindLunchBreak          Kind = "LunchBreak"
	KindSlotTaken           Kind = "SlotTaken"
	KindInvalidData         Kind = "InvalidData"
)

// Per-handler generic failures.
const (
	KindRegisterFailed Kind = "RegisterFailed"
	KindListEmps       Kind = "ListEmps"
	KindApptsFailed    Kind = "ApptsFailed"
	KindConfirmFailed  Kind = "ConfirmFailed"
	KindGetInfoFailed  Kind = "GetInfoFailed"
	KindListFailed     Kind = "ListFailed"
	KindUpdateFailed   Kind = "UpdateFailed"
	KindDeleteFailed   Kind = "DeleteFailed"
)
