package handler

// Generic HTTP error messages for client responses.
// These messages do not expose internal error details.
const (
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidPathParam      = "Invalid %s"
	ErrMsgInvalidQueryParam     = "Invalid %s query parameter"
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
)

// Success messages for API responses
const (
	MsgTitleSet          = "Title set"
	MsgEquipped          = "Equipped"
	MsgDelisted          = "Listing removed"
	MsgAutoFishingSet    = "Auto-fishing updated"
	MsgSweepInProgress   = "An auto-fishing sweep is already running"
	MsgHealthOK          = "ok"
	MsgHealthUnavailable = "unavailable"
	MsgDatabaseDown      = "database connection failed"
)

// Log messages
const (
	LogMsgDecodeFailed     = "Failed to decode request"
	LogMsgRequestDecoded   = "Request decoded"
	LogMsgServiceError     = "Service error"
	LogMsgServiceRejected  = "Request rejected"
	LogMsgEncodeFailed     = "Failed to encode JSON response"
	LogMsgWriteFailed      = "Failed to write response buffer"
	LogMsgReadinessFailed  = "Readiness check failed"
	LogMsgUserRegistered   = "User registered"
	LogMsgGoldGranted      = "Admin granted gold"
	LogMsgAdminSweep       = "Admin triggered technology sweep"
	LogMsgAdminAutoFishing = "Admin triggered auto-fishing sweep"
)

// Path and query parameter names
const (
	ParamPlatform   = "platform"
	ParamPlatformID = "platformID"
	ParamPoolID     = "poolID"
	ParamTechKey    = "techKey"
	ParamListingID  = "listingID"

	QueryItemType = "item_type"
	QueryName     = "name"
	QuerySeller   = "seller_id"
	QueryMaxPrice = "max_price"
	QueryLimit    = "limit"
	QueryOffset   = "offset"
)
