package postgres

// PostgreSQL Error Codes
const (
	// PgErrorCodeUniqueViolation is the PostgreSQL error code for unique constraint violations
	PgErrorCodeUniqueViolation = "23505"
)

// Constraint names the store maps onto domain errors
const (
	constraintUserPlatform      = "users_platform_platform_id_key"
	constraintRodEquipped       = "uq_rod_instances_equipped"
	constraintAccessoryEquipped = "uq_accessory_instances_equipped"
)

// Error Messages - Transaction Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToBuildQuery        = "failed to build query"
)

// Error Messages - User Operations
const (
	ErrMsgFailedToInsertUser  = "failed to insert user"
	ErrMsgFailedToUpdateUser  = "failed to update user"
	ErrMsgFailedToGetUser     = "failed to get user"
	ErrMsgFailedToListUsers   = "failed to list users"
	ErrMsgFailedToMoveBalance = "failed to update balance"
)

// Error Messages - Inventory Operations
const (
	ErrMsgFailedToInsertInstance = "failed to insert instance"
	ErrMsgFailedToGetInstance    = "failed to get instance"
	ErrMsgFailedToListInstances  = "failed to list instances"
	ErrMsgFailedToEquip          = "failed to equip"
	ErrMsgFailedToUpdateInstance = "failed to update instance"
	ErrMsgFailedToUpdateBait     = "failed to update bait"
	ErrMsgFailedToDeleteCatches  = "failed to delete catches"
)

// Error Messages - Log Operations
const (
	ErrMsgFailedToInsertLog   = "failed to insert log"
	ErrMsgFailedToAggregate   = "failed to aggregate logs"
	ErrMsgFailedToStoreUnlock = "failed to store unlock"
	ErrMsgFailedToProgress    = "failed to store achievement progress"
)

// Error Messages - Market Operations
const (
	ErrMsgFailedToInsertListing = "failed to insert listing"
	ErrMsgFailedToGetListing    = "failed to get listing"
	ErrMsgFailedToDeleteListing = "failed to delete listing"
	ErrMsgFailedToBrowse        = "failed to browse listings"
)
