package errors

// Error code constants, format: CATEGORY_SPECIFIC_DETAIL.
// The admin frontend maps these codes to its own display messages.

const (
	// ==================== Validation (VALIDATION_) ====================
	ValidationInvalidInput = "VALIDATION_INVALID_INPUT"
	ValidationInvalidID    = "VALIDATION_INVALID_ID"
	ValidationRequired     = "VALIDATION_REQUIRED"

	// ==================== Listing (LISTING_) ====================
	ListingProductNotFound = "LISTING_PRODUCT_NOT_FOUND"
	ListingExportFailed    = "LISTING_EXPORT_FAILED"

	// ==================== Bulk adjustment (ADJUSTMENT_) ====================
	AdjustmentValueRequired  = "ADJUSTMENT_VALUE_REQUIRED"
	AdjustmentValueInvalid   = "ADJUSTMENT_VALUE_INVALID"
	AdjustmentNothingMatched = "ADJUSTMENT_NOTHING_MATCHED"
	AdjustmentNotConfirming  = "ADJUSTMENT_NOT_CONFIRMING"

	// ==================== Product draft (DRAFT_) ====================
	DraftNotOpen               = "DRAFT_NOT_OPEN"
	DraftIncomplete            = "DRAFT_INCOMPLETE"
	DraftInvalidPrice          = "DRAFT_INVALID_PRICE"
	DraftUnknownCharacteristic = "DRAFT_UNKNOWN_CHARACTERISTIC"

	// ==================== Internal (INTERNAL_) ====================
	InternalServerError = "INTERNAL_SERVER_ERROR"
)
