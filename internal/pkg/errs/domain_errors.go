package errs

// Sentinel errors shared across the workflow usecase layers. Handlers map
// these onto HTTP statuses; the classes mirror the error taxonomy of the
// workflow: validation, state conflict, authorization, invariant violation,
// infrastructure.
var (
	// Validation
	ErrInvalidBudgetRange  = New("budget max must be >= budget min")
	ErrEventDateInPast     = New("event date cannot be in the past")
	ErrInvalidEventWindow  = New("event end must not precede event start")
	ErrEmptyTitle          = New("title is required")
	ErrEmptyItemList       = New("quote requires at least one item")
	ErrInvalidItem         = New("invalid quote item")
	ErrNonPositiveAmount   = New("amount must be positive")
	ErrInvalidDepositPct   = New("deposit percentage must be between 0 and 100")
	ErrInvalidTaxRate      = New("tax rate cannot be negative")
	ErrInvalidValidityDays = New("validity days must be positive")
	ErrInvalidPolicyTiers  = New("cancellation policy tiers must be descending")
	ErrCurrencyMismatch    = New("currency mismatch")

	// State conflict
	ErrRequestNotFound        = New("booking request not found")
	ErrRequestNotEditable     = New("booking request is not editable in its current status")
	ErrRequestAlreadyResolved = New("booking request already resolved")
	ErrRequestNotOpen         = New("booking request is not open for quoting")
	ErrQuoteNotFound          = New("quote not found")
	ErrQuoteNotSendable       = New("quote is not in draft status")
	ErrQuoteNotAcceptable     = New("quote is not available for acceptance")
	ErrQuoteNotRejectable     = New("quote is not available for rejection")
	ErrQuoteNotRevisable      = New("only rejected quotes can be revised")
	ErrQuoteExpired           = New("quote has expired")
	ErrOpenQuoteExists        = New("an open quote already exists for this request")
	ErrBookingNotFound        = New("booking not found")
	ErrBookingNotCompletable  = New("booking cannot be completed")
	ErrBookingNotCancellable  = New("booking cannot be cancelled")
	ErrBookingNotPayable      = New("booking cannot accept payments")
	ErrEventNotFinished       = New("cannot complete booking before event end")
	ErrBookingNotEditable     = New("booking details can no longer be updated")
	ErrPaymentNotFound        = New("payment not found")
	ErrPaymentNotRefundable   = New("original payment is not refundable")
	ErrVendorNotFound         = New("vendor not found")
	ErrVendorInactive         = New("vendor is not currently accepting bookings")

	// Authorization
	ErrNotOrganizer = New("caller is not the organizer of this resource")
	ErrNotVendor    = New("caller does not own this vendor")
	ErrNotParty     = New("caller is not a party to this resource")

	// Invariant violation
	ErrOverpayment             = New("payment amount exceeds amount due")
	ErrRefundExceedsPaid       = New("refund amount exceeds amount paid")
	ErrDiscountExceedsSubtotal = New("discount exceeds subtotal")

	// Infrastructure
	ErrSequenceUnavailable     = New("sequence issuer unavailable")
	ErrDatabaseOperationFailed = New("database operation failed")
)
