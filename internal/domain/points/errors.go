package points

import "errors"

var (
	ErrInvalidPoints     = errors.New("points must be a positive integer")
	ErrReasonRequired    = errors.New("reason is required")
	ErrRecipientRequired = errors.New("recipient is required")
	ErrInvalidRequestID  = errors.New("invalid request id")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrPartyNotEligible  = errors.New("member missing or not approved")
	ErrRequestNotFound   = errors.New("point request not found")

	// ErrRequestNotPending and ErrAlreadyApproved are the two expected race
	// outcomes of concurrent reviews. Callers should treat them as "already
	// reviewed", not as system failures.
	ErrRequestNotPending = errors.New("point request is not pending")
	ErrAlreadyApproved   = errors.New("point request already approved")
)
