package member

import "errors"

var (
	ErrMemberNotFound   = errors.New("member not found")
	ErrAlreadyApproved  = errors.New("member already approved")
	ErrNotUnapproved    = errors.New("member is not awaiting approval")
	ErrInvalidRole      = errors.New("invalid role")
	ErrNegativePoints   = errors.New("points must not be negative")
	ErrCannotDemoteSelf = errors.New("admins cannot remove their own admin role")
)
