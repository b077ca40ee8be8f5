package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already registered")
	ErrForbidden          = errors.New("access forbidden")
	ErrNotApproved        = errors.New("account pending admin approval")

	ErrUserNotFound    = errors.New("user not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrPatternNotFound = errors.New("pattern not found")
	ErrImageNotFound   = errors.New("image not found")
	ErrMessageNotFound = errors.New("message not found")

	ErrInvalidRole   = errors.New("invalid role")
	ErrInvalidStage  = errors.New("invalid stage")
	ErrInvalidStatus = errors.New("invalid status")
	ErrInvalidSlot   = errors.New("slot must be between 1 and 5")
	ErrEmptyUpdate   = errors.New("no data to update")
	ErrEmptyMessage  = errors.New("message or image is required")
	ErrSelfDeletion  = errors.New("cannot delete your own account")
)
