package approvals

import "errors"

var (
	ErrConfirmationRequired = errors.New("confirmation token missing, expired or already used")
	ErrSensorsRequired      = errors.New("station has no sensors; approval requires force")
	ErrNotAllowed           = errors.New("item is outside the caller's scope")
	ErrUnknownItemType      = errors.New("unknown approval item type")
)
