package project

import "errors"

var (
	// ErrProjectExists is returned when creating a project whose site is
	// already tracked
	ErrProjectExists = errors.New("project already exists")

	// ErrProjectNotFound is returned when the backend does not know the build id
	ErrProjectNotFound = errors.New("project not found")

	// ErrCarrierNotFound is returned when the backend does not know the carrier
	ErrCarrierNotFound = errors.New("fleet carrier not found")

	// ErrInvalidTransition is returned for a view change the current view does not allow
	ErrInvalidTransition = errors.New("invalid view transition")
)
