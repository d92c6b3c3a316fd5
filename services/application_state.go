package services

import (
	"errors"

	"github.com/Nguyeniris123/JobApp/models"
)

// ApplicationAction is a request to move an application through its lifecycle.
type ApplicationAction string

const (
	ActionAccept ApplicationAction = "accept"
	ActionReject ApplicationAction = "reject"
)

var (
	// ErrTransitionForbidden means the actor's role may never trigger this action.
	ErrTransitionForbidden = errors.New("actor role may not change application status")
	// ErrAlreadyDecided means the application left the pending state earlier;
	// accepted and rejected are terminal.
	ErrAlreadyDecided = errors.New("application has already been decided")
	// ErrUnknownAction means the action is not part of the lifecycle.
	ErrUnknownAction = errors.New("unknown application action")
)

// Transition is the single authority on application status changes. Only a
// recruiter may decide an application, and only while it is still pending.
func Transition(current models.ApplicationStatus, action ApplicationAction, actor models.Role) (models.ApplicationStatus, error) {
	if actor != models.RoleRecruiter {
		return current, ErrTransitionForbidden
	}

	if current != models.ApplicationPending {
		return current, ErrAlreadyDecided
	}

	switch action {
	case ActionAccept:
		return models.ApplicationAccepted, nil
	case ActionReject:
		return models.ApplicationRejected, nil
	}
	return current, ErrUnknownAction
}
