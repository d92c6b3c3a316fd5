package services

import (
	"errors"

	"github.com/Nguyeniris123/JobApp/models"
)

// AuthContext carries the authenticated identity into every gated operation.
// Handlers build it from JWT claims; nothing below the route layer reads
// identity implicitly.
type AuthContext struct {
	UserID uint
	Role   models.Role
}

// Policy is the closed set of authorization checks. Every mutating endpoint
// applies exactly one of these.
type Policy int

const (
	// PolicyOwnerOnly: the actor must be the entity's owner.
	PolicyOwnerOnly Policy = iota
	// PolicyRoleOnly: the actor must hold the required role.
	PolicyRoleOnly
	// PolicyRoleOwner: the actor must hold the required role and own the
	// entity (e.g. a recruiter acting on their own job post).
	PolicyRoleOwner
)

var (
	ErrNotOwner  = errors.New("actor does not own this resource")
	ErrWrongRole = errors.New("actor role is not permitted")
)

// Allow evaluates a policy for the given actor against a required role and an
// owner ID. requiredRole is ignored for PolicyOwnerOnly; ownerID is ignored
// for PolicyRoleOnly.
func Allow(policy Policy, actor AuthContext, requiredRole models.Role, ownerID uint) error {
	switch policy {
	case PolicyOwnerOnly:
		if actor.UserID != ownerID {
			return ErrNotOwner
		}
	case PolicyRoleOnly:
		if actor.Role != requiredRole {
			return ErrWrongRole
		}
	case PolicyRoleOwner:
		if actor.Role != requiredRole {
			return ErrWrongRole
		}
		if actor.UserID != ownerID {
			return ErrNotOwner
		}
	}
	return nil
}
