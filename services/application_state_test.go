package services

import (
	"errors"
	"testing"

	"github.com/Nguyeniris123/JobApp/models"
)

func TestTransitionTable(t *testing.T) {
	tests := []struct {
		name       string
		current    models.ApplicationStatus
		action     ApplicationAction
		actor      models.Role
		wantStatus models.ApplicationStatus
		wantErr    error
	}{
		{"recruiter accepts pending", models.ApplicationPending, ActionAccept, models.RoleRecruiter, models.ApplicationAccepted, nil},
		{"recruiter rejects pending", models.ApplicationPending, ActionReject, models.RoleRecruiter, models.ApplicationRejected, nil},
		{"candidate cannot accept", models.ApplicationPending, ActionAccept, models.RoleCandidate, models.ApplicationPending, ErrTransitionForbidden},
		{"candidate cannot reject", models.ApplicationPending, ActionReject, models.RoleCandidate, models.ApplicationPending, ErrTransitionForbidden},
		{"admin cannot accept", models.ApplicationPending, ActionAccept, models.RoleAdmin, models.ApplicationPending, ErrTransitionForbidden},
		{"accepted is terminal", models.ApplicationAccepted, ActionReject, models.RoleRecruiter, models.ApplicationAccepted, ErrAlreadyDecided},
		{"rejected is terminal", models.ApplicationRejected, ActionAccept, models.RoleRecruiter, models.ApplicationRejected, ErrAlreadyDecided},
		{"unknown action", models.ApplicationPending, ApplicationAction("resubmit"), models.RoleRecruiter, models.ApplicationPending, ErrUnknownAction},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Transition(tt.current, tt.action, tt.actor)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Transition() error = %v, want %v", err, tt.wantErr)
			}
			if got != tt.wantStatus {
				t.Fatalf("Transition() = %q, want %q", got, tt.wantStatus)
			}
		})
	}
}

func TestTransitionNeverRevertsToPending(t *testing.T) {
	statuses := []models.ApplicationStatus{models.ApplicationAccepted, models.ApplicationRejected}
	actions := []ApplicationAction{ActionAccept, ActionReject}
	roles := []models.Role{models.RoleAdmin, models.RoleRecruiter, models.RoleCandidate}

	for _, status := range statuses {
		for _, action := range actions {
			for _, role := range roles {
				got, err := Transition(status, action, role)
				if err == nil {
					t.Fatalf("Transition(%q, %q, %q) unexpectedly succeeded", status, action, role)
				}
				if got == models.ApplicationPending {
					t.Fatalf("Transition(%q, %q, %q) reverted to pending", status, action, role)
				}
			}
		}
	}
}
