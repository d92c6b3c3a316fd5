package services

import (
	"errors"
	"testing"

	"github.com/Nguyeniris123/JobApp/models"
)

func TestAllow(t *testing.T) {
	recruiter := AuthContext{UserID: 7, Role: models.RoleRecruiter}
	candidate := AuthContext{UserID: 3, Role: models.RoleCandidate}

	tests := []struct {
		name         string
		policy       Policy
		actor        AuthContext
		requiredRole models.Role
		ownerID      uint
		wantErr      error
	}{
		{"owner passes owner-only", PolicyOwnerOnly, candidate, "", 3, nil},
		{"non-owner fails owner-only", PolicyOwnerOnly, candidate, "", 7, ErrNotOwner},
		{"matching role passes role-only", PolicyRoleOnly, recruiter, models.RoleRecruiter, 0, nil},
		{"wrong role fails role-only", PolicyRoleOnly, candidate, models.RoleRecruiter, 0, ErrWrongRole},
		{"role and ownership pass composite", PolicyRoleOwner, recruiter, models.RoleRecruiter, 7, nil},
		{"right role but wrong owner fails composite", PolicyRoleOwner, recruiter, models.RoleRecruiter, 9, ErrNotOwner},
		{"wrong role fails composite before ownership", PolicyRoleOwner, candidate, models.RoleRecruiter, 3, ErrWrongRole},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Allow(tt.policy, tt.actor, tt.requiredRole, tt.ownerID)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("Allow() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
