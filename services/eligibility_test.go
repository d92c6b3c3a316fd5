package services

import (
	"errors"
	"testing"

	"github.com/Nguyeniris123/JobApp/models"
)

// Role preconditions fail before any storage access, so a nil DB is safe here.

func TestCanReviewRecruiterRequiresCandidateRole(t *testing.T) {
	for _, role := range []models.Role{models.RoleRecruiter, models.RoleAdmin} {
		_, err := CanReviewRecruiter(nil, AuthContext{UserID: 1, Role: role}, 1)

		var eligibilityErr *EligibilityError
		if !errors.As(err, &eligibilityErr) {
			t.Fatalf("expected EligibilityError for role %q, got %v", role, err)
		}
		if eligibilityErr.Condition != "role" {
			t.Fatalf("expected role condition for role %q, got %q", role, eligibilityErr.Condition)
		}
	}
}

func TestCanReviewCandidateRequiresRecruiterRole(t *testing.T) {
	for _, role := range []models.Role{models.RoleCandidate, models.RoleAdmin} {
		_, err := CanReviewCandidate(nil, AuthContext{UserID: 1, Role: role}, 2)

		var eligibilityErr *EligibilityError
		if !errors.As(err, &eligibilityErr) {
			t.Fatalf("expected EligibilityError for role %q, got %v", role, err)
		}
		if eligibilityErr.Condition != "role" {
			t.Fatalf("expected role condition for role %q, got %q", role, eligibilityErr.Condition)
		}
	}
}

func TestEligibilityErrorNamesCondition(t *testing.T) {
	err := eligibilityErr("self", "you cannot review yourself")
	if got := err.Error(); got != "self: you cannot review yourself" {
		t.Fatalf("unexpected error string %q", got)
	}
}

func TestReviewEligibilityNeedsAcceptedApplication(t *testing.T) {
	db := openTestDB(t)

	recruiter := models.User{Username: "acme-hr", Email: "hr@acme.test", Role: models.RoleRecruiter}
	candidate := models.User{Username: "dev", Email: "dev@mail.test", Role: models.RoleCandidate}
	if err := db.Create(&recruiter).Error; err != nil {
		t.Fatalf("create recruiter: %v", err)
	}
	if err := db.Create(&candidate).Error; err != nil {
		t.Fatalf("create candidate: %v", err)
	}

	company := models.Company{UserID: recruiter.ID, Name: "Acme", TaxCode: "1234567890"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}
	job := models.JobPost{RecruiterID: recruiter.ID, Title: "Backend engineer", Active: true}
	if err := db.Create(&job).Error; err != nil {
		t.Fatalf("create job post: %v", err)
	}

	application := models.Application{ApplicantID: candidate.ID, JobID: job.ID, Status: models.ApplicationPending}
	if err := db.Create(&application).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}

	// A pending application is not a trust link yet, in either direction.
	_, err := CanReviewRecruiter(db, AuthContext{UserID: candidate.ID, Role: models.RoleCandidate}, company.ID)
	var eligibility *EligibilityError
	if !errors.As(err, &eligibility) || eligibility.Condition != "application" {
		t.Fatalf("expected application condition with pending application, got %v", err)
	}
	_, err = CanReviewCandidate(db, AuthContext{UserID: recruiter.ID, Role: models.RoleRecruiter}, candidate.ID)
	if !errors.As(err, &eligibility) || eligibility.Condition != "application" {
		t.Fatalf("expected application condition with pending application, got %v", err)
	}

	if err := db.Model(&application).Update("status", models.ApplicationAccepted).Error; err != nil {
		t.Fatalf("accept application: %v", err)
	}

	// Once accepted, both parties may review each other.
	reviewedRecruiter, err := CanReviewRecruiter(db, AuthContext{UserID: candidate.ID, Role: models.RoleCandidate}, company.ID)
	if err != nil {
		t.Fatalf("candidate should be eligible after acceptance, got %v", err)
	}
	if reviewedRecruiter.ID != recruiter.ID {
		t.Fatalf("expected recruiter %d as review target, got %d", recruiter.ID, reviewedRecruiter.ID)
	}

	reviewedCandidate, err := CanReviewCandidate(db, AuthContext{UserID: recruiter.ID, Role: models.RoleRecruiter}, candidate.ID)
	if err != nil {
		t.Fatalf("recruiter should be eligible after acceptance, got %v", err)
	}
	if reviewedCandidate.ID != candidate.ID {
		t.Fatalf("expected candidate %d as review target, got %d", candidate.ID, reviewedCandidate.ID)
	}
}

func TestReviewEligibilityIgnoresOtherRecruitersApplications(t *testing.T) {
	db := openTestDB(t)

	recruiter := models.User{Username: "acme-hr", Email: "hr@acme.test", Role: models.RoleRecruiter}
	other := models.User{Username: "globex-hr", Email: "hr@globex.test", Role: models.RoleRecruiter}
	candidate := models.User{Username: "dev", Email: "dev@mail.test", Role: models.RoleCandidate}
	for _, u := range []*models.User{&recruiter, &other, &candidate} {
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("create user: %v", err)
		}
	}

	company := models.Company{UserID: recruiter.ID, Name: "Acme", TaxCode: "1234567890"}
	if err := db.Create(&company).Error; err != nil {
		t.Fatalf("create company: %v", err)
	}

	// The accepted application belongs to a different recruiter's post.
	otherJob := models.JobPost{RecruiterID: other.ID, Title: "Data engineer", Active: true}
	if err := db.Create(&otherJob).Error; err != nil {
		t.Fatalf("create job post: %v", err)
	}
	application := models.Application{ApplicantID: candidate.ID, JobID: otherJob.ID, Status: models.ApplicationAccepted}
	if err := db.Create(&application).Error; err != nil {
		t.Fatalf("create application: %v", err)
	}

	_, err := CanReviewRecruiter(db, AuthContext{UserID: candidate.ID, Role: models.RoleCandidate}, company.ID)
	var eligibility *EligibilityError
	if !errors.As(err, &eligibility) || eligibility.Condition != "application" {
		t.Fatalf("expected application condition for unrelated recruiter, got %v", err)
	}
}
