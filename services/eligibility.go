package services

import (
	"errors"
	"fmt"

	"github.com/Nguyeniris123/JobApp/models"
	"gorm.io/gorm"
)

// EligibilityError names the unmet review precondition so the route layer can
// surface field-level detail.
type EligibilityError struct {
	Condition string
	Message   string
}

func (e *EligibilityError) Error() string {
	return fmt.Sprintf("%s: %s", e.Condition, e.Message)
}

func eligibilityErr(condition, message string) *EligibilityError {
	return &EligibilityError{Condition: condition, Message: message}
}

// CanReviewRecruiter decides whether the candidate in reviewer may review the
// recruiter owning the given company. The trust anchor is an accepted
// application linking the two parties.
func CanReviewRecruiter(db *gorm.DB, reviewer AuthContext, companyID uint) (*models.User, error) {
	if reviewer.Role != models.RoleCandidate {
		return nil, eligibilityErr("role", "only candidates can review recruiters")
	}

	var company models.Company
	if err := db.Preload("User").First(&company, companyID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eligibilityErr("target", "company not found")
		}
		return nil, err
	}
	recruiter := company.User

	if recruiter.ID == reviewer.UserID {
		return nil, eligibilityErr("self", "you cannot review yourself")
	}

	ok, err := hasAcceptedApplication(db, reviewer.UserID, recruiter.ID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, eligibilityErr("application", "no accepted application links you to this recruiter")
	}

	return &recruiter, nil
}

// CanReviewCandidate decides whether the recruiter in reviewer may review the
// given candidate: the candidate must hold an accepted application to one of
// the reviewer's job posts.
func CanReviewCandidate(db *gorm.DB, reviewer AuthContext, candidateID uint) (*models.User, error) {
	if reviewer.Role != models.RoleRecruiter {
		return nil, eligibilityErr("role", "only recruiters can review candidates")
	}

	var candidate models.User
	if err := db.First(&candidate, candidateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, eligibilityErr("target", "candidate not found")
		}
		return nil, err
	}

	if candidate.ID == reviewer.UserID {
		return nil, eligibilityErr("self", "you cannot review yourself")
	}
	if candidate.Role != models.RoleCandidate {
		return nil, eligibilityErr("role", "target user is not a candidate")
	}

	ok, err := hasAcceptedApplication(db, candidate.ID, reviewer.UserID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, eligibilityErr("application", "no accepted application links you to this candidate")
	}

	return &candidate, nil
}

// hasAcceptedApplication reports whether the candidate holds an accepted
// application to any job post owned by the recruiter.
func hasAcceptedApplication(db *gorm.DB, candidateID, recruiterID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Application{}).
		Joins("JOIN job_posts ON job_posts.id = applications.job_id").
		Where("applications.applicant_id = ? AND job_posts.recruiter_id = ? AND applications.status = ?",
			candidateID, recruiterID, models.ApplicationAccepted).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
