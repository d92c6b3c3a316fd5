package models

import "gorm.io/gorm"

// ApplicationStatus is the closed set of states an application moves through.
// pending is the initial state; accepted and rejected are terminal.
type ApplicationStatus string

const (
	ApplicationPending  ApplicationStatus = "pending"
	ApplicationAccepted ApplicationStatus = "accepted"
	ApplicationRejected ApplicationStatus = "rejected"
)

type Application struct {
	gorm.Model
	ApplicantID uint              `json:"applicantID" gorm:"not null;uniqueIndex:idx_applicant_job"`
	Applicant   User              `json:"applicant" gorm:"foreignKey:ApplicantID"`
	JobID       uint              `json:"jobID" gorm:"not null;uniqueIndex:idx_applicant_job"` // immutable after creation
	Job         JobPost           `json:"job" gorm:"foreignKey:JobID"`
	CVURL       string            `json:"cvURL" gorm:"size:512"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);default:'pending';index"`
}
