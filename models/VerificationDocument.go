package models

import (
	"time"

	"gorm.io/gorm"
)

// VerificationStatus tracks the manual admin review of an identity document.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

type VerificationDocument struct {
	gorm.Model
	UserID      uint               `json:"userID" gorm:"uniqueIndex;not null"` // one document per user
	User        User               `json:"user" gorm:"foreignKey:UserID"`
	DocumentURL string             `json:"documentURL" gorm:"size:512;not null"`
	Status      VerificationStatus `json:"status" gorm:"type:varchar(10);default:'pending';index"`
	AdminNote   string             `json:"adminNote" gorm:"type:text"`
	ReviewedBy  *uint              `json:"reviewedBy" gorm:"index"`
	ReviewedAt  *time.Time         `json:"reviewedAt"`
}
