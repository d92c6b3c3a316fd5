package models

import "gorm.io/gorm"

type Review struct {
	gorm.Model
	ReviewerID     uint   `json:"reviewerID" gorm:"not null;index"`
	Reviewer       User   `json:"reviewer" gorm:"foreignKey:ReviewerID"`
	ReviewedUserID uint   `json:"reviewedUserID" gorm:"not null;index"`
	ReviewedUser   User   `json:"reviewedUser" gorm:"foreignKey:ReviewedUserID"`
	Rating         int    `json:"rating" gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment        string `json:"comment" gorm:"type:text"`
}
