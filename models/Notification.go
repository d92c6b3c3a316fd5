package models

import "gorm.io/gorm"

type Notification struct {
	gorm.Model
	UserID uint   `json:"userID" gorm:"not null;index"`
	Type   string `json:"type" gorm:"size:50;index"` // new_job_post, application_accepted, application_rejected
	Title  string `json:"title"`
	Body   string `json:"body" gorm:"type:text"`
	Read   bool   `json:"read" gorm:"default:false;index"`
}
