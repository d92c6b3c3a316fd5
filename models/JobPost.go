package models

import "gorm.io/gorm"

type JobPost struct {
	gorm.Model
	RecruiterID  uint    `json:"recruiterID" gorm:"not null;index"` // immutable after creation
	Recruiter    User    `json:"recruiter" gorm:"foreignKey:RecruiterID"`
	Title        string  `json:"title" gorm:"not null"`
	Specialized  string  `json:"specialized" gorm:"default:'Unclassified';index"`
	Description  string  `json:"description" gorm:"type:text"`
	Salary       float64 `json:"salary"`
	WorkingHours string  `json:"workingHours" gorm:"size:50"`
	Location     string  `json:"location" gorm:"index"`
	Active       bool    `json:"active" gorm:"default:true;index"`
}
