package models

import "gorm.io/gorm"

// Follow subscribes a candidate to a recruiter's new job posts.
type Follow struct {
	gorm.Model
	FollowerID  uint `json:"followerID" gorm:"not null;uniqueIndex:idx_follower_recruiter"`
	Follower    User `json:"follower" gorm:"foreignKey:FollowerID"`
	RecruiterID uint `json:"recruiterID" gorm:"not null;uniqueIndex:idx_follower_recruiter"`
	Recruiter   User `json:"recruiter" gorm:"foreignKey:RecruiterID"`
}
