package models

import (
	"encoding/json"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Role is the closed set of account roles. It is assigned at registration
// and never changes afterwards.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleRecruiter Role = "recruiter"
	RoleCandidate Role = "candidate"
)

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleRecruiter, RoleCandidate:
		return true
	}
	return false
}

type User struct {
	gorm.Model
	FirstName string         `json:"firstName"`
	LastName  string         `json:"lastName"`
	Username  string         `json:"username" gorm:"uniqueIndex;not null"`
	Email     string         `json:"email" gorm:"index"`
	Password  string         `json:"-"`
	AvatarURL string         `json:"avatarURL"`
	Role      Role           `json:"role" gorm:"type:varchar(20);not null;index"`
	Skills    datatypes.JSON `json:"skills"`
	Company   *Company       `json:"company,omitempty" gorm:"foreignKey:UserID"`
}

// MarshalJSON flattens the Skills JSON column into a plain string slice.
func (u *User) MarshalJSON() ([]byte, error) {
	type Alias User
	aux := &struct {
		Skills []string `json:"skills"`
		*Alias
	}{
		Skills: []string{},
		Alias:  (*Alias)(u),
	}

	if u.Skills != nil {
		var skills []string
		if err := json.Unmarshal(u.Skills, &skills); err == nil {
			aux.Skills = skills
		}
	}

	return json.Marshal(aux)
}
