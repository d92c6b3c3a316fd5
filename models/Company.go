package models

import "gorm.io/gorm"

type Company struct {
	gorm.Model
	UserID      uint           `json:"userID" gorm:"uniqueIndex;not null"` // owning recruiter, 1:1
	User        User           `json:"-" gorm:"foreignKey:UserID"`
	Name        string         `json:"name" gorm:"not null"`
	TaxCode     string         `json:"taxCode" gorm:"uniqueIndex;not null"`
	Description string         `json:"description" gorm:"type:text"`
	Location    string         `json:"location"`
	IsVerified  bool           `json:"isVerified" gorm:"default:false"` // flipped true only by the image trust verifier
	Images      []CompanyImage `json:"images" gorm:"foreignKey:CompanyID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

type CompanyImage struct {
	gorm.Model
	CompanyID uint   `json:"companyID" gorm:"not null;index"`
	URL       string `json:"url" gorm:"size:512;not null"`
}
