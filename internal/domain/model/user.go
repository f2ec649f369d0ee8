package model

import "time"

const (
	LoginTypeResearcher = "researcher"
	LoginTypeCompany    = "company"
	LoginTypeAdmin      = "admin"
)

type User struct {
	ID           string     `json:"id"`
	CompanyName  string     `json:"companyName,omitempty"`
	FirstName    string     `json:"firstName"`
	LastName     string     `json:"lastName"`
	Email        string     `json:"email"`
	Password     string     `json:"-"` // Not exposed
	ProfilePhoto string     `json:"profilePhoto,omitempty"`
	AuthCode     string     `json:"authCode,omitempty"`
	LoginType    string     `json:"loginType"`
	About        StringList `json:"about"`
	SocialLink   StringList `json:"socialLink"`
	IsVerified   bool       `json:"isVerified"`
	Lifecycle
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
