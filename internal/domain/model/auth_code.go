package model

import "time"

// AuthCode gates signup: a code's existence is its validity, it is never
// consumed.
type AuthCode struct {
	ID        string    `json:"id"`
	AuthCode  string    `json:"authCode"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
