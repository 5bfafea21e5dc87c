package models

// Identity is the caller resolved from the bearer token.
type Identity struct {
	Asesor string `json:"asesor"`
	RoleID int    `json:"role_id"`
	Email  string `json:"email,omitempty"`
}
