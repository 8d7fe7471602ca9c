package model

import "time"

// User represents a registered account as persisted in the users document.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"password"` // Never expose outside the store, see Public
	Name         string    `json:"name"`
	NationalID   string    `json:"idNumber"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the view of a User that may cross the system boundary.
type PublicUser struct {
	ID         string    `json:"id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	NationalID string    `json:"idNumber"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Public strips the password hash.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Email:      u.Email,
		Name:       u.Name,
		NationalID: u.NationalID,
		CreatedAt:  u.CreatedAt,
	}
}
