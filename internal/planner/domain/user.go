package domain

import "time"

type User struct {
	ID           string
	Name         string
	Email        string
	MobileNumber string
	PasswordHash string // argon2id PHC string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
