package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Name         string
	PasswordHash string // argon2id PHC string
	Role         Role
	Disabled     bool
	CreatedAt    time.Time
}
