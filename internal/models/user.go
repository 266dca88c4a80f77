package models

import "time"

// User представляет зарегистрированного пользователя на сервере.
type User struct {
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	ID           string     `json:"id"`            // UUID
	Username     string     `json:"username"`      // уникальное имя пользователя
	PasswordHash string     `json:"password_hash"` // argon2id encoded hash
	Role         string     `json:"role"`          // admin или user
}
