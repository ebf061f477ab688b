package entity

import "inkboard/pkg/access"

type User struct {
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Role         access.Role `json:"role"`
}
