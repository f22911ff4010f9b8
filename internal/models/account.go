package models

import "time"

// Account представляет учетную запись пользователя
type Account struct {
	ID           int64     `json:"id"`         // autoincrement id из БД
	Username     string    `json:"username"`   // уникальный username (case-sensitive)
	PasswordHash string    `json:"-"`          // hex SHA-256(password + salt)
	Salt         string    `json:"-"`          // hex encoded random salt (16 bytes)
	CreatedAt    time.Time `json:"created_at"` // время создания
}
