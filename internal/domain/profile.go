package domain

import (
	"time"

	"github.com/google/uuid"
)

// Profile описывает профиль пользователя; ID совпадает с id пользователя во внешней авторизации.
type Profile struct {
	ID             uuid.UUID  `json:"id"`
	FullName       string     `json:"full_name"`
	TelegramChatID *int64     `json:"telegram_chat_id"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      *time.Time `json:"updated_at"`
}
