package models

import "time"

// Account представляет учётную запись на стороне identity-сервиса.
//
// Хранилище аккаунтов — единственный владелец парольного материала;
// остальная система видит только непрозрачные bearer-токены.
type Account struct {
	UID          string    // Уникальный идентификатор аккаунта
	Email        string    // Электронная почта (уникальная)
	PasswordHash string    // bcrypt-хэш пароля
	DisplayName  string    // Отображаемое имя
	CreatedAt    time.Time // Момент создания
}
