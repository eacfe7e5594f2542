package models

import "time"

// Member представляет профиль участника клуба.
//
// Создаётся один раз при регистрации и в рамках этой системы не меняется.
type Member struct {
	UID               string    `json:"id"`
	Email             string    `json:"email"`
	FirstName         string    `json:"firstName"`
	LastName          string    `json:"lastName"`
	DateOfBirth       string    `json:"dateOfBirth"`
	TrainingFrequency string    `json:"trainingFrequency"`
	CreatedAt         time.Time `json:"createdAt"`
}

// DummySignup используется для приёма данных регистрации из JSON-запроса.
//
// ConfirmPassword опционален; если передан, должен совпадать с Password.
type DummySignup struct {
	ContractCode      string `json:"contractCode" validate:"required"`
	FirstName         string `json:"firstName" validate:"required"`
	LastName          string `json:"lastName" validate:"required"`
	DateOfBirth       string `json:"dateOfBirth" validate:"required"`
	TrainingFrequency string `json:"trainingFrequency" validate:"required"`
	Email             string `json:"email" validate:"required,email"`
	Password          string `json:"password" validate:"required,min=6"`
	ConfirmPassword   string `json:"confirmPassword,omitempty" validate:"omitempty"`
}

// DummyLogin используется для приёма учетных данных из JSON-запроса.
type DummyLogin struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}
