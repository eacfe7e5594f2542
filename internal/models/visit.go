package models

import "time"

// VisitRequest представляет заявку на пробное посещение клуба.
type VisitRequest struct {
	ID            string
	FullName      string
	Phone         string
	PreferredDate string
	PreferredTime string
	Message       string
	CreatedAt     time.Time
}

// DummyVisit используется для приёма заявки из JSON-запроса.
type DummyVisit struct {
	FullName      string `json:"fullName" validate:"required"`
	Phone         string `json:"phone" validate:"required"`
	PreferredDate string `json:"preferredDate" validate:"required"`
	PreferredTime string `json:"preferredTime" validate:"required"`
	Message       string `json:"message,omitempty" validate:"omitempty"`
}
