package models

import "time"

// Статусы подписки. Подписка создаётся со статусом ACTIVE; смена статуса
// происходит вне системы и влияет только на допуск в личный кабинет.
const (
	SubscriptionStatusActive = "ACTIVE"
)

// Subscription представляет запись о членстве: окно действия и тарифный план.
//
// На одного участника приходится ровно одна подписка, ключ — UID участника.
type Subscription struct {
	ID        string    `json:"id"`
	UserUID   string    `json:"userId"`
	PlanID    *string   `json:"planId"`
	Status    string    `json:"status"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"`
}
