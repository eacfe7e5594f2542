package models

import (
	"strings"
	"time"
)

// Статусы контрактного кода. Код создаётся вне системы со статусом ACTIVE
// и ровно один раз переводится в USED — атомарно с созданием участника
// и подписки.
const (
	CodeStatusActive = "ACTIVE"
	CodeStatusUsed   = "USED"
)

// ContractCode представляет одноразовый код, привязывающий будущего
// участника к тарифному плану.
type ContractCode struct {
	Code      string     // Нормализованный идентификатор (trim + uppercase)
	Status    string     // ACTIVE, USED или иной внешний статус
	ExpiresAt *time.Time // Срок действия, nil — бессрочный
	PlanID    *string    // Связанный тарифный план, nil — без плана
	UsedBy    *string    // UID участника, погасившего код
	UsedAt    *time.Time // Момент погашения
}

// NormalizeCode приводит код к каноническому виду: пробелы по краям
// убираются, буквы переводятся в верхний регистр. Валидация и signup
// обязаны использовать одну и ту же нормализацию.
func NormalizeCode(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// DummyCode используется для приёма кода из JSON-запроса валидации.
type DummyCode struct {
	ContractCode string `json:"contractCode" validate:"required"`
}
