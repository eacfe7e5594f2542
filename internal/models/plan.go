// Package models содержит доменные структуры клуба: тарифные планы,
// категории занятий, расписание, контрактные коды, участников и подписки,
// а также вспомогательные типы для приёма данных из JSON-запросов.
package models

// Plan представляет тарифный план клуба.
//
// Справочные данные: создаются вне системы, здесь только читаются.
type Plan struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Price         int      `json:"price"`
	BillingPeriod string   `json:"billingPeriod"`
	Features      []string `json:"features"`
}

// Category представляет категорию занятий (yoga, pool и т.д.).
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
