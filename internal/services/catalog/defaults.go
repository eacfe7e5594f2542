package services

import "github.com/yousrr/FitZone/internal/models"

// Статические справочные данные. Используются, когда соответствующая
// коллекция в хранилище пуста, чтобы публичный сайт и личный кабинет
// оставались рабочими без начального наполнения базы.

// DefaultPlans дефолтный набор тарифных планов.
var DefaultPlans = []models.Plan{
	{
		ID:            "basic",
		Name:          "Basic",
		Price:         29,
		BillingPeriod: "month",
		Features:      []string{"Gym access", "Locker room", "1 guest pass/month"},
	},
	{
		ID:            "pro",
		Name:          "Pro Membership",
		Price:         59,
		BillingPeriod: "month",
		Features:      []string{"All Basic features", "Group classes", "2 guest passes/month"},
	},
	{
		ID:            "elite",
		Name:          "Elite",
		Price:         99,
		BillingPeriod: "month",
		Features:      []string{"All Pro features", "Personal training", "Pool access"},
	},
}

// DefaultCategories дефолтный набор категорий занятий.
var DefaultCategories = []models.Category{
	{ID: "crossfit", Name: "CrossFit"},
	{ID: "pool", Name: "Pool"},
	{ID: "yoga", Name: "Yoga"},
	{ID: "hiit", Name: "HIIT"},
}

// DefaultSchedule дефолтное расписание занятий.
var DefaultSchedule = []models.Session{
	{
		ID:        "s1",
		Title:     "Morning CrossFit",
		DayOfWeek: "monday",
		StartTime: "06:00",
		EndTime:   "07:00",
		Category:  "CrossFit",
		Room:      "Studio A",
		Coach:     models.Coach{Name: "John Smith", Specialties: []string{"CrossFit", "HIIT"}},
	},
	{
		ID:        "s2",
		Title:     "Power Yoga",
		DayOfWeek: "tuesday",
		StartTime: "08:00",
		EndTime:   "09:00",
		Category:  "Yoga",
		Room:      "Studio B",
		Coach:     models.Coach{Name: "Sarah Johnson", Specialties: []string{"Yoga", "Meditation"}},
	},
	{
		ID:        "s3",
		Title:     "Lap Swimming",
		DayOfWeek: "wednesday",
		StartTime: "10:00",
		EndTime:   "11:00",
		Category:  "Pool",
		Coach:     models.Coach{Name: "Mike Davis", Specialties: []string{"Swimming", "Water Aerobics"}},
	},
	{
		ID:        "s4",
		Title:     "Afternoon HIIT",
		DayOfWeek: "thursday",
		StartTime: "17:00",
		EndTime:   "18:00",
		Category:  "HIIT",
		Room:      "Main Floor",
		Coach:     models.Coach{Name: "Emily Brown", Specialties: []string{"HIIT", "Cardio"}},
	},
}
