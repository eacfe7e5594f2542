package models

// Coach описывает тренера, ведущего занятие.
type Coach struct {
	Name        string   `json:"name"`
	Specialties []string `json:"specialties"`
}

// Session представляет занятие в расписании клуба.
type Session struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	DayOfWeek string `json:"dayOfWeek"`
	StartTime string `json:"startTime"`
	EndTime   string `json:"endTime"`
	Category  string `json:"category"`
	Room      string `json:"room,omitempty"`
	Coach     Coach  `json:"coach"`
}

// ScheduleFilter задаёт фильтры выборки расписания.
// Пустое значение означает отсутствие фильтра по соответствующему полю.
type ScheduleFilter struct {
	DayOfWeek string
	Category  string
}

// Matches сообщает, проходит ли занятие фильтр. Используется и при
// фильтрации статического расписания, когда хранилище пусто.
func (f ScheduleFilter) Matches(s Session) bool {
	if f.DayOfWeek != "" && s.DayOfWeek != f.DayOfWeek {
		return false
	}
	if f.Category != "" && s.Category != f.Category {
		return false
	}
	return true
}
