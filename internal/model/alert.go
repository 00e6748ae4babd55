package model

// AlertTime время срабатывания внутри суток, без даты и часового пояса
type AlertTime struct {
	Hours   int `json:"hours"`   // 0-23
	Minutes int `json:"minutes"` // 0-59
}

// Alert напоминание: набор pills, дни недели и слоты времени.
// TimesPerDay всегда равен len(AlertTimes) в устоявшемся состоянии.
type Alert struct {
	ID          string      `json:"_id,omitempty"` // пусто у черновика
	DaysOfWeek  []Weekday   `json:"daysOfWeek"`
	TimesPerDay int         `json:"timesPerDay"`
	AlertTimes  []AlertTime `json:"alertTimes"`
	IsActive    bool        `json:"isActive"`
	User        string      `json:"user,omitempty"`
	Pills       []Pill      `json:"pills"`
}

// IsPersisted проверяет, сохранён ли alert на сервере
func (a Alert) IsPersisted() bool {
	return a.ID != ""
}

// Clone возвращает глубокую копию, изменения которой не затрагивают оригинал
func (a Alert) Clone() Alert {
	out := a
	if a.DaysOfWeek != nil {
		out.DaysOfWeek = append([]Weekday(nil), a.DaysOfWeek...)
	}
	if a.AlertTimes != nil {
		out.AlertTimes = append([]AlertTime(nil), a.AlertTimes...)
	}
	if a.Pills != nil {
		out.Pills = append([]Pill(nil), a.Pills...)
	}
	return out
}

// HasDay проверяет, выбран ли день
func (a Alert) HasDay(day Weekday) bool {
	for _, d := range a.DaysOfWeek {
		if d == day {
			return true
		}
	}
	return false
}

// PillIDs возвращает id прикреплённых pills в порядке добавления
func (a Alert) PillIDs() []string {
	ids := make([]string, 0, len(a.Pills))
	for _, p := range a.Pills {
		if p.ID != "" {
			ids = append(ids, p.ID)
		}
	}
	return ids
}
