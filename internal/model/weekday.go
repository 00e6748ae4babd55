package model

import "strings"

// Weekday название дня недели в каноническом виде ("Sunday" ... "Saturday")
type Weekday string

const (
	Sunday    Weekday = "Sunday"
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
)

// Weekdays канонический порядок дней недели (0 = Sunday, как в time.Weekday)
var Weekdays = []Weekday{Sunday, Monday, Tuesday, Wednesday, Thursday, Friday, Saturday}

// ParseWeekday приводит название дня к каноническому виду без учёта регистра
func ParseWeekday(s string) (Weekday, bool) {
	s = strings.TrimSpace(s)
	for _, d := range Weekdays {
		if strings.EqualFold(string(d), s) {
			return d, true
		}
	}
	return "", false
}

// Index возвращает номер дня (0 = Sunday) или -1 для неизвестного значения
func (d Weekday) Index() int {
	for i, wd := range Weekdays {
		if wd == d {
			return i
		}
	}
	return -1
}

// Short возвращает двухбуквенное сокращение: "Su", "Mo", ...
func (d Weekday) Short() string {
	if len(d) < 2 {
		return string(d)
	}
	return string(d[:2])
}
