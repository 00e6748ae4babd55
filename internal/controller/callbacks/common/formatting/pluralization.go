package formatting

import "fmt"

// Pluralize возвращает "1 pill" или "3 pills"
func Pluralize(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// PluralizeCapsules возвращает количество капсул с правильной формой слова
func PluralizeCapsules(count int) string {
	return Pluralize(count, "capsule", "capsules")
}

// PluralizeTimes возвращает "1 time" / "2 times"
func PluralizeTimes(count int) string {
	return Pluralize(count, "time", "times")
}

// PluralizeAlerts возвращает количество alerts
func PluralizeAlerts(count int) string {
	return Pluralize(count, "alert", "alerts")
}
