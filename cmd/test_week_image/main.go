package main

import (
	"fmt"
	"os"
	"time"

	"github.com/Freeeeeet/pillbot/internal/controller/render"
	"github.com/Freeeeeet/pillbot/internal/export"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// Рисует week.png и пишет alerts.ics на тестовых данных
func main() {
	now := time.Now()

	vitamin := model.Pill{ID: "p1", Name: "Vitamin D", TotalCapsules: 60, CapsulesPerServing: 1}
	omega := model.Pill{ID: "p2", Name: "Omega-3", TotalCapsules: 90, CapsulesPerServing: 2}
	iron := model.Pill{ID: "p3", Name: "Iron", TotalCapsules: 30, CapsulesPerServing: 1}

	alerts := []model.Alert{
		{
			ID:          "a1",
			DaysOfWeek:  model.Weekdays,
			TimesPerDay: 2,
			AlertTimes:  []model.AlertTime{{Hours: 8, Minutes: 0}, {Hours: 20, Minutes: 30}},
			IsActive:    true,
			Pills:       []model.Pill{vitamin, omega},
		},
		{
			ID:          "a2",
			DaysOfWeek:  []model.Weekday{model.Monday, model.Wednesday, model.Friday},
			TimesPerDay: 1,
			AlertTimes:  []model.AlertTime{{Hours: 13, Minutes: 15}},
			IsActive:    true,
			Pills:       []model.Pill{iron},
		},
		{
			// Неактивный alert на картинку и в календарь не попадает
			ID:          "a3",
			DaysOfWeek:  []model.Weekday{model.Sunday},
			TimesPerDay: 1,
			AlertTimes:  []model.AlertTime{{Hours: 6, Minutes: 0}},
			IsActive:    false,
			Pills:       []model.Pill{iron},
		},
	}

	imageData, err := render.GenerateWeekImage(alerts, now)
	if err != nil {
		fmt.Printf("Failed to generate image: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("week.png", imageData, 0o644); err != nil {
		fmt.Printf("Failed to save image: %v\n", err)
		os.Exit(1)
	}

	calendar, err := export.CalendarFile(alerts, now, now.Location())
	if err != nil {
		fmt.Printf("Failed to build calendar: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile("alerts.ics", calendar, 0o644); err != nil {
		fmt.Printf("Failed to save calendar: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("✅ Saved week.png and alerts.ics")
	if a, next, ok, err := export.NextOfAll(alerts, now, now.Location()); err == nil && ok {
		fmt.Printf("⏭ Next reminder: %s (alert %s)\n", next.Format("Mon 02 Jan 15:04"), a.ID)
	}
}
