package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"

	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

const productID = "-//pillbot//medication reminders//EN"

// EventDuration длительность события в календаре
const EventDuration = 15 * time.Minute

// BuildCalendar собирает календарь: одно повторяющееся событие на каждый
// слот каждого активного alert
func BuildCalendar(alerts []model.Alert, now time.Time, loc *time.Location) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)

	for _, a := range alerts {
		if !a.IsActive {
			continue
		}
		for i, slot := range a.AlertTimes {
			opt, ok := SlotOption(a, slot, now, loc)
			if !ok {
				continue
			}

			event := ical.NewEvent()
			event.Props.SetText(ical.PropUID, eventUID(a, i))
			event.Props.SetDateTime(ical.PropDateTimeStamp, now.UTC())
			event.Props.SetDateTime(ical.PropDateTimeStart, opt.Dtstart)
			event.Props.SetDateTime(ical.PropDateTimeEnd, opt.Dtstart.Add(EventDuration))
			event.Props.SetText(ical.PropSummary, eventSummary(a))
			event.Props.SetText(ical.PropDescription, eventDescription(a))
			event.Props.SetRecurrenceRule(&opt)

			cal.Children = append(cal.Children, event.Component)
		}
	}

	return cal
}

// Encode пишет календарь в формате .ics
func Encode(w io.Writer, cal *ical.Calendar) error {
	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encode calendar: %w", err)
	}
	return nil
}

// CalendarFile возвращает содержимое .ics для alerts.
// Пустой календарь без событий - ошибка, ical требует хотя бы один компонент.
func CalendarFile(alerts []model.Alert, now time.Time, loc *time.Location) ([]byte, error) {
	cal := BuildCalendar(alerts, now, loc)
	if len(cal.Children) == 0 {
		return nil, ErrNothingToExport
	}

	var buf bytes.Buffer
	if err := Encode(&buf, cal); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func eventUID(a model.Alert, slot int) string {
	id := a.ID
	if id == "" {
		id = "draft"
	}
	return fmt.Sprintf("%s-%d@pillbot", id, slot)
}

func eventSummary(a model.Alert) string {
	names := pillNames(a)
	if len(names) == 0 {
		return "💊 Take your pills"
	}
	return "💊 " + strings.Join(names, ", ")
}

func eventDescription(a model.Alert) string {
	var sb strings.Builder
	for _, p := range a.Pills {
		if p.Name == "" {
			continue
		}
		fmt.Fprintf(&sb, "%s: %d per serving\n", p.Name, p.CapsulesPerServing)
	}
	times := make([]string, len(a.AlertTimes))
	for i, t := range a.AlertTimes {
		times[i] = schedule.FormatAlertTime(t)
	}
	fmt.Fprintf(&sb, "Times: %s", strings.Join(times, ", "))
	return sb.String()
}

func pillNames(a model.Alert) []string {
	names := make([]string, 0, len(a.Pills))
	for _, p := range a.Pills {
		if p.Name != "" {
			names = append(names, p.Name)
		}
	}
	return names
}
