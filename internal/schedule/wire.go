package schedule

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Freeeeeet/pillbot/internal/model"
)

// FormatAlertTime возвращает "HH:MM" с ведущими нулями
func FormatAlertTime(t model.AlertTime) string {
	return fmt.Sprintf("%02d:%02d", t.Hours, t.Minutes)
}

// ParseAlertTime разбирает время из ответа API
func ParseAlertTime(s string) (model.AlertTime, error) {
	return ParseClock(s)
}

// AlertPayload тело запроса на создание/обновление alert
type AlertPayload struct {
	DaysOfWeek  []model.Weekday `json:"daysOfWeek"`
	TimesPerDay int             `json:"timesPerDay"`
	AlertTimes  []string        `json:"alertTimes"`
	IsActive    bool            `json:"isActive"`
	Pills       []string        `json:"pills"`
}

// Outbound готовит alert к отправке: время строками "HH:MM",
// timesPerDay пересчитан по длине alertTimes, pills списком id
func Outbound(a model.Alert) AlertPayload {
	times := make([]string, len(a.AlertTimes))
	for i, t := range a.AlertTimes {
		times[i] = FormatAlertTime(t)
	}

	return AlertPayload{
		DaysOfWeek:  NormalizeDays(a.DaysOfWeek),
		TimesPerDay: len(times),
		AlertTimes:  times,
		IsActive:    a.IsActive,
		Pills:       a.PillIDs(),
	}
}

// WireAlert alert в том виде, в котором его возвращает API.
// alertTimes приходят строками или объектами, pills - id или объектами,
// user - id или объектом.
type WireAlert struct {
	ID          string            `json:"_id"`
	DaysOfWeek  []string          `json:"daysOfWeek"`
	TimesPerDay int               `json:"timesPerDay"`
	AlertTimes  []json.RawMessage `json:"alertTimes"`
	IsActive    bool              `json:"isActive"`
	User        json.RawMessage   `json:"user,omitempty"`
	Pills       []json.RawMessage `json:"pills"`
}

// Inbound нормализует alert из ответа API. Повторная нормализация результата
// ничего не меняет.
func Inbound(w WireAlert) (model.Alert, error) {
	times := make([]model.AlertTime, 0, len(w.AlertTimes))
	for i, raw := range w.AlertTimes {
		t, err := decodeTime(raw)
		if err != nil {
			return model.Alert{}, fmt.Errorf("decode alert time %d: %w", i, err)
		}
		times = append(times, t)
	}

	pills := make([]model.Pill, 0, len(w.Pills))
	for i, raw := range w.Pills {
		p, ok, err := decodePill(raw)
		if err != nil {
			return model.Alert{}, fmt.Errorf("decode pill %d: %w", i, err)
		}
		if ok {
			pills = append(pills, p)
		}
	}

	owner, err := decodeOwner(w.User)
	if err != nil {
		return model.Alert{}, fmt.Errorf("decode alert owner: %w", err)
	}

	return model.Alert{
		ID:          w.ID,
		DaysOfWeek:  NormalizeDays(w.DaysOfWeek),
		TimesPerDay: len(times),
		AlertTimes:  times,
		IsActive:    w.IsActive,
		User:        owner,
		Pills:       pills,
	}, nil
}

// UnmarshalAlert разбирает и нормализует JSON одного alert
func UnmarshalAlert(data []byte) (model.Alert, error) {
	var w WireAlert
	if err := json.Unmarshal(data, &w); err != nil {
		return model.Alert{}, fmt.Errorf("unmarshal alert: %w", err)
	}
	return Inbound(w)
}

func isJSONString(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '"'
}

func isJSONNull(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

func decodeTime(raw json.RawMessage) (model.AlertTime, error) {
	if isJSONString(raw) {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return model.AlertTime{}, err
		}
		return ParseAlertTime(s)
	}

	var t model.AlertTime
	if err := json.Unmarshal(raw, &t); err != nil {
		return model.AlertTime{}, err
	}
	return t, nil
}

func decodePill(raw json.RawMessage) (model.Pill, bool, error) {
	if isJSONNull(raw) {
		return model.Pill{}, false, nil
	}

	if isJSONString(raw) {
		var id string
		if err := json.Unmarshal(raw, &id); err != nil {
			return model.Pill{}, false, err
		}
		id = strings.TrimSpace(id)
		return model.Pill{ID: id}, id != "", nil
	}

	var p model.Pill
	if err := json.Unmarshal(raw, &p); err != nil {
		return model.Pill{}, false, err
	}
	return p, p.ID != "", nil
}

func decodeOwner(raw json.RawMessage) (string, error) {
	if isJSONNull(raw) {
		return "", nil
	}

	if isJSONString(raw) {
		var id string
		err := json.Unmarshal(raw, &id)
		return id, err
	}

	var u model.User
	if err := json.Unmarshal(raw, &u); err != nil {
		return "", err
	}
	return u.ID, nil
}
