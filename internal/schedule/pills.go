package schedule

import "github.com/Freeeeeet/pillbot/internal/model"

// SelectPills заменяет набор pills выбранными в пикере.
// Результат идёт в порядке каталога; id, которых нет в каталоге, отбрасываются.
func SelectPills(a model.Alert, chosenIDs []string, catalog []model.Pill) model.Alert {
	chosen := make(map[string]bool, len(chosenIDs))
	for _, id := range chosenIDs {
		chosen[id] = true
	}

	out := a.Clone()
	out.Pills = make([]model.Pill, 0, len(chosenIDs))
	for _, p := range catalog {
		if p.ID != "" && chosen[p.ID] {
			out.Pills = append(out.Pills, p)
		}
	}
	return out
}

// RemovePill убирает pill по id; отсутствующий id - no-op
func RemovePill(a model.Alert, pillID string) model.Alert {
	out := a.Clone()
	out.Pills = make([]model.Pill, 0, len(a.Pills))
	for _, p := range a.Pills {
		if p.ID != pillID {
			out.Pills = append(out.Pills, p)
		}
	}
	return out
}

// ResolvePills подставляет актуальные данные pills из каталога.
// Ссылки без id и ссылки на pills, которых больше нет в каталоге, отбрасываются.
func ResolvePills(a model.Alert, catalog []model.Pill) model.Alert {
	byID := make(map[string]model.Pill, len(catalog))
	for _, p := range catalog {
		byID[p.ID] = p
	}

	out := a.Clone()
	out.Pills = make([]model.Pill, 0, len(a.Pills))
	seen := make(map[string]bool, len(a.Pills))
	for _, ref := range a.Pills {
		if ref.ID == "" || seen[ref.ID] {
			continue
		}
		p, ok := byID[ref.ID]
		if !ok {
			continue
		}
		seen[ref.ID] = true
		out.Pills = append(out.Pills, p)
	}
	return out
}

// ValidPills отфильтровывает пустые ссылки
func ValidPills(pills []model.Pill) []model.Pill {
	out := make([]model.Pill, 0, len(pills))
	for _, p := range pills {
		if p.ID != "" {
			out = append(out, p)
		}
	}
	return out
}
