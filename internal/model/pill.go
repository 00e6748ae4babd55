package model

// Pill описывает лекарство из каталога пользователя
type Pill struct {
	ID                 string `json:"_id"`
	Name               string `json:"name"`
	TotalCapsules      int    `json:"totalCapsules"`
	CapsulesPerServing int    `json:"capsulesPerServing"` // 0-3, сколько капсул за один приём
}

// Границы значений для pill
const (
	PillMinTotalCapsules      = 1
	PillMinCapsulesPerServing = 0
	PillMaxCapsulesPerServing = 3
)

// PillFields набор полей для создания/обновления pill
type PillFields struct {
	Name               string `json:"name"`
	TotalCapsules      int    `json:"totalCapsules"`
	CapsulesPerServing int    `json:"capsulesPerServing"`
}

// Fields возвращает редактируемые поля pill
func (p Pill) Fields() PillFields {
	return PillFields{
		Name:               p.Name,
		TotalCapsules:      p.TotalCapsules,
		CapsulesPerServing: p.CapsulesPerServing,
	}
}
