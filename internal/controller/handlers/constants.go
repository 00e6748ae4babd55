package handlers

// Ограничения пользовательского ввода
const (
	PillNameMaxLength = 100
	// Больше капсул в одной упаковке не бывает, защищает от опечаток
	PillMaxTotalCapsules = 10_000

	NameMaxLength     = 50
	UsernameMinLength = 3
	UsernameMaxLength = 30
)
