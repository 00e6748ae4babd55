package state

import "time"

// UserState представляет текущее состояние пользователя в диалоге
type UserState string

const (
	StateNone UserState = "" // Нет активного состояния

	// Регистрация
	StateRegisterFirstName   UserState = "register_first_name"
	StateRegisterLastName    UserState = "register_last_name"
	StateRegisterUsername    UserState = "register_username"
	StateRegisterPassword    UserState = "register_password"
	StateRegisterGender      UserState = "register_gender"
	StateRegisterDateOfBirth UserState = "register_date_of_birth"
	StateRegisterPhone       UserState = "register_phone"
	StateVerifyOTP           UserState = "verify_otp"

	// Вход
	StateLoginUsername UserState = "login_username"
	StateLoginPassword UserState = "login_password"

	// Сброс пароля
	StateForgotPhone   UserState = "forgot_phone"
	StateResetOTP      UserState = "reset_otp"
	StateResetPassword UserState = "reset_password"

	// Редактирование профиля, поле лежит в KeyField
	StateProfileField UserState = "profile_field"

	// Создание pill
	StateCreatePillName    UserState = "create_pill_name"
	StateCreatePillTotal   UserState = "create_pill_total"
	StateCreatePillServing UserState = "create_pill_serving"

	// Редактирование pill: KeyPillID + KeyField
	StateEditPillField UserState = "edit_pill_field"

	// Редактор alert: черновик в KeyDraft
	StateAlertEditor UserState = "alert_editor"
	// Ввод времени слота "HH:MM", индекс в KeySlot
	StateAlertTime UserState = "alert_time"
)

// Ключи временных данных диалога
const (
	KeyDraft     = "draft"
	KeySlot      = "slot"
	KeyField     = "field"
	KeyPillID    = "pill_id"
	KeyPhone     = "phone"
	KeyOTP       = "otp"
	KeyPurpose   = "purpose"
	KeySignup    = "signup"
	KeyPillDraft = "pill_draft"
	KeyUsername  = "username"
)

// UserData хранит временные данные пользователя во время диалога
type UserData struct {
	State   UserState
	Data    map[string]any // Временные данные для текущего диалога
	Touched time.Time      // последнее изменение состояния или данных
}
