package common

import "github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/keyboard"

// Навигация
const (
	BackToMain = keyboard.BackToMain
	Noop       = keyboard.Noop
)

// Аккаунт
const (
	Login          = "login"
	Logout         = "logout"
	LogoutConfirm  = "logout_confirm"
	ResendOTP      = "otp_resend"
	ChooseGender   = "gender:"       // gender:Female
	EditProfile    = "profile_edit:" // profile_edit:firstName
	ProfileBack    = "profile"
	ForgotPassword = "forgot"
)

// Pills
const (
	PillsList         = "pills"
	PillsPage         = "pills_page:" // pills_page:1
	PillView          = "pill_view:"  // pill_view:<id>
	PillAdd           = "pill_add"
	PillEditName      = "pill_name:"        // pill_name:<id>
	PillEditTotal     = "pill_total:"       // pill_total:<id>
	PillEditServing   = "pill_serving:"     // pill_serving:<id>
	PillSetServing    = "pill_set_serving:" // pill_set_serving:<id>:2
	PillCreateServing = "pill_new_serving:" // pill_new_serving:2
	PillDelete        = "pill_delete:"      // pill_delete:<id>
	PillDeleteConfirm = "pill_delete_ok:"   // pill_delete_ok:<id>
)

// Alerts
const (
	AlertsList         = "alerts"
	AlertsPage         = "alerts_page:" // alerts_page:1
	AlertView          = "alert_view:"  // alert_view:<id>
	AlertNew           = "alert_new"
	AlertEdit          = "alert_edit:"      // alert_edit:<id>
	AlertToggle        = "alert_toggle:"    // alert_toggle:<id>
	AlertDelete        = "alert_delete:"    // alert_delete:<id>
	AlertDeleteConfirm = "alert_delete_ok:" // alert_delete_ok:<id>
)

// Редактор alert, работает с черновиком из state
const (
	EditorTimesPerDay = "ed_times:"    // ed_times:3
	EditorSetTime     = "ed_time:"     // ed_time:<slot>
	EditorDeleteTime  = "ed_time_del:" // ed_time_del:<slot>
	EditorDay         = "ed_day:"      // ed_day:Monday
	EditorAllDays     = "ed_days_all"
	EditorPills       = "ed_pills"
	EditorPick        = "ed_pick:"    // ed_pick:<pill id>
	EditorRemovePill  = "ed_pill_rm:" // ed_pill_rm:<pill id>
	EditorActive      = "ed_active"
	EditorShow        = "ed_show"
	EditorSave        = "ed_save"
	EditorCancel      = "ed_cancel"
)
