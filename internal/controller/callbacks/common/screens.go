package common

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-telegram/bot/models"

	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

// Screen текст сообщения и его клавиатура
type Screen struct {
	Text     string
	Keyboard *models.InlineKeyboardMarkup
}

// MainMenuText список команд для вошедшего пользователя
const MainMenuText = "💊 <b>Main menu</b>\n\n" +
	"/pills - My pills\n" +
	"/addpill - Add a pill\n" +
	"/alerts - My alerts\n" +
	"/newalert - Create an alert\n" +
	"/week - Weekly overview\n" +
	"/export - Export alerts to a calendar\n" +
	"/profile - My profile\n" +
	"/logout - Log out\n" +
	"/help - Help"

// MainMenuScreen главное меню
func MainMenuScreen(user *model.User) Screen {
	text := MainMenuText
	if name := user.DisplayName(); name != "" {
		text = fmt.Sprintf("👋 Hi, %s!\n\n%s", formatting.Escape(name), MainMenuText)
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.Button("💊 Pills", PillsList), keyboard.Button("⏰ Alerts", AlertsList)).
		Row(keyboard.Button("➕ New alert", AlertNew)).
		Build()
	return Screen{Text: text, Keyboard: kb}
}

// LoginPromptScreen экран для пользователя без сессии
func LoginPromptScreen() Screen {
	return Screen{
		Text: "🔒 <b>You are not logged in</b>\n\n" +
			"/login - Log in\n" +
			"/register - Create an account\n" +
			"/forgot - Reset password",
		Keyboard: keyboard.NewBuilder().
			Row(keyboard.Button("🔑 Log in", Login)).
			Build(),
	}
}

// ProfileScreen профиль и кнопки редактирования полей
func ProfileScreen(user *model.User) Screen {
	if user == nil {
		user = &model.User{}
	}
	text := fmt.Sprintf(
		"👤 <b>Profile</b>\n\n"+
			"Username: %s\n"+
			"First name: %s\n"+
			"Last name: %s\n"+
			"Gender: %s\n"+
			"Date of birth: %s\n"+
			"Phone: %s",
		orDash(user.Username),
		orDash(user.FirstName),
		orDash(user.LastName),
		orDash(user.Gender),
		orDash(user.DateOfBirth),
		orDash(user.PhoneNumber),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("First name", EditProfile+ProfileFirstName),
			keyboard.Button("Last name", EditProfile+ProfileLastName),
		).
		Row(
			keyboard.Button("Username", EditProfile+ProfileUsername),
			keyboard.Button("Gender", EditProfile+ProfileGender),
		).
		Row(
			keyboard.Button("Date of birth", EditProfile+ProfileDateOfBirth),
			keyboard.Button("Phone", EditProfile+ProfilePhone),
		).
		Row(keyboard.Button("🚪 Log out", Logout)).
		AddBackToMainButton().
		Build()
	return Screen{Text: text, Keyboard: kb}
}

// Редактируемые поля профиля
const (
	ProfileFirstName   = "firstName"
	ProfileLastName    = "lastName"
	ProfileUsername    = "username"
	ProfileGender      = "gender"
	ProfileDateOfBirth = "dateOfBirth"
	ProfilePhone       = "phoneNumber"
)

// ProfileFieldPrompt подсказка для ввода значения поля профиля
func ProfileFieldPrompt(field string) (string, bool) {
	switch field {
	case ProfileFirstName:
		return "Enter your first name:", true
	case ProfileLastName:
		return "Enter your last name:", true
	case ProfileUsername:
		return "Enter a new username:", true
	case ProfileGender:
		return "Choose your gender:", true
	case ProfileDateOfBirth:
		return "Enter your date of birth (YYYY-MM-DD):", true
	case ProfilePhone:
		return "Enter the new phone number, for example +27821234567.\nA confirmation code will be sent to it.", true
	}
	return "", false
}

// GenderButtons кнопки выбора пола
func GenderButtons(genders []string) []models.InlineKeyboardButton {
	buttons := make([]models.InlineKeyboardButton, len(genders))
	for i, g := range genders {
		buttons[i] = keyboard.Button(g, ChooseGender+g)
	}
	return buttons
}

// LogoutConfirmScreen подтверждение выхода
func LogoutConfirmScreen() Screen {
	return Screen{
		Text:     "🚪 Log out of your account?",
		Keyboard: keyboard.NewBuilder().Row(keyboard.ConfirmCancelRow(LogoutConfirm, ProfileBack)...).Build(),
	}
}

// OTPKeyboard кнопка повторной отправки кода
func OTPKeyboard() *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().Row(keyboard.Button("🔁 Resend code", ResendOTP)).Build()
}

// PillListScreen список pills постранично
func PillListScreen(pills []model.Pill, page int) Screen {
	start, end, current, pages := keyboard.Page(len(pills), page)

	text := "💊 <b>My pills</b>\n\n"
	if len(pills) == 0 {
		text += "You have no pills yet. Add one to use it in alerts."
	} else {
		text += fmt.Sprintf("Total: %d. Tap a pill to view or edit it.", len(pills))
	}

	b := keyboard.NewBuilder()
	for _, p := range pills[start:end] {
		b.Row(keyboard.Button(fmt.Sprintf("💊 %s (%d left)", p.Name, p.TotalCapsules), PillView+p.ID))
	}
	b.AddPagination(PillsPage, current, pages).
		Row(keyboard.Button("➕ Add pill", PillAdd)).
		AddBackToMainButton()

	return Screen{Text: text, Keyboard: b.Build()}
}

// PillViewScreen карточка pill
func PillViewScreen(p model.Pill) Screen {
	text := fmt.Sprintf(
		"💊 <b>%s</b>\n\n"+
			"📦 Total: %s\n"+
			"🥄 Per serving: %s",
		formatting.Escape(p.Name),
		formatting.PluralizeCapsules(p.TotalCapsules),
		formatting.PluralizeCapsules(p.CapsulesPerServing),
	)

	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📝 Name", PillEditName+p.ID),
			keyboard.Button("📦 Total", PillEditTotal+p.ID),
			keyboard.Button("🥄 Serving", PillEditServing+p.ID),
		).
		Row(keyboard.DeleteButton(PillDelete+p.ID)).
		AddBackButton(PillsList).
		Build()
	return Screen{Text: text, Keyboard: kb}
}

// PillDeleteConfirmScreen подтверждение удаления pill
func PillDeleteConfirmScreen(p model.Pill) Screen {
	return Screen{
		Text: fmt.Sprintf("🗑 Delete <b>%s</b>?\n\nAlerts that use it will lose this pill.",
			formatting.Escape(p.Name)),
		Keyboard: keyboard.NewBuilder().
			Row(keyboard.ConfirmCancelRow(PillDeleteConfirm+p.ID, PillView+p.ID)...).
			Build(),
	}
}

// ServingKeyboard кнопки 0-3 капсул за приём; prefix получает число в конце
func ServingKeyboard(prefix string, current int) *models.InlineKeyboardMarkup {
	var buttons []models.InlineKeyboardButton
	for n := model.PillMinCapsulesPerServing; n <= model.PillMaxCapsulesPerServing; n++ {
		label := strconv.Itoa(n)
		if n == current {
			label = "✅ " + label
		}
		buttons = append(buttons, keyboard.Button(label, prefix+strconv.Itoa(n)))
	}
	return keyboard.NewBuilder().Row(buttons...).Build()
}

// AlertListScreen список alerts постранично
func AlertListScreen(alerts []model.Alert, page int) Screen {
	start, end, current, pages := keyboard.Page(len(alerts), page)

	text := "⏰ <b>My alerts</b>\n\n"
	if len(alerts) == 0 {
		text += "You have no alerts yet."
	} else {
		active := 0
		for _, a := range alerts {
			if a.IsActive {
				active++
			}
		}
		text += fmt.Sprintf("%s, %d active.", formatting.PluralizeAlerts(len(alerts)), active)
	}

	b := keyboard.NewBuilder()
	for _, a := range alerts[start:end] {
		b.Row(keyboard.Button(AlertSummary(a), AlertView+a.ID))
	}
	b.AddPagination(AlertsPage, current, pages).
		Row(keyboard.Button("➕ New alert", AlertNew)).
		AddBackToMainButton()

	return Screen{Text: text, Keyboard: b.Build()}
}

// AlertSummary короткое описание alert для кнопки
func AlertSummary(a model.Alert) string {
	icon := "🔔"
	if !a.IsActive {
		icon = "🔕"
	}
	return fmt.Sprintf("%s %s · %s", icon, formatting.FormatAlertTimes(a.AlertTimes), formatting.FormatDays(a.DaysOfWeek))
}

// AlertViewScreen карточка alert; next - ближайший приём, если он есть
func AlertViewScreen(a model.Alert, next time.Time, hasNext bool) Screen {
	var sb strings.Builder
	sb.WriteString("⏰ <b>Alert</b>\n\n")
	writeAlertDetails(&sb, a)
	if hasNext {
		fmt.Fprintf(&sb, "\n⏭ Next: %s", formatting.FormatDateTime(next))
	}

	toggle := "🔕 Pause"
	if !a.IsActive {
		toggle = "🔔 Activate"
	}
	kb := keyboard.NewBuilder().
		Row(keyboard.EditButton(AlertEdit+a.ID), keyboard.Button(toggle, AlertToggle+a.ID)).
		Row(keyboard.DeleteButton(AlertDelete+a.ID)).
		AddBackButton(AlertsList).
		Build()
	return Screen{Text: sb.String(), Keyboard: kb}
}

// AlertDeleteConfirmScreen подтверждение удаления alert
func AlertDeleteConfirmScreen(a model.Alert) Screen {
	return Screen{
		Text: "🗑 Delete this alert?\n\n" + AlertSummary(a),
		Keyboard: keyboard.NewBuilder().
			Row(keyboard.ConfirmCancelRow(AlertDeleteConfirm+a.ID, AlertView+a.ID)...).
			Build(),
	}
}

// AlertEditorScreen редактор черновика
func AlertEditorScreen(d *schedule.Draft) Screen {
	a := d.Working()

	var sb strings.Builder
	if d.IsNew() {
		sb.WriteString("🆕 <b>New alert</b>\n\n")
	} else {
		sb.WriteString("✏️ <b>Editing alert</b>\n\n")
	}
	writeAlertDetails(&sb, a)
	if d.Phase() == schedule.PhaseFailed && d.Err() != nil {
		fmt.Fprintf(&sb, "\n\n%s", formatting.Escape(ErrorMessage(d.Err())))
	}

	b := keyboard.NewBuilder()

	// Сколько раз в день
	var perDay []models.InlineKeyboardButton
	for n := 1; n <= schedule.MaxTimesPerDay; n++ {
		label := strconv.Itoa(n) + "×"
		if n == a.TimesPerDay {
			label = "✅ " + label
		}
		perDay = append(perDay, keyboard.Button(label, EditorTimesPerDay+strconv.Itoa(n)))
	}
	b.Row(perDay...)

	for i, t := range a.AlertTimes {
		slot := strconv.Itoa(i)
		b.Row(
			keyboard.Button(fmt.Sprintf("🕐 #%d %s", i+1, formatting.FormatAlertTime(t)), EditorSetTime+slot),
			keyboard.Button("🗑", EditorDeleteTime+slot),
		)
	}

	// Дни недели
	days := make([]models.InlineKeyboardButton, 0, len(model.Weekdays))
	for _, day := range model.Weekdays {
		label := formatting.WeekdayShortName(day)
		if a.HasDay(day) {
			label = "✅ " + label
		}
		days = append(days, keyboard.Button(label, EditorDay+string(day)))
	}
	b.Grid(days, 4)
	allDays := "📅 All week"
	if schedule.AllDaysSelected(a) {
		allDays = "🧹 Remove all"
	}
	b.Row(keyboard.Button(allDays, EditorAllDays))

	// Pills
	for _, p := range a.Pills {
		b.Row(keyboard.Button("❌ "+p.Name, EditorRemovePill+p.ID))
	}
	b.Row(keyboard.Button("💊 Choose pills", EditorPills))

	active := "🔔 Active"
	if !a.IsActive {
		active = "🔕 Inactive"
	}
	b.Row(keyboard.Button(active, EditorActive))
	b.Row(keyboard.Button("💾 Save", EditorSave), keyboard.CancelButton(EditorCancel))

	return Screen{Text: sb.String(), Keyboard: b.Build()}
}

// PillPickerScreen выбор нескольких pills из каталога
func PillPickerScreen(a model.Alert, catalog []model.Pill) Screen {
	text := "💊 <b>Choose pills</b>\n\nTap to select or unselect, then press Done."
	if len(catalog) == 0 {
		text = "💊 You have no pills yet.\n\nAdd one with /addpill first."
	}

	b := keyboard.NewBuilder()
	for _, p := range catalog {
		label := "⬜ " + p.Name
		if hasPill(a, p.ID) {
			label = "☑️ " + p.Name
		}
		b.Row(keyboard.Button(label, EditorPick+p.ID))
	}
	b.Row(keyboard.Button("✅ Done", EditorShow))

	return Screen{Text: text, Keyboard: b.Build()}
}

// TimeInputPrompt просит ввести время слота
func TimeInputPrompt(slot int, current model.AlertTime) string {
	return fmt.Sprintf("🕐 Enter time #%d as HH:MM (now %s).\n\nUse /cancel to stop editing.",
		slot+1, formatting.FormatAlertTime(current))
}

func writeAlertDetails(sb *strings.Builder, a model.Alert) {
	fmt.Fprintf(sb, "📅 Days: %s\n", formatting.FormatDays(a.DaysOfWeek))
	if a.TimesPerDay == 0 {
		sb.WriteString("🔁 Times per day: not chosen\n")
	} else {
		fmt.Fprintf(sb, "🔁 Times per day: %d\n", a.TimesPerDay)
	}
	fmt.Fprintf(sb, "🕐 Times: %s\n", formatting.FormatAlertTimes(a.AlertTimes))

	names := make([]string, 0, len(a.Pills))
	for _, p := range a.Pills {
		names = append(names, formatting.Escape(p.Name))
	}
	pills := "none"
	if len(names) > 0 {
		pills = strings.Join(names, ", ")
	}
	fmt.Fprintf(sb, "💊 Pills: %s\n", pills)

	status := "🔔 active"
	if !a.IsActive {
		status = "🔕 paused"
	}
	fmt.Fprintf(sb, "Status: %s", status)
}

func hasPill(a model.Alert, id string) bool {
	for _, p := range a.Pills {
		if p.ID == id {
			return true
		}
	}
	return false
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return formatting.Escape(s)
}
