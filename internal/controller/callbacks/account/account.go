package account

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/service"
)

// Подсказки шагов диалогов
const (
	LoginUsernamePrompt = "🔑 <b>Log in</b>\n\nEnter your username:\n\nUse /cancel to stop."
	LoginPasswordPrompt = "Enter your password:"
	ForgotPhonePrompt   = "🔁 <b>Reset password</b>\n\nEnter the phone number of your account, for example +27821234567:"
	ResetOTPPrompt      = "Enter the 6-digit code we sent to your phone:"
	ResetPasswordPrompt = "Enter a new password (at least 6 characters):"
	RegisterStartPrompt = "📝 <b>Create an account</b>\n\nStep 1 of 7: enter your first name.\n\nUse /cancel to stop."
	VerifyOTPPrompt     = "Enter the 6-digit code we sent to your phone:"
)

// StartLogin начинает диалог входа
func StartLogin(sm *state.Manager, telegramID int64) {
	sm.ClearState(telegramID)
	sm.SetState(telegramID, state.StateLoginUsername)
}

// StartForgot начинает сброс пароля
func StartForgot(sm *state.Manager, telegramID int64) {
	sm.ClearState(telegramID)
	sm.SetState(telegramID, state.StateForgotPhone)
}

// StartRegister начинает регистрацию
func StartRegister(sm *state.Manager, telegramID int64) {
	sm.ClearState(telegramID)
	sm.SetData(telegramID, state.KeySignup, api.SignupRequest{})
	sm.SetState(telegramID, state.StateRegisterFirstName)
}

// ForgetUser сбрасывает локальные данные пользователя после выхода
func ForgetUser(h *callbacktypes.Handler, telegramID int64) {
	if draft, ok := h.StateManager.Draft(telegramID); ok {
		draft.Cancel()
	}
	h.StateManager.ClearState(telegramID)
	h.Pills.Forget(telegramID)
	h.Alerts.Forget(telegramID)
}

// HandleLogin начинает вход с экрана приглашения
func HandleLogin(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	StartLogin(h.StateManager, hc.TelegramID)
	hc.Show(common.Screen{
		Text:     LoginUsernamePrompt,
		Keyboard: keyboard.NewBuilder().Row(keyboard.Button("🔁 Forgot password", common.ForgotPassword)).Build(),
	})
	hc.Answer("")
}

// HandleForgot начинает сброс пароля с экрана входа
func HandleForgot(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	StartForgot(h.StateManager, hc.TelegramID)
	hc.Show(common.Screen{Text: ForgotPhonePrompt})
	hc.Answer("")
}

// HandleResendOTP отправляет код повторно на номер из текущего диалога
func HandleResendOTP(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	phone := h.StateManager.GetString(hc.TelegramID, state.KeyPhone)
	if phone == "" {
		hc.AnswerAlert("⚠️ Nothing to resend. Start again with /register or /forgot")
		return
	}

	msg, err := h.Auth.ResendOTP(ctx, phone)
	if err != nil {
		common.HandleError(hc, err, "resend otp")
		return
	}
	h.StateManager.Touch(hc.TelegramID)
	if msg == "" {
		msg = "Code sent"
	}
	hc.AnswerAlert("📨 " + msg)
}

// HandleProfile показывает профиль
func HandleProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.Show(common.ProfileScreen(hc.Session.User))
		hc.Answer("")
	})
}

// HandleEditProfile просит новое значение поля профиля
func HandleEditProfile(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		field, err := common.ParseArg(callback.Data, common.EditProfile)
		if err != nil {
			common.HandleError(hc, err, "parse profile field")
			return
		}
		prompt, ok := common.ProfileFieldPrompt(field)
		if !ok {
			common.HandleError(hc, common.ErrInvalidFormat, "parse profile field")
			return
		}

		hc.ClearState()
		hc.SetData(state.KeyField, field)
		hc.SetState(state.StateProfileField)

		kb := keyboard.NewBuilder()
		if field == common.ProfileGender {
			kb.Grid(common.GenderButtons(service.Genders), 3)
		}
		kb.AddBackButton(common.ProfileBack)
		hc.Show(common.Screen{Text: prompt + "\n\nUse /cancel to stop.", Keyboard: kb.Build()})
		hc.Answer("")
	})
}

// HandleGender принимает выбор пола в регистрации или в профиле
func HandleGender(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	gender, err := common.ParseArg(callback.Data, common.ChooseGender)
	if err != nil {
		common.HandleError(hc, err, "parse gender")
		return
	}

	switch h.StateManager.GetState(hc.TelegramID) {
	case state.StateRegisterGender:
		value, _ := hc.GetData(state.KeySignup)
		req, _ := value.(api.SignupRequest)
		req.Gender = gender
		hc.SetData(state.KeySignup, req)
		hc.SetState(state.StateRegisterDateOfBirth)
		hc.Show(common.Screen{Text: "✅ Gender: " + gender + "\n\nStep 6 of 7: enter your date of birth (YYYY-MM-DD):"})
		hc.Answer("")

	case state.StateProfileField:
		if h.StateManager.GetString(hc.TelegramID, state.KeyField) != common.ProfileGender {
			hc.AnswerAlert("⚠️ Choose a field in /profile first")
			return
		}
		res, err := h.Auth.UpdateProfile(ctx, hc.TelegramID, api.ProfileUpdate{Gender: gender})
		if err != nil {
			common.HandleError(hc, err, "update gender")
			return
		}
		hc.ClearState()
		hc.Show(common.ProfileScreen(res.User))
		hc.Answer("✅ Profile updated")

	default:
		hc.AnswerAlert("⚠️ This choice has expired")
	}
}

// HandleLogout спрашивает подтверждение выхода
func HandleLogout(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithSession(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.Show(common.LogoutConfirmScreen())
		hc.Answer("")
	})
}

// HandleLogoutConfirm удаляет сессию и локальные данные
func HandleLogoutConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	if err := h.Auth.Logout(ctx, hc.TelegramID); err != nil {
		common.HandleError(hc, err, "logout")
		return
	}
	ForgetUser(h, hc.TelegramID)

	h.Logger.Info("Logged out via bot", zap.Int64("telegram_id", hc.TelegramID))
	hc.Show(common.LoginPromptScreen())
	hc.Answer("👋 Logged out")
}
