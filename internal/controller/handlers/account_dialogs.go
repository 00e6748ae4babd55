package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/account"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/pillbot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/pillbot/internal/controller/state"
	"github.com/Freeeeeet/pillbot/internal/service"
)

// signup возвращает накопленные данные регистрации
func (h *Handlers) signup(telegramID int64) api.SignupRequest {
	value, _ := h.stateManager.GetData(telegramID, state.KeySignup)
	req, _ := value.(api.SignupRequest)
	return req
}

// nextSignupStep сохраняет данные и переходит к следующему шагу регистрации
func (h *Handlers) nextSignupStep(ctx context.Context, b *bot.Bot, update *models.Update,
	req api.SignupRequest, next state.UserState, screen common.Screen) {
	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeySignup, req)
	h.stateManager.SetState(telegramID, next)
	h.sendScreen(ctx, b, update.Message.Chat.ID, screen)
}

// validName проверяет имя и фамилию, отправляя ошибку пользователю
func (h *Handlers) validName(ctx context.Context, b *bot.Bot, update *models.Update, name, what string) bool {
	if name == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, fmt.Sprintf("❌ %s is required. Try again:", what))
		return false
	}
	if tooLong(name, NameMaxLength) {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ %s is too long. Maximum %d characters.\n\nTry again:", what, NameMaxLength))
		return false
	}
	return true
}

func (h *Handlers) handleRegisterFirstName(ctx context.Context, b *bot.Bot, update *models.Update) {
	name := messageText(update)
	if !h.validName(ctx, b, update, name, "First name") {
		return
	}

	req := h.signup(update.Message.From.ID)
	req.FirstName = name
	h.nextSignupStep(ctx, b, update, req, state.StateRegisterLastName,
		common.Screen{Text: "Step 2 of 7: enter your last name."})
}

func (h *Handlers) handleRegisterLastName(ctx context.Context, b *bot.Bot, update *models.Update) {
	name := messageText(update)
	if !h.validName(ctx, b, update, name, "Last name") {
		return
	}

	req := h.signup(update.Message.From.ID)
	req.LastName = name
	h.nextSignupStep(ctx, b, update, req, state.StateRegisterUsername,
		common.Screen{Text: fmt.Sprintf("Step 3 of 7: choose a username (%d-%d characters).",
			UsernameMinLength, UsernameMaxLength)})
}

func (h *Handlers) handleRegisterUsername(ctx context.Context, b *bot.Bot, update *models.Update) {
	username := messageText(update)
	if !validUsername(username) {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Username must be %d-%d characters without spaces.\n\nTry again:",
				UsernameMinLength, UsernameMaxLength))
		return
	}

	req := h.signup(update.Message.From.ID)
	req.Username = username
	h.nextSignupStep(ctx, b, update, req, state.StateRegisterPassword,
		common.Screen{Text: fmt.Sprintf("Step 4 of 7: choose a password (at least %d characters).\n"+
			"The message will be deleted from the chat.", service.SignupPasswordMinLength)})
}

func (h *Handlers) handleRegisterPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	password := update.Message.Text
	h.deleteSecret(ctx, b, update)

	if len(password) < service.SignupPasswordMinLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Password must be at least %d characters.\n\nTry again:", service.SignupPasswordMinLength))
		return
	}

	req := h.signup(update.Message.From.ID)
	req.Password = password
	h.nextSignupStep(ctx, b, update, req, state.StateRegisterGender, common.Screen{
		Text:     "🔒 Password saved.\n\nStep 5 of 7: choose your gender.",
		Keyboard: keyboard.NewBuilder().Grid(common.GenderButtons(service.Genders), 3).Build(),
	})
}

// handleRegisterGender принимает пол текстом, если пользователь не нажал кнопку
func (h *Handlers) handleRegisterGender(ctx context.Context, b *bot.Bot, update *models.Update) {
	gender, ok := matchGender(messageText(update))
	if !ok {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Choose one of: "+strings.Join(service.Genders, ", "))
		return
	}

	req := h.signup(update.Message.From.ID)
	req.Gender = gender
	h.nextSignupStep(ctx, b, update, req, state.StateRegisterDateOfBirth,
		common.Screen{Text: "Step 6 of 7: enter your date of birth (YYYY-MM-DD)."})
}

func (h *Handlers) handleRegisterDateOfBirth(ctx context.Context, b *bot.Bot, update *models.Update) {
	value := messageText(update)
	dob, err := time.Parse(service.DateOfBirthLayout, value)
	if err != nil || dob.After(h.deps.Clock()) {
		h.sendError(ctx, b, update.Message.Chat.ID,
			"❌ Enter a past date as YYYY-MM-DD, for example 1990-04-23:")
		return
	}

	req := h.signup(update.Message.From.ID)
	req.DateOfBirth = value
	h.nextSignupStep(ctx, b, update, req, state.StateRegisterPhone,
		common.Screen{Text: "Step 7 of 7: enter your phone number, for example +27821234567."})
}

// handleRegisterPhone завершает регистрацию и ждёт код подтверждения
func (h *Handlers) handleRegisterPhone(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	req := h.signup(telegramID)
	req.PhoneNumber = messageText(update)

	if err := service.ValidateSignup(req, h.deps.Clock()); err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\nTry again or /cancel:")
		return
	}

	msg, err := h.auth.Register(ctx, req)
	if err != nil {
		h.handleError(ctx, b, update, err, "register")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.awaitOTP(telegramID, req.PhoneNumber, api.OTPPurposePhoneVerification)

	h.logger.Info("Registration submitted", zap.Int64("telegram_id", telegramID))
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
		Text:     "📨 " + orDefault(msg, "Account created.") + "\n\n" + account.VerifyOTPPrompt,
		Keyboard: common.OTPKeyboard(),
	})
}

// awaitOTP переводит диалог в ожидание кода для номера
func (h *Handlers) awaitOTP(telegramID int64, phone, purpose string) {
	h.stateManager.SetData(telegramID, state.KeyPhone, phone)
	h.stateManager.SetData(telegramID, state.KeyPurpose, purpose)
	h.stateManager.SetState(telegramID, state.StateVerifyOTP)
}

func (h *Handlers) handleVerifyOTP(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	phone := h.stateManager.GetString(telegramID, state.KeyPhone)
	purpose := h.stateManager.GetString(telegramID, state.KeyPurpose)

	res, err := h.auth.VerifyOTP(ctx, telegramID, phone, messageText(update), purpose)
	if err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
				Text:     escapeHTML(common.ErrorMessage(err)),
				Keyboard: common.OTPKeyboard(),
			})
			return
		}
		h.handleError(ctx, b, update, err, "verify otp")
		return
	}
	h.stateManager.ClearState(telegramID)

	if res.Token != "" && res.User != nil {
		h.sendScreen(ctx, b, update.Message.Chat.ID, common.MainMenuScreen(res.User))
		return
	}
	if session, err := h.auth.RequireSession(ctx, telegramID); err == nil {
		h.sendScreen(ctx, b, update.Message.Chat.ID, common.ProfileScreen(session.User))
		return
	}
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
		Text:     "✅ " + orDefault(res.Message, "Phone number verified.") + "\n\nYou can log in now.",
		Keyboard: common.LoginPromptScreen().Keyboard,
	})
}

func (h *Handlers) handleLoginUsername(ctx context.Context, b *bot.Bot, update *models.Update) {
	username := messageText(update)
	if username == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Username is required. Try again:")
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyUsername, username)
	h.stateManager.SetState(telegramID, state.StateLoginPassword)
	h.sendMessage(ctx, b, update.Message.Chat.ID, account.LoginPasswordPrompt)
}

func (h *Handlers) handleLoginPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	password := update.Message.Text
	h.deleteSecret(ctx, b, update)

	username := h.stateManager.GetString(telegramID, state.KeyUsername)
	session, err := h.auth.Login(ctx, telegramID, username, password)
	if err != nil {
		// Неверный пароль: начинаем вход заново
		account.StartLogin(h.stateManager, telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\nEnter your username again:")
		return
	}

	h.stateManager.ClearState(telegramID)
	h.pills.Forget(telegramID)
	h.alerts.Forget(telegramID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.MainMenuScreen(session.User))
}

func (h *Handlers) handleForgotPhone(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	phone := messageText(update)

	msg, err := h.auth.ForgotPassword(ctx, phone)
	if err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\nTry again or /cancel:")
		return
	}

	h.stateManager.SetData(telegramID, state.KeyPhone, phone)
	h.stateManager.SetState(telegramID, state.StateResetOTP)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
		Text:     "📨 " + orDefault(msg, "Code sent.") + "\n\n" + account.ResetOTPPrompt,
		Keyboard: common.OTPKeyboard(),
	})
}

func (h *Handlers) handleResetOTP(ctx context.Context, b *bot.Bot, update *models.Update) {
	otp := messageText(update)
	if !isOTP(otp) {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ The code has 6 digits. Try again:")
		return
	}

	telegramID := update.Message.From.ID
	h.stateManager.SetData(telegramID, state.KeyOTP, otp)
	h.stateManager.SetState(telegramID, state.StateResetPassword)
	h.sendMessage(ctx, b, update.Message.Chat.ID, account.ResetPasswordPrompt)
}

func (h *Handlers) handleResetPassword(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	password := update.Message.Text
	h.deleteSecret(ctx, b, update)

	if err := service.ValidateNewPassword(password); err != nil {
		h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\nTry again:")
		return
	}

	phone := h.stateManager.GetString(telegramID, state.KeyPhone)
	otp := h.stateManager.GetString(telegramID, state.KeyOTP)
	msg, err := h.auth.ResetPassword(ctx, phone, otp, password)
	if err != nil {
		// Код мог оказаться неверным: просим его снова
		h.stateManager.DeleteData(telegramID, state.KeyOTP)
		h.stateManager.SetState(telegramID, state.StateResetOTP)
		h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
			Text:     escapeHTML(common.ErrorMessage(err)) + "\n\n" + account.ResetOTPPrompt,
			Keyboard: common.OTPKeyboard(),
		})
		return
	}

	h.stateManager.ClearState(telegramID)
	h.logger.Info("Password reset", zap.Int64("telegram_id", telegramID))
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
		Text:     "✅ " + orDefault(msg, "Password changed.") + "\n\nYou can log in with the new password.",
		Keyboard: common.LoginPromptScreen().Keyboard,
	})
}

// handleProfileField сохраняет новое значение выбранного поля профиля
func (h *Handlers) handleProfileField(ctx context.Context, b *bot.Bot, update *models.Update) {
	telegramID := update.Message.From.ID
	field := h.stateManager.GetString(telegramID, state.KeyField)
	value := messageText(update)

	var upd api.ProfileUpdate
	switch field {
	case common.ProfileFirstName:
		upd.FirstName = value
	case common.ProfileLastName:
		upd.LastName = value
	case common.ProfileUsername:
		if !validUsername(value) {
			h.sendError(ctx, b, update.Message.Chat.ID,
				fmt.Sprintf("❌ Username must be %d-%d characters without spaces.\n\nTry again:",
					UsernameMinLength, UsernameMaxLength))
			return
		}
		upd.Username = value
	case common.ProfileGender:
		gender, ok := matchGender(value)
		if !ok {
			h.sendError(ctx, b, update.Message.Chat.ID, "❌ Choose one of: "+strings.Join(service.Genders, ", "))
			return
		}
		upd.Gender = gender
	case common.ProfileDateOfBirth:
		upd.DateOfBirth = value
	case common.ProfilePhone:
		upd.PhoneNumber = value
	default:
		h.stateManager.ClearState(telegramID)
		h.sendError(ctx, b, update.Message.Chat.ID, "⚠️ Choose a field in /profile first")
		return
	}

	if value == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ The value is empty. Try again:")
		return
	}

	res, err := h.auth.UpdateProfile(ctx, telegramID, upd)
	if err != nil {
		var validation *service.ValidationError
		if errors.As(err, &validation) {
			h.sendError(ctx, b, update.Message.Chat.ID, common.ErrorMessage(err)+"\n\nTry again or /cancel:")
			return
		}
		h.handleError(ctx, b, update, err, "update profile")
		return
	}

	if res.Pending {
		h.stateManager.ClearState(telegramID)
		h.awaitOTP(telegramID, upd.PhoneNumber, api.OTPPurposePhoneVerification)
		h.sendScreen(ctx, b, update.Message.Chat.ID, common.Screen{
			Text:     "📨 " + orDefault(res.Message, "Code sent to the new number.") + "\n\n" + account.VerifyOTPPrompt,
			Keyboard: common.OTPKeyboard(),
		})
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendScreen(ctx, b, update.Message.Chat.ID, common.ProfileScreen(res.User))
}
