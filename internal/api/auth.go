package api

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/pillbot/internal/model"
)

// OTP назначение кода
const (
	OTPPurposePhoneVerification = "phoneVerification"
	OTPPurposeResetPassword     = "resetPassword"
)

// SignupRequest данные регистрации
type SignupRequest struct {
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"dateOfBirth"`
	PhoneNumber string `json:"phoneNumber"`
}

// ProfileUpdate изменяемые поля профиля; пустые поля не отправляются
type ProfileUpdate struct {
	FirstName   string `json:"firstName,omitempty"`
	LastName    string `json:"lastName,omitempty"`
	Username    string `json:"username,omitempty"`
	Gender      string `json:"gender,omitempty"`
	DateOfBirth string `json:"dateOfBirth,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
}

// AuthResult результат входа или подтверждения OTP
type AuthResult struct {
	Token   string
	User    *model.User
	Message string
}

// ProfileResult результат обновления профиля.
// Pending означает, что на новый номер отправлен OTP и изменения ждут подтверждения.
type ProfileResult struct {
	Pending bool
	Message string
	User    *model.User
}

type userData struct {
	User *model.User `json:"user"`
}

// Signup регистрирует пользователя; после этого нужно подтвердить телефон через OTP
func (c *Client) Signup(ctx context.Context, req SignupRequest) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "api/v1/auth/signup", "", req, msgRegister)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// Login возвращает токен и профиль
func (c *Client) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	const path = "api/v1/auth/login"

	body := map[string]string{
		"userName": username,
		"password": password,
	}
	resp, err := c.do(ctx, http.MethodPost, path, "", body, msgLogin)
	if err != nil {
		return nil, err
	}

	var data userData
	if err := decodeData(resp, &data, path, msgLogin); err != nil {
		return nil, err
	}
	if resp.Token == "" || data.User == nil {
		return nil, &Error{Op: path, StatusCode: resp.statusCode, Message: msgLogin}
	}

	return &AuthResult{Token: resp.Token, User: data.User, Message: resp.Message}, nil
}

// VerifyOTP подтверждает код. Токен и профиль приходят не для всех назначений.
func (c *Client) VerifyOTP(ctx context.Context, phone, otp, purpose string) (*AuthResult, error) {
	const path = "api/v1/auth/verify-otp"

	body := map[string]string{
		"phoneNumber": phone,
		"otp":         otp,
		"otpPurpose":  purpose,
	}
	resp, err := c.do(ctx, http.MethodPost, path, "", body, msgVerifyOTP)
	if err != nil {
		return nil, err
	}

	if resp.Status != "success" {
		msg := resp.Message
		if msg == "" {
			msg = msgVerifyRejected
		}
		return nil, &Error{Op: path, StatusCode: resp.statusCode, Message: msg}
	}

	result := &AuthResult{Token: resp.Token, Message: resp.Message}
	if len(resp.Data) > 0 {
		var data userData
		if err := decodeData(resp, &data, path, msgVerifyOTP); err != nil {
			return nil, err
		}
		result.User = data.User
	}
	return result, nil
}

// ResendOTP повторно отправляет код
func (c *Client) ResendOTP(ctx context.Context, phone string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "api/v1/auth/resend-otp", "", map[string]string{"phoneNumber": phone}, msgResendOTP)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ForgotPassword запрашивает OTP для сброса пароля
func (c *Client) ForgotPassword(ctx context.Context, phone string) (string, error) {
	resp, err := c.do(ctx, http.MethodPost, "api/v1/auth/forgotPassword", "", map[string]string{"phoneNumber": phone}, msgForgotPassword)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// ResetPassword устанавливает новый пароль по OTP
func (c *Client) ResetPassword(ctx context.Context, phone, otp, newPassword string) (string, error) {
	body := map[string]string{
		"phoneNumber": phone,
		"otp":         otp,
		"newPassword": newPassword,
	}
	resp, err := c.do(ctx, http.MethodPost, "api/v1/auth/resetPassword", "", body, msgResetPassword)
	if err != nil {
		return "", err
	}
	return resp.Message, nil
}

// UpdateMe обновляет профиль. 202 означает ожидание подтверждения нового номера.
func (c *Client) UpdateMe(ctx context.Context, token string, update ProfileUpdate) (*ProfileResult, error) {
	const path = "api/v1/users/updateMe"

	resp, err := c.do(ctx, http.MethodPatch, path, token, update, msgUpdateProfile)
	if err != nil {
		return nil, err
	}

	if resp.statusCode == http.StatusAccepted {
		result := &ProfileResult{Pending: true, Message: resp.Message}
		var data userData
		if len(resp.Data) > 0 && decodeData(resp, &data, path, msgUpdateProfile) == nil {
			result.User = data.User
		}
		return result, nil
	}

	if resp.Status != "success" {
		msg := resp.Message
		if msg == "" {
			msg = msgUpdateRejected
		}
		return nil, &Error{Op: path, StatusCode: resp.statusCode, Message: msg}
	}

	var data userData
	if err := decodeData(resp, &data, path, msgUpdateProfile); err != nil {
		return nil, err
	}
	if data.User == nil {
		return nil, &Error{Op: path, StatusCode: resp.statusCode, Message: msgUpdateProfile}
	}
	return &ProfileResult{Message: resp.Message, User: data.User}, nil
}
