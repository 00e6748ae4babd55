package api

import "errors"

// Error ошибка обращения к API. Message готов к показу пользователю:
// это message из тела ответа или общий текст операции.
type Error struct {
	Op         string
	StatusCode int // 0 для транспортных ошибок
	Message    string
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsUnauthorized true, если сервер отклонил токен
func IsUnauthorized(err error) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.StatusCode == 401
}

// Общие тексты ошибок по операциям
const (
	msgRegister       = "Registration failed"
	msgLogin          = "Login failed"
	msgVerifyOTP      = "Invalid or expired OTP."
	msgVerifyRejected = "OTP verification failed"
	msgResendOTP      = "OTP resend failed"
	msgForgotPassword = "OTP request failed"
	msgResetPassword  = "Password reset failed"
	msgUpdateProfile  = "Profile update failed"
	msgUpdateRejected = "Update rejected by server"

	msgCreatePill = "Failed to create pill"
	msgFetchPills = "Failed to fetch pills"
	msgUpdatePill = "Failed to update pill"
	msgDeletePill = "Failed to delete pill"

	msgCreateAlert = "Failed to create alert"
	msgFetchAlerts = "Failed to fetch alerts"
	msgUpdateAlert = "Failed to update alert"
	msgDeleteAlert = "Failed to delete alert"
)
