package service

import (
	"regexp"
	"strings"
	"time"

	"github.com/Freeeeeet/pillbot/internal/api"
	"github.com/Freeeeeet/pillbot/internal/model"
)

// DateOfBirthLayout формат даты рождения во вводе и в API
const DateOfBirthLayout = "2006-01-02"

// Минимальная длина пароля при регистрации и при сбросе
const (
	SignupPasswordMinLength = 8
	ResetPasswordMinLength  = 6
)

var (
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
	otpPattern   = regexp.MustCompile(`^\d{6}$`)

	// Genders допустимые значения пола
	Genders = []string{"Male", "Female", "Other"}
)

func validatePhone(phone string) error {
	if strings.TrimSpace(phone) == "" {
		return invalid("phoneNumber", "Phone number is required")
	}
	if !phonePattern.MatchString(phone) {
		return invalid("phoneNumber", "Invalid phone number format")
	}
	return nil
}

func validateOTP(otp string) error {
	if otp == "" {
		return invalid("otp", "OTP is required")
	}
	if !otpPattern.MatchString(otp) {
		return invalid("otp", "OTP must be 6 digits")
	}
	return nil
}

func validateGender(gender string) error {
	for _, g := range Genders {
		if g == gender {
			return nil
		}
	}
	return invalid("gender", "Invalid gender selection")
}

func validateDateOfBirth(value string, now time.Time) error {
	dob, err := time.Parse(DateOfBirthLayout, value)
	if err != nil {
		return invalid("dateOfBirth", "Date of birth must be in YYYY-MM-DD format")
	}
	if dob.After(now) {
		return invalid("dateOfBirth", "Date of birth cannot be in the future")
	}
	return nil
}

// ValidateSignup проверяет данные регистрации в порядке полей формы
func ValidateSignup(req api.SignupRequest, now time.Time) error {
	switch {
	case strings.TrimSpace(req.FirstName) == "":
		return invalid("firstName", "First name is required")
	case strings.TrimSpace(req.LastName) == "":
		return invalid("lastName", "Last name is required")
	case strings.TrimSpace(req.Username) == "":
		return invalid("username", "Username is required")
	case req.Password == "":
		return invalid("password", "Password is required")
	case len(req.Password) < SignupPasswordMinLength:
		return invalid("password", "Password must be at least 8 characters long")
	case req.Gender == "":
		return invalid("gender", "Gender is required")
	}
	if err := validateGender(req.Gender); err != nil {
		return err
	}
	if req.DateOfBirth == "" {
		return invalid("dateOfBirth", "Date of birth is required")
	}
	if err := validateDateOfBirth(req.DateOfBirth, now); err != nil {
		return err
	}
	return validatePhone(req.PhoneNumber)
}

// ValidateProfileUpdate проверяет только заполненные поля
func ValidateProfileUpdate(update api.ProfileUpdate, now time.Time) error {
	if update.Gender != "" {
		if err := validateGender(update.Gender); err != nil {
			return err
		}
	}
	if update.DateOfBirth != "" {
		if err := validateDateOfBirth(update.DateOfBirth, now); err != nil {
			return err
		}
	}
	if update.PhoneNumber != "" {
		if err := validatePhone(update.PhoneNumber); err != nil {
			return err
		}
	}
	if update == (api.ProfileUpdate{}) {
		return invalid("profile", "No profile data provided")
	}
	return nil
}

// ValidateNewPassword проверяет пароль при сбросе
func ValidateNewPassword(password string) error {
	if password == "" {
		return invalid("newPassword", "New password is required")
	}
	if len(password) < ResetPasswordMinLength {
		return invalid("newPassword", "Password must be at least 6 characters")
	}
	return nil
}

// ValidatePillFields проверяет поля pill перед отправкой
func ValidatePillFields(f model.PillFields) error {
	if strings.TrimSpace(f.Name) == "" {
		return invalid("name", "Pill name is required")
	}
	if f.TotalCapsules < model.PillMinTotalCapsules {
		return invalid("totalCapsules", "Total capsules must be at least 1")
	}
	if f.CapsulesPerServing < model.PillMinCapsulesPerServing || f.CapsulesPerServing > model.PillMaxCapsulesPerServing {
		return invalid("capsulesPerServing", "Capsules per serving must be between 0 and 3")
	}
	return nil
}
