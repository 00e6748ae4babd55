package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "jane", body["userName"])
		assert.Equal(t, "secret123", body["password"])

		writeJSON(w, http.StatusOK, `{"status":"success","token":"tok","data":{"user":{"_id":"u1","username":"jane","firstName":"Jane"}}}`)
	})

	res, err := client.Login(context.Background(), "jane", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "tok", res.Token)
	assert.Equal(t, "u1", res.User.ID)
	assert.Equal(t, "Jane", res.User.DisplayName())
}

func TestLoginWithoutTokenFails(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"user":{"_id":"u1"}}}`)
	})

	_, err := client.Login(context.Background(), "jane", "secret123")
	assert.EqualError(t, err, "Login failed")
}

func TestVerifyOTP(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, OTPPurposePhoneVerification, body["otpPurpose"])

		if body["otp"] != "123456" {
			writeJSON(w, http.StatusBadRequest, `{}`)
			return
		}
		writeJSON(w, http.StatusOK, `{"status":"success","token":"tok","data":{"user":{"_id":"u1"}}}`)
	})

	res, err := client.VerifyOTP(context.Background(), "+2348012345678", "123456", OTPPurposePhoneVerification)
	require.NoError(t, err)
	assert.Equal(t, "tok", res.Token)
	require.NotNil(t, res.User)

	_, err = client.VerifyOTP(context.Background(), "+2348012345678", "000000", OTPPurposePhoneVerification)
	assert.EqualError(t, err, "Invalid or expired OTP.")
}

func TestVerifyOTPRejectedStatus(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"fail"}`)
	})

	_, err := client.VerifyOTP(context.Background(), "+2348012345678", "123456", OTPPurposeResetPassword)
	assert.EqualError(t, err, "OTP verification failed")
}

func TestUpdateMe(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)

		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

		if body["phoneNumber"] != "" {
			writeJSON(w, http.StatusAccepted, `{"status":"pending","message":"OTP sent to new number"}`)
			return
		}
		assert.NotContains(t, body, "gender")
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"user":{"_id":"u1","firstName":"Janet"}}}`)
	})

	res, err := client.UpdateMe(context.Background(), "tok", ProfileUpdate{FirstName: "Janet"})
	require.NoError(t, err)
	assert.False(t, res.Pending)
	assert.Equal(t, "Janet", res.User.FirstName)

	res, err = client.UpdateMe(context.Background(), "tok", ProfileUpdate{PhoneNumber: "+2348012345678"})
	require.NoError(t, err)
	assert.True(t, res.Pending)
	assert.Equal(t, "OTP sent to new number", res.Message)
	assert.Nil(t, res.User)
}

func TestAuthFallbackMessages(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadGateway, ``)
	})
	ctx := context.Background()

	_, err := client.Signup(ctx, SignupRequest{})
	assert.EqualError(t, err, "Registration failed")

	_, err = client.ResendOTP(ctx, "+2348012345678")
	assert.EqualError(t, err, "OTP resend failed")

	_, err = client.ForgotPassword(ctx, "+2348012345678")
	assert.EqualError(t, err, "OTP request failed")

	_, err = client.ResetPassword(ctx, "+2348012345678", "123456", "newpass")
	assert.EqualError(t, err, "Password reset failed")

	_, err = client.UpdateMe(ctx, "tok", ProfileUpdate{})
	assert.EqualError(t, err, "Profile update failed")
}
