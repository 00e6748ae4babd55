package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Freeeeeet/pillbot/internal/model"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	return NewClient(srv.URL+"/", 5*time.Second, zap.NewNop())
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

type failingDoer struct{}

func (failingDoer) Do(*http.Request) (*http.Response, error) {
	return nil, errors.New("connection refused")
}

func TestRequestHeaders(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/pills", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"pills":[]}}`)
	})

	pills, err := client.ListPills(context.Background(), "tok")
	require.NoError(t, err)
	assert.Empty(t, pills)
	assert.NotNil(t, pills)
}

func TestErrorUsesBodyMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"status":"fail","message":"Pill name already exists"}`)
	})

	_, err := client.CreatePill(context.Background(), "tok", model.PillFields{Name: "Aspirin", TotalCapsules: 10})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Pill name already exists", err.Error())
}

func TestErrorFallsBackToOperationMessage(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `<html>oops</html>`)
	})

	_, err := client.ListAlerts(context.Background(), "tok")
	assert.EqualError(t, err, "Failed to fetch alerts")

	err = client.DeleteAlert(context.Background(), "tok", "a1")
	assert.EqualError(t, err, "Failed to delete alert")
}

func TestTransportErrorUsesFallback(t *testing.T) {
	t.Parallel()

	client := NewClient("", time.Second, zap.NewNop())
	client.SetHTTPClient(failingDoer{})

	_, err := client.UpdatePill(context.Background(), "tok", "p1", model.PillFields{})

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 0, apiErr.StatusCode)
	assert.Equal(t, "Failed to update pill", apiErr.Message)
	assert.EqualError(t, errors.Unwrap(err), "connection refused")
}

func TestIsUnauthorized(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, `{"message":"Token expired"}`)
	})

	_, err := client.ListPills(context.Background(), "old")
	assert.True(t, IsUnauthorized(err))
	assert.False(t, IsUnauthorized(errors.New("other")))
}

func TestCreateAlertSendsWireFormat(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/v1/alerts", r.URL.Path)

		var body map[string]any
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, []any{"08:00", "20:30"}, body["alertTimes"])
		assert.Equal(t, float64(2), body["timesPerDay"])
		assert.Equal(t, []any{"p1"}, body["pills"])
		assert.Equal(t, []any{"Monday"}, body["daysOfWeek"])

		writeJSON(w, http.StatusCreated, `{"status":"success","data":{"alert":{
			"_id":"a1","daysOfWeek":["Monday"],"timesPerDay":2,
			"alertTimes":["08:00","20:30"],"isActive":true,"user":"u1","pills":["p1"]}}}`)
	})

	saved, err := client.CreateAlert(context.Background(), "tok", model.Alert{
		DaysOfWeek:  []model.Weekday{model.Monday},
		TimesPerDay: 2,
		AlertTimes:  []model.AlertTime{{Hours: 8}, {Hours: 20, Minutes: 30}},
		IsActive:    true,
		Pills:       []model.Pill{{ID: "p1", Name: "Aspirin"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "a1", saved.ID)
	assert.Equal(t, "u1", saved.User)
	assert.Equal(t, []model.AlertTime{{Hours: 8}, {Hours: 20, Minutes: 30}}, saved.AlertTimes)
	assert.Equal(t, []string{"p1"}, saved.PillIDs())
}

func TestUpdateAlertUsesPatchWithID(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPatch, r.Method)
		assert.Equal(t, "/api/v1/alerts/a1", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"alert":{
			"_id":"a1","daysOfWeek":["Friday"],"timesPerDay":1,
			"alertTimes":[{"hours":7,"minutes":0}],"isActive":false,"pills":[]}}}`)
	})

	saved, err := client.UpdateAlert(context.Background(), "tok", "a1", model.Alert{})
	require.NoError(t, err)
	assert.False(t, saved.IsActive)
	assert.Equal(t, []model.Weekday{model.Friday}, saved.DaysOfWeek)
}

func TestListAlertsNormalizes(t *testing.T) {
	t.Parallel()

	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"status":"success","data":{"alerts":[
			{"_id":"a1","daysOfWeek":["monday","MONDAY"],"timesPerDay":1,"alertTimes":["6:05"],"isActive":true,"pills":[{"_id":"p1","name":"Iron"}]}
		]}}`)
	})

	alerts, err := client.ListAlerts(context.Background(), "tok")
	require.NoError(t, err)
	require.Len(t, alerts, 1)

	assert.Equal(t, []model.Weekday{model.Monday}, alerts[0].DaysOfWeek)
	assert.Equal(t, []model.AlertTime{{Hours: 6, Minutes: 5}}, alerts[0].AlertTimes)
	assert.Equal(t, "Iron", alerts[0].Pills[0].Name)
}
