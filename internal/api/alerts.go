package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/Freeeeeet/pillbot/internal/model"
	"github.com/Freeeeeet/pillbot/internal/schedule"
)

type alertData struct {
	Alert schedule.WireAlert `json:"alert"`
}

type alertsData struct {
	Alerts []schedule.WireAlert `json:"alerts"`
}

// ListAlerts возвращает alerts пользователя в нормализованном виде
func (c *Client) ListAlerts(ctx context.Context, token string) ([]model.Alert, error) {
	const path = "api/v1/alerts"

	resp, err := c.do(ctx, http.MethodGet, path, token, nil, msgFetchAlerts)
	if err != nil {
		return nil, err
	}

	var data alertsData
	if err := decodeData(resp, &data, path, msgFetchAlerts); err != nil {
		return nil, err
	}

	alerts := make([]model.Alert, 0, len(data.Alerts))
	for _, w := range data.Alerts {
		a, err := schedule.Inbound(w)
		if err != nil {
			return nil, &Error{Op: path, StatusCode: resp.statusCode, Message: msgFetchAlerts, Err: fmt.Errorf("normalize alert %s: %w", w.ID, err)}
		}
		alerts = append(alerts, a)
	}
	return alerts, nil
}

// CreateAlert отправляет новый alert
func (c *Client) CreateAlert(ctx context.Context, token string, a model.Alert) (model.Alert, error) {
	return c.sendAlert(ctx, http.MethodPost, "api/v1/alerts", token, a, msgCreateAlert)
}

// UpdateAlert заменяет alert целиком
func (c *Client) UpdateAlert(ctx context.Context, token, id string, a model.Alert) (model.Alert, error) {
	return c.sendAlert(ctx, http.MethodPatch, "api/v1/alerts/"+escapeID(id), token, a, msgUpdateAlert)
}

// DeleteAlert удаляет alert
func (c *Client) DeleteAlert(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "api/v1/alerts/"+escapeID(id), token, nil, msgDeleteAlert)
	return err
}

func (c *Client) sendAlert(ctx context.Context, method, path, token string, a model.Alert, fallback string) (model.Alert, error) {
	resp, err := c.do(ctx, method, path, token, schedule.Outbound(a), fallback)
	if err != nil {
		return model.Alert{}, err
	}

	var data alertData
	if err := decodeData(resp, &data, path, fallback); err != nil {
		return model.Alert{}, err
	}

	saved, err := schedule.Inbound(data.Alert)
	if err != nil {
		return model.Alert{}, &Error{Op: path, StatusCode: resp.statusCode, Message: fallback, Err: fmt.Errorf("normalize alert: %w", err)}
	}
	return saved, nil
}
