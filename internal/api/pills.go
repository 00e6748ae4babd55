package api

import (
	"context"
	"net/http"

	"github.com/Freeeeeet/pillbot/internal/model"
)

type pillData struct {
	Pill model.Pill `json:"pill"`
}

type pillsData struct {
	Pills []model.Pill `json:"pills"`
}

// ListPills возвращает каталог pills пользователя
func (c *Client) ListPills(ctx context.Context, token string) ([]model.Pill, error) {
	const path = "api/v1/pills"

	resp, err := c.do(ctx, http.MethodGet, path, token, nil, msgFetchPills)
	if err != nil {
		return nil, err
	}

	var data pillsData
	if err := decodeData(resp, &data, path, msgFetchPills); err != nil {
		return nil, err
	}
	if data.Pills == nil {
		data.Pills = []model.Pill{}
	}
	return data.Pills, nil
}

// CreatePill создаёт pill
func (c *Client) CreatePill(ctx context.Context, token string, fields model.PillFields) (model.Pill, error) {
	const path = "api/v1/pills"

	resp, err := c.do(ctx, http.MethodPost, path, token, fields, msgCreatePill)
	if err != nil {
		return model.Pill{}, err
	}

	var data pillData
	if err := decodeData(resp, &data, path, msgCreatePill); err != nil {
		return model.Pill{}, err
	}
	return data.Pill, nil
}

// UpdatePill обновляет pill
func (c *Client) UpdatePill(ctx context.Context, token, id string, fields model.PillFields) (model.Pill, error) {
	path := "api/v1/pills/" + escapeID(id)

	resp, err := c.do(ctx, http.MethodPatch, path, token, fields, msgUpdatePill)
	if err != nil {
		return model.Pill{}, err
	}

	var data pillData
	if err := decodeData(resp, &data, path, msgUpdatePill); err != nil {
		return model.Pill{}, err
	}
	return data.Pill, nil
}

// DeletePill удаляет pill
func (c *Client) DeletePill(ctx context.Context, token, id string) error {
	_, err := c.do(ctx, http.MethodDelete, "api/v1/pills/"+escapeID(id), token, nil, msgDeletePill)
	return err
}
