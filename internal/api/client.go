package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBaseURL адрес API по умолчанию
const DefaultBaseURL = "https://api.khumbula.online/"

const maxResponseSize = 1 << 20

type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client HTTP-клиент REST API напоминаний
type Client struct {
	baseURL string
	http    httpDoer
	logger  *zap.Logger
}

// NewClient создаёт клиент API
func NewClient(baseURL string, timeout time.Duration, logger *zap.Logger) *Client {
	baseURL = strings.TrimSpace(baseURL)
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 15 * time.Second
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// SetHTTPClient подменяет транспорт (используется в тестах)
func (c *Client) SetHTTPClient(client httpDoer) {
	if client == nil {
		c.http = http.DefaultClient
		return
	}
	c.http = client
}

// envelope общий формат ответов API: {status, message, token, data}
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	Data    json.RawMessage `json:"data"`
}

type response struct {
	envelope
	statusCode int
}

// do выполняет запрос. Любой не-2xx ответ и любая транспортная ошибка
// превращаются в *Error с message из тела или fallback.
func (c *Client) do(ctx context.Context, method, path, token string, body any, fallback string) (*response, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, &Error{Op: path, Message: fallback, Err: fmt.Errorf("marshal request: %w", err)}
		}
		reader = bytes.NewReader(payload)
	}

	endpoint := c.baseURL + "/" + strings.TrimLeft(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return nil, &Error{Op: path, Message: fallback, Err: fmt.Errorf("create request: %w", err)}
	}

	requestID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", requestID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("API request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.String("request_id", requestID),
			zap.Error(err),
		)
		return nil, &Error{Op: path, Message: fallback, Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &Error{Op: path, StatusCode: resp.StatusCode, Message: fallback, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("API request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.String("request_id", requestID),
		zap.Duration("took", time.Since(started)),
	)

	var env envelope
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &env)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(env.Message)
		if decodeErr != nil || msg == "" {
			msg = fallback
		}
		return nil, &Error{
			Op:         path,
			StatusCode: resp.StatusCode,
			Message:    msg,
			Err:        fmt.Errorf("%s %s: status %d", method, path, resp.StatusCode),
		}
	}

	if decodeErr != nil {
		return nil, &Error{Op: path, StatusCode: resp.StatusCode, Message: fallback, Err: fmt.Errorf("decode response: %w", decodeErr)}
	}

	return &response{envelope: env, statusCode: resp.StatusCode}, nil
}

// decodeData разбирает поле data ответа
func decodeData(resp *response, out any, path, fallback string) error {
	if len(resp.Data) == 0 {
		return &Error{Op: path, StatusCode: resp.statusCode, Message: fallback, Err: fmt.Errorf("empty data in response")}
	}
	if err := json.Unmarshal(resp.Data, out); err != nil {
		return &Error{Op: path, StatusCode: resp.statusCode, Message: fallback, Err: fmt.Errorf("decode data: %w", err)}
	}
	return nil
}

func escapeID(id string) string {
	return url.PathEscape(id)
}
