package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"scanpass/internal/app/client/config"
	"scanpass/internal/domain/scan"
)

const (
	healthPath = "/api/v1/health"
	scanPath   = "/api/v1/scan"
)

type httpClient struct {
	client    *http.Client
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	// Определяем протокол
	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		log:       log.With("component", "http_client"),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "ScanPass-Client/1.0",
	}, nil
}

// HealthCheck проверяет доступность сервера
func (h *httpClient) HealthCheck(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, healthPath, nil, "")
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус: %d", resp.StatusCode)
	}

	var body struct {
		Scan string `json:"scan"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return fmt.Errorf("ошибка разбора ответа: %w", err)
	}
	if body.Scan != "ok" {
		return fmt.Errorf("сервер не готов: %s", body.Scan)
	}
	return nil
}

// Decode отправляет кадр на распознавание серверу.
// Ответ 422 означает, что код не распознан.
func (h *httpClient) Decode(ctx context.Context) (scan.Result, error) {
	requestID := uuid.NewString()

	resp, err := h.doRequest(ctx, http.MethodPost, scanPath, scanRequest{RequestID: requestID}, requestID)
	if err != nil {
		return scan.Result{}, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return scan.Result{}, fmt.Errorf("ошибка чтения ответа: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
		var res scan.Result
		if err := json.Unmarshal(body, &res); err != nil {
			return scan.Result{}, fmt.Errorf("ошибка разбора ответа: %w", err)
		}
		h.log.Debug("scan decoded remotely", "request_id", requestID, "account_id", res.AccountID)
		return res, nil
	case http.StatusUnprocessableEntity:
		h.log.Debug("scan not recognized", "request_id", requestID, "detail", problemDetail(body))
		return scan.Result{}, scan.ErrRecognitionFailure
	default:
		return scan.Result{}, fmt.Errorf("сервер вернул статус %d: %s", resp.StatusCode, problemDetail(body))
	}
}

type scanRequest struct {
	RequestID string `json:"requestId"`
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body interface{}, requestID string) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("ошибка сериализации запроса: %w", err)
		}
		reqBody = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания запроса: %w", err)
	}

	req.Header.Set("User-Agent", h.userAgent)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, err
		}
		return nil, fmt.Errorf("сервер недоступен: %w", err)
	}
	return resp, nil
}

// problemDetail достает detail из ответа application/problem+json
func problemDetail(body []byte) string {
	var p struct {
		Title  string `json:"title"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return string(body)
	}
	if p.Detail != "" {
		return p.Detail
	}
	return p.Title
}
