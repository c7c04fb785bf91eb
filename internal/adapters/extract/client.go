// Package extract talks to the external receipt-extraction and
// policy-check services. Both are consumed as opaque request/response
// contracts; parsing and compliance logic live on the remote side.
package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/olbb/expense-console-backend/internal/infrastructure/config"
)

// Client calls the extraction and policy-check endpoints.
type Client struct {
	http           *retryablehttp.Client
	extractorURL   string
	policyCheckURL string
	logger         *slog.Logger
}

// NewClient creates a client from service config. A nil logger uses
// slog.Default.
func NewClient(cfg config.ServicesConfig, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	rc := retryablehttp.NewClient()
	rc.RetryMax = 3
	rc.Logger = nil // slog below instead of retryablehttp's own logging
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	rc.HTTPClient.Timeout = time.Duration(timeout) * time.Second

	return &Client{
		http:           rc,
		extractorURL:   cfg.ExtractorURL,
		policyCheckURL: cfg.PolicyCheckURL,
		logger:         logger,
	}
}

// ExtractExpense uploads a receipt file and returns the structured
// expense fields. fileType is "pdf" or "image".
func (c *Client) ExtractExpense(ctx context.Context, filename, fileType string, file io.Reader) (*ExtractionResult, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := writer.WriteField("fileType", fileType); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("build upload: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.extractorURL, body.Bytes())
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("extraction service: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.serviceError("extraction", resp)
	}

	var result ExtractionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode extraction response: %w", err)
	}

	c.logger.Debug("extracted expense", "vendor", result.Vendor, "total", result.Total, "currency", result.Currency)
	return &result, nil
}

// CheckPolicy submits an extracted expense plus the active rules and
// returns the compliance verdict.
func (c *Client) CheckPolicy(ctx context.Context, request PolicyCheckRequest) (*PolicyCheckResult, error) {
	payload, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("encode policy request: %w", err)
	}

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodPost, c.policyCheckURL, payload)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("policy service: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read policy response: %w", err)
	}

	// The policy service reports request-level problems as a
	// non-compliant verdict with a 4xx/5xx status; surface the verdict
	// whenever the body parses as one.
	var result PolicyCheckResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("policy-check service returned status %d", resp.StatusCode)
	}

	return &result, nil
}

func (c *Client) serviceError(service string, resp *http.Response) error {
	var apiErr struct {
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&apiErr)
	if apiErr.Error != "" {
		return fmt.Errorf("%s service (%d): %s", service, resp.StatusCode, apiErr.Error)
	}
	return fmt.Errorf("%s service returned status %d", service, resp.StatusCode)
}
