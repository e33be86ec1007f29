// Package evolution is a thin client for an Evolution API gateway, the
// HTTP bridge the bot uses to send and receive WhatsApp messages.
package evolution

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/imobiliariaxyz/bot-corretor/pkg/logging"
)

const (
	defaultBaseURL       = "http://localhost:8080"
	defaultTimeout       = 60 * time.Second
	defaultMaxMediaBytes = 25 << 20
)

var nonDigits = regexp.MustCompile(`\D`)

// Config controls how the Evolution client behaves.
type Config struct {
	BaseURL  string
	APIKey   string
	Instance string
	Timeout  time.Duration
	// MaxMediaBytes caps how much of a media download is buffered.
	// Zero means the 25 MiB default.
	MaxMediaBytes int64
	HTTPClient    *http.Client
	Logger        *logging.Logger
}

// Client wraps the Evolution API endpoints relevant to the bot.
type Client struct {
	baseURL       string
	apiKey        string
	instance      string
	maxMediaBytes int64
	httpClient    *http.Client
	logger        *logging.Logger
}

// New creates a configured Client with sane defaults.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("evolution: API key is required")
	}
	if strings.TrimSpace(cfg.Instance) == "" {
		return nil, errors.New("evolution: instance name is required")
	}
	baseURL := strings.TrimSpace(cfg.BaseURL)
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}
	maxMediaBytes := cfg.MaxMediaBytes
	if maxMediaBytes <= 0 {
		maxMediaBytes = defaultMaxMediaBytes
	}
	return &Client{
		baseURL:       baseURL,
		apiKey:        cfg.APIKey,
		instance:      cfg.Instance,
		maxMediaBytes: maxMediaBytes,
		httpClient:    httpClient,
		logger:        logger,
	}, nil
}

// Instance returns the configured instance name.
func (c *Client) Instance() string {
	return c.instance
}

// SendText delivers plain text to a chat.
func (c *Client) SendText(ctx context.Context, number, text string) (*SendResponse, error) {
	return c.send(ctx, "/message/sendText/", TextRequest{
		Number: FormatNumber(number),
		Text:   text,
	})
}

// SendButtons delivers a reply-button menu.
func (c *Client) SendButtons(ctx context.Context, req ButtonsRequest) (*SendResponse, error) {
	req.Number = FormatNumber(req.Number)
	for i := range req.Buttons {
		if req.Buttons[i].Type == "" {
			req.Buttons[i].Type = "reply"
		}
	}
	return c.send(ctx, "/message/sendButtons/", req)
}

// SendList delivers a sectioned selection list.
func (c *Client) SendList(ctx context.Context, req ListRequest) (*SendResponse, error) {
	req.Number = FormatNumber(req.Number)
	return c.send(ctx, "/message/sendList/", req)
}

// SendImage delivers an image by URL with an optional caption.
func (c *Client) SendImage(ctx context.Context, number, url, caption string) (*SendResponse, error) {
	return c.send(ctx, "/message/sendMedia/", MediaRequest{
		Number:    FormatNumber(number),
		MediaType: "image",
		Media:     url,
		Caption:   caption,
	})
}

// SendLocation delivers a location pin.
func (c *Client) SendLocation(ctx context.Context, req LocationRequest) (*SendResponse, error) {
	req.Number = FormatNumber(req.Number)
	return c.send(ctx, "/message/sendLocation/", req)
}

func (c *Client) send(ctx context.Context, pathPrefix string, payload any) (*SendResponse, error) {
	data, err := c.invoke(ctx, http.MethodPost, pathPrefix+c.instance, payload)
	if err != nil {
		return nil, err
	}
	var resp SendResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("evolution: decode send response: %w", err)
	}
	return &resp, nil
}

// CreateInstance registers the instance on the gateway, requesting a
// QR code for pairing.
func (c *Client) CreateInstance(ctx context.Context) error {
	_, err := c.invoke(ctx, http.MethodPost, "/instance/create", map[string]any{
		"instanceName": c.instance,
		"qrcode":       true,
		"integration":  "WHATSAPP-BAILEYS",
	})
	return err
}

// Connect starts (or resumes) the WhatsApp session, returning pairing
// material when the instance is not yet linked.
func (c *Client) Connect(ctx context.Context) (*ConnectResponse, error) {
	data, err := c.invoke(ctx, http.MethodGet, "/instance/connect/"+c.instance, nil)
	if err != nil {
		return nil, err
	}
	var resp ConnectResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("evolution: decode connect response: %w", err)
	}
	return &resp, nil
}

// ConnectionStatus reports the current connection state.
func (c *Client) ConnectionStatus(ctx context.Context) (*InstanceState, error) {
	data, err := c.invoke(ctx, http.MethodGet, "/instance/connectionState/"+c.instance, nil)
	if err != nil {
		return nil, err
	}
	var resp InstanceState
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("evolution: decode connection state: %w", err)
	}
	return &resp, nil
}

// SetWebhook points the instance's event webhook at url.
func (c *Client) SetWebhook(ctx context.Context, url string, events []string) error {
	if strings.TrimSpace(url) == "" {
		return errors.New("evolution: webhook url is required")
	}
	if len(events) == 0 {
		events = []string{"MESSAGES_UPSERT", "CONNECTION_UPDATE", "QRCODE_UPDATED"}
	}
	_, err := c.invoke(ctx, http.MethodPost, "/webhook/set/"+c.instance, map[string]any{
		"webhook": map[string]any{
			"enabled": true,
			"url":     url,
			"events":  events,
		},
	})
	return err
}

// Logout disconnects the WhatsApp session without deleting the instance.
func (c *Client) Logout(ctx context.Context) error {
	_, err := c.invoke(ctx, http.MethodDelete, "/instance/logout/"+c.instance, nil)
	return err
}

// LookupMedia asks the gateway to decode a received media message by
// its message id.
func (c *Client) LookupMedia(ctx context.Context, messageID string) ([]byte, string, error) {
	if strings.TrimSpace(messageID) == "" {
		return nil, "", errors.New("evolution: message id is required")
	}
	data, err := c.invoke(ctx, http.MethodPost, "/chat/getBase64FromMediaMessage/"+c.instance, map[string]any{
		"message": map[string]any{
			"key": map[string]string{"id": messageID},
		},
	})
	if err != nil {
		return nil, "", err
	}
	var payload MediaPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, "", fmt.Errorf("evolution: decode media payload: %w", err)
	}
	decoded, err := base64.StdEncoding.DecodeString(payload.Base64)
	if err != nil {
		return nil, "", fmt.Errorf("evolution: decode media base64: %w", err)
	}
	return decoded, payload.MimeType, nil
}

// FetchMedia downloads media bytes from a gateway-hosted URL. At most
// MaxMediaBytes+1 bytes are buffered, so a response that exceeds the
// cap comes back one byte over it and callers can detect the overflow
// without the whole body ever being held in memory.
func (c *Client) FetchMedia(ctx context.Context, url string) ([]byte, error) {
	if strings.TrimSpace(url) == "" {
		return nil, errors.New("evolution: media url is required")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("evolution: build media request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("evolution: fetch media: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &APIError{StatusCode: resp.StatusCode, Body: string(body)}
	}
	return io.ReadAll(io.LimitReader(resp.Body, c.maxMediaBytes+1))
}

func (c *Client) invoke(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var bodyReader io.Reader
	if payload != nil {
		body, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("evolution: marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("evolution: build request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	if bodyReader != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("evolution: http error: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("evolution: read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{StatusCode: resp.StatusCode, Body: string(data)}
		c.logger.Warn("evolution request failed",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
		)
		return nil, apiErr
	}
	return data, nil
}

// APIError is a non-2xx gateway response.
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("evolution: http status %d: %s", e.StatusCode, truncate(e.Body, 200))
}

// IsRejected reports whether err is the gateway refusing the request
// itself (4xx), as opposed to a transport failure or server error.
// Callers use it to decide when to degrade a rich message to text.
func IsRejected(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode >= 400 && apiErr.StatusCode < 500
}

func truncate(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	return s[:limit] + "..."
}

// FormatNumber normalizes a recipient to the gateway's JID form:
// digits only, Brazilian country code, whatsapp suffix. Inputs that
// already carry a JID suffix pass through unchanged.
func FormatNumber(number string) string {
	if strings.Contains(number, "@") {
		return number
	}
	digits := nonDigits.ReplaceAllString(number, "")
	if !strings.HasPrefix(digits, "55") && (len(digits) == 10 || len(digits) == 11) {
		digits = "55" + digits
	}
	return digits + "@s.whatsapp.net"
}
