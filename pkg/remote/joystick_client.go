package remote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

const (
	HeaderAPIKey = "X-API-Key"

	// SubjectSystem is the caller of a client that holds only an api key.
	SubjectSystem = "system"
)

// APIError is returned by JoystickClient for transport failures and for
// responses the API marked as failed.
type APIError struct {
	Message        string
	Status         int
	IsNetworkError bool
	IsTimeout      bool
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("joystick api %d: %s", e.Status, e.Message)
	}
	return e.Message
}

type UserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Level string `json:"level"`
}

type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	User      UserInfo  `json:"user"`
}

type RunResponse struct {
	Success bool   `json:"success"`
	Output  string `json:"output,omitempty"`
	Error   string `json:"error,omitempty"`
}

type ActionSchema struct {
	Action  string          `json:"action"`
	Command string          `json:"command"`
	Target  string          `json:"target"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type DeviceActionsResponse struct {
	Actions []string `json:"actions"`
}

type PermissionsResponse struct {
	Permissions map[string]bool `json:"permissions"`
}

type RouteResponse struct {
	Route     string `json:"route"`
	Permitted bool   `json:"permitted"`
}

type NotificationRequest struct {
	Type        string `json:"type,omitempty"`
	Title       string `json:"title"`
	Message     string `json:"message"`
	UserID      string `json:"userId,omitempty"`
	DeviceID    string `json:"deviceId,omitempty"`
	Dismissible *bool  `json:"dismissible,omitempty"`
}

type NotificationResponse struct {
	Success         bool   `json:"success"`
	NotificationID  string `json:"notificationId,omitempty"`
	ClientsNotified int    `json:"clientsNotified"`
	Error           string `json:"error,omitempty"`
}

type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// JoystickClient is the Go client of the joystick API. It authenticates
// with an API key, a bearer session token, or both.
type JoystickClient struct {
	httpClient *resty.Client
	logger     *zap.Logger

	apiKey string

	mu     sync.RWMutex
	token  string
	userID string
}

func NewJoystickClient(baseURL, apiKey string) *JoystickClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(15*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	if apiKey != "" {
		client.SetHeader(HeaderAPIKey, apiKey)
	}

	return &JoystickClient{
		httpClient: client,
		apiKey:     apiKey,
		logger:     common.GetLoggerWith(common.LoggerNameRemote, zap.String("remote", "joystick")),
	}
}

func (c *JoystickClient) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetToken replaces the session token. The user behind it is unknown until the
// next login or refresh.
func (c *JoystickClient) SetToken(token string) {
	c.setSession(token, "")
}

func (c *JoystickClient) setSession(token, userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
	c.userID = userID
}

// Subject names the caller the API answers for: the session user, a digest of
// a token whose user is unknown, the api key's system user, or "" when
// anonymous.
func (c *JoystickClient) Subject() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	switch {
	case c.userID != "":
		return c.userID
	case c.token != "":
		sum := sha256.Sum256([]byte(c.token))
		return "token-" + hex.EncodeToString(sum[:8])
	case c.apiKey != "":
		return SubjectSystem
	}
	return ""
}

func (c *JoystickClient) request(ctx context.Context) *resty.Request {
	req := c.httpClient.R().SetContext(ctx)
	if token := c.Token(); token != "" {
		req.SetAuthToken(token)
	}
	return req
}

func toAPIError(resp *resty.Response, err error) error {
	if err != nil {
		var netErr net.Error
		if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
			return &APIError{Message: "Request timed out", IsTimeout: true}
		}
		return &APIError{Message: err.Error(), IsNetworkError: true}
	}
	if !resp.IsError() {
		return nil
	}

	var body errorBody
	message := fmt.Sprintf("HTTP Error %d", resp.StatusCode())
	if json.Unmarshal(resp.Body(), &body) == nil {
		if body.Error != "" {
			message = body.Error
		} else if body.Message != "" {
			message = body.Message
		}
	}
	return &APIError{Message: message, Status: resp.StatusCode()}
}

func (c *JoystickClient) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	var auth AuthResponse
	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"email": email, "password": password}).
		SetResult(&auth).
		Post("/api/auth/login")
	if err := toAPIError(resp, err); err != nil {
		return nil, err
	}

	c.setSession(auth.Token, auth.User.ID)
	c.logger.Info("Authenticated against joystick api", zap.String("user", auth.User.ID))
	return &auth, nil
}

// RefreshAuth exchanges the current token for a fresh one.
func (c *JoystickClient) RefreshAuth(ctx context.Context) (*AuthResponse, error) {
	var auth AuthResponse
	resp, err := c.request(ctx).
		SetResult(&auth).
		Post("/api/auth/refresh")
	if err := toAPIError(resp, err); err != nil {
		return nil, err
	}

	// a refresh keeps the session user when the response omits it
	c.mu.Lock()
	c.token = auth.Token
	if auth.User.ID != "" {
		c.userID = auth.User.ID
	}
	c.mu.Unlock()
	return &auth, nil
}

// RunAction runs an action on a device and returns its output without the
// trailing newline.
func (c *JoystickClient) RunAction(ctx context.Context, deviceID, action string, params map[string]any) (string, error) {
	if params == nil {
		params = map[string]any{}
	}

	var result RunResponse
	resp, err := c.request(ctx).
		SetPathParam("device", deviceID).
		SetPathParam("action", action).
		SetBody(params).
		SetResult(&result).
		SetError(&result).
		Post("/api/run/{device}/{action}")
	if err != nil {
		return "", toAPIError(resp, err)
	}
	if !result.Success {
		message := result.Error
		if message == "" {
			message = "Failed to run action"
		}
		return "", &APIError{Message: message, Status: resp.StatusCode()}
	}

	return strings.TrimSuffix(result.Output, "\n"), nil
}

func (c *JoystickClient) Ping(ctx context.Context, deviceID string) (bool, error) {
	var online bool
	resp, err := c.request(ctx).
		SetPathParam("device", deviceID).
		SetResult(&online).
		Get("/api/ping/{device}")
	if err := toAPIError(resp, err); err != nil {
		return false, err
	}
	return online, nil
}

func (c *JoystickClient) Devices(ctx context.Context) ([]models.Device, error) {
	var devices []models.Device
	resp, err := c.request(ctx).
		SetResult(&devices).
		Get("/api/devices")
	if err := toAPIError(resp, err); err != nil {
		return nil, err
	}
	return devices, nil
}

func (c *JoystickClient) DeviceActions(ctx context.Context, deviceID string) ([]string, error) {
	var result DeviceActionsResponse
	resp, err := c.request(ctx).
		SetPathParam("device", deviceID).
		SetResult(&result).
		Get("/api/devices/{device}/actions")
	if err := toAPIError(resp, err); err != nil {
		return nil, err
	}
	return result.Actions, nil
}

func (c *JoystickClient) ActionSchema(ctx context.Context, deviceID, action string) (*ActionSchema, error) {
	var result ActionSchema
	resp, err := c.request(ctx).
		SetPathParam("device", deviceID).
		SetPathParam("action", action).
		SetResult(&result).
		Get("/api/devices/{device}/actions/{action}")
	if err := toAPIError(resp, err); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *JoystickClient) IsPermitted(ctx context.Context, actions ...string) (map[string]bool, error) {
	var result PermissionsResponse
	resp, err := c.request(ctx).
		SetQueryParamsFromValues(url.Values{"action": actions}).
		SetResult(&result).
		Get("/api/permissions/check")
	if err := toAPIError(resp, err); err != nil {
		return nil, err
	}
	return result.Permissions, nil
}

func (c *JoystickClient) IsRoutePermitted(ctx context.Context, route string) (bool, error) {
	var result RouteResponse
	resp, err := c.request(ctx).
		SetPathParam("route", route).
		SetResult(&result).
		Get("/api/routes/{route}")
	if err := toAPIError(resp, err); err != nil {
		return false, err
	}
	return result.Permitted, nil
}

func (c *JoystickClient) SendNotification(ctx context.Context, req NotificationRequest) (*NotificationResponse, error) {
	var result NotificationResponse
	resp, err := c.request(ctx).
		SetBody(req).
		SetResult(&result).
		SetError(&result).
		Post("/api/notifications/send")
	if err != nil {
		return nil, toAPIError(resp, err)
	}
	if !result.Success {
		return &result, &APIError{Message: result.Error, Status: resp.StatusCode()}
	}
	return &result, nil
}
