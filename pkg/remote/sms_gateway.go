package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
)

var ErrGatewayRejected = errors.New("sms gateway rejected the request")

type gatewayResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

type gatewayToken struct {
	Token string `json:"token"`
}

type gatewaySend struct {
	Data gatewayMessage `json:"data"`
}

type gatewayMessage struct {
	Number  string `json:"number"`
	Message string `json:"message"`
	Modem   string `json:"modem"`
}

// SMSGateway sends messages through the cellular router's HTTP API. Every
// send logs in first because gateway tokens are short lived.
type SMSGateway struct {
	httpClient *resty.Client
	username   string
	password   string
	modem      string
	logger     *zap.Logger
}

func NewSMSGateway(baseURL, username, password, modem string) *SMSGateway {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(20*time.Second).
		SetHeader("Content-Type", "application/json")

	return &SMSGateway{
		httpClient: client,
		username:   username,
		password:   password,
		modem:      modem,
		logger:     common.GetLoggerWith(common.LoggerNameRemote, zap.String("remote", "sms_gateway")),
	}
}

func (g *SMSGateway) Login(ctx context.Context) (string, error) {
	var result gatewayResponse
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetBody(map[string]string{"username": g.username, "password": g.password}).
		SetResult(&result).
		Post("/api/login")
	if err != nil {
		return "", fmt.Errorf("failed to login: %w", err)
	}
	if resp.IsError() || !result.Success {
		return "", fmt.Errorf("failed to login: %w", ErrGatewayRejected)
	}

	var token gatewayToken
	if err := json.Unmarshal(result.Data, &token); err != nil {
		return "", fmt.Errorf("failed to login: %w", err)
	}
	return token.Token, nil
}

// Send delivers message to number and returns the gateway's data payload.
func (g *SMSGateway) Send(ctx context.Context, number, message string) (json.RawMessage, error) {
	token, err := g.Login(ctx)
	if err != nil {
		return nil, err
	}

	var result gatewayResponse
	resp, err := g.httpClient.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetBody(gatewaySend{Data: gatewayMessage{Number: number, Message: message, Modem: g.modem}}).
		SetResult(&result).
		Post("/api/messages/actions/send")
	if err != nil {
		return nil, fmt.Errorf("failed to send SMS: %w", err)
	}
	if resp.IsError() || !result.Success {
		return nil, fmt.Errorf("failed to send SMS: %w", ErrGatewayRejected)
	}

	g.logger.Info("SMS sent", zap.String("number", number))
	return result.Data, nil
}
