package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds the settings shared by the joystick services. Every field has a
// default so a missing .env still yields a usable local setup.
type Config struct {
	StreamAPIURL   string
	SwitcherAPIURL string
	JoystickAPIURL string

	APIKey          string
	AllowInternal   bool
	SessionTTL      time.Duration
	SystemUserEmail string
	AdminUserEmail  string
	SeedPassword    string

	DefaultRate  float64
	DefaultBurst int

	MQTTBroker   string
	MQTTClientID string
	RedisAddr    string

	SMSGatewayURL      string
	SMSGatewayUsername string
	SMSGatewayPassword string
	SMSGatewayModem    string
	SMSReplyTimeout    time.Duration
}

func EnvOr(key, fallback string) string {
	if v, found := os.LookupEnv(key); found && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func envFloat(key string, fallback float64) (float64, error) {
	raw, found := os.LookupEnv(key)
	if !found || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s, should be a float64 value: %w", key, err)
	}
	return v, nil
}

func envInt(key string, fallback int) (int, error) {
	raw, found := os.LookupEnv(key)
	if !found || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s, should be an int value: %w", key, err)
	}
	return v, nil
}

func envDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw, found := os.LookupEnv(key)
	if !found || strings.TrimSpace(raw) == "" {
		return fallback, nil
	}
	v, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid %s, should be a duration like 30s: %w", key, err)
	}
	return v, nil
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		StreamAPIURL:       EnvOr(EnvKeyStreamAPIURL, "http://localhost:9997"),
		SwitcherAPIURL:     EnvOr(EnvKeySwitcherAPIURL, "http://localhost:8080"),
		JoystickAPIURL:     EnvOr(EnvKeyJoystickAPIURL, "http://localhost:8000"),
		APIKey:             EnvOr(EnvKeyAPIKey, ""),
		AllowInternal:      EnvOr(EnvKeyAllowInternal, "false") == "true",
		SystemUserEmail:    EnvOr(EnvKeySystemUserEmail, "system@joystick.io"),
		AdminUserEmail:     EnvOr(EnvKeyAdminUserEmail, "admin@joystick.io"),
		SeedPassword:       EnvOr(EnvKeySystemPassword, "Aa123456"),
		MQTTBroker:         EnvOr(EnvKeyMQTTBroker, ""),
		MQTTClientID:       EnvOr(EnvKeyMQTTClientID, "joystick"),
		RedisAddr:          EnvOr(EnvKeyRedisAddr, ""),
		SMSGatewayURL:      EnvOr(EnvKeySMSGatewayURL, "http://192.168.1.1"),
		SMSGatewayUsername: EnvOr(EnvKeySMSGatewayUsername, "admin"),
		SMSGatewayPassword: EnvOr(EnvKeySMSGatewayPassword, ""),
		SMSGatewayModem:    EnvOr(EnvKeySMSGatewayModem, "1-1"),
	}

	var err error
	if cfg.DefaultRate, err = envFloat(EnvKeyDefaultRate, 5); err != nil {
		return nil, err
	}
	if cfg.DefaultBurst, err = envInt(EnvKeyDefaultBurst, 10); err != nil {
		return nil, err
	}
	if cfg.SessionTTL, err = envDuration(EnvKeySessionTTL, 24*time.Hour); err != nil {
		return nil, err
	}
	if cfg.SMSReplyTimeout, err = envDuration(EnvKeySMSReplyTimeout, 80*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}
