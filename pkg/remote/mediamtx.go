package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
)

// Path is one entry of the MediaMTX path list.
type Path struct {
	Name  string `json:"name"`
	Ready bool   `json:"ready"`
}

type pathList struct {
	ItemCount int    `json:"itemCount"`
	PageCount int    `json:"pageCount"`
	Items     []Path `json:"items"`
}

// MediaMTX talks to the media server control API (v3).
type MediaMTX struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

func NewMediaMTX(baseURL string) *MediaMTX {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &MediaMTX{
		httpClient: client,
		logger:     common.GetLoggerWith(common.LoggerNameRemote, zap.String("remote", "mediamtx")),
	}
}

func (m *MediaMTX) ListPaths(ctx context.Context) ([]Path, error) {
	var list pathList
	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetResult(&list).
		Get("/v3/paths/list")
	if err != nil {
		return nil, fmt.Errorf("failed to get MediaMTX paths: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to get MediaMTX paths: %s", resp.Status())
	}
	return list.Items, nil
}

// AddPath registers a path with the given path configuration.
func (m *MediaMTX) AddPath(ctx context.Context, name string, conf map[string]any) error {
	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetPathParam("name", name).
		SetBody(conf).
		Post("/v3/config/paths/add/{name}")
	if err != nil {
		return fmt.Errorf("failed to add MediaMTX path %s: %w", name, err)
	}
	if resp.IsError() {
		m.logger.Warn("MediaMTX rejected path", zap.String("path", name), zap.String("body", resp.String()))
		return fmt.Errorf("failed to add MediaMTX path %s: %s", name, resp.Status())
	}
	return nil
}

func (m *MediaMTX) DeletePath(ctx context.Context, name string) error {
	resp, err := m.httpClient.R().
		SetContext(ctx).
		SetPathParam("name", name).
		Delete("/v3/config/paths/delete/{name}")
	if err != nil {
		return fmt.Errorf("failed to delete MediaMTX path %s: %w", name, err)
	}
	if resp.IsError() {
		return fmt.Errorf("failed to delete MediaMTX path %s: %s", name, resp.Status())
	}
	return nil
}

// PathStatus maps the presence and readiness of a named path to a device
// status: on when ready, waiting when present, off when missing.
func PathStatus(paths []Path, name string) models.DeviceStatus {
	for _, p := range paths {
		if p.Name != name {
			continue
		}
		if p.Ready {
			return models.DeviceStatusOn
		}
		return models.DeviceStatusWaiting
	}
	return models.DeviceStatusOff
}
