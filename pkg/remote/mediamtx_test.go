package remote

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/models"
	_ "joystick.io/fleet-control/pkg/testing"
)

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func TestMediaMTXListPaths(t *testing.T) {
	common.SetTestLoggerNop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v3/paths/list", r.URL.Path)
		writeJSON(w, http.StatusOK, map[string]any{
			"itemCount": 2,
			"pageCount": 1,
			"items": []map[string]any{
				{"name": "cam1", "ready": true},
				{"name": "cam2", "ready": false},
			},
		})
	}))
	defer server.Close()

	paths, err := NewMediaMTX(server.URL).ListPaths(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []Path{{Name: "cam1", Ready: true}, {Name: "cam2", Ready: false}}, paths)
}

func TestMediaMTXListPathsError(t *testing.T) {
	common.SetTestLoggerNop()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	_, err := NewMediaMTX(server.URL).ListPaths(context.Background())
	assert.ErrorContains(t, err, "failed to get MediaMTX paths")
}

func TestMediaMTXAddAndDeletePath(t *testing.T) {
	common.SetTestLoggerNop()

	var calls []string
	var added map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls = append(calls, r.Method+" "+r.URL.Path)
		if r.Method == http.MethodPost {
			body, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(body, &added)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewMediaMTX(server.URL)
	conf := map[string]any{"name": "cam1", "source": "rtsp://10.0.0.5/stream"}

	require.NoError(t, client.AddPath(context.Background(), "cam1", conf))
	require.NoError(t, client.DeletePath(context.Background(), "cam1"))

	assert.Equal(t, []string{
		"POST /v3/config/paths/add/cam1",
		"DELETE /v3/config/paths/delete/cam1",
	}, calls)
	assert.Equal(t, "rtsp://10.0.0.5/stream", added["source"])
}

func TestPathStatus(t *testing.T) {
	paths := []Path{{Name: "ready", Ready: true}, {Name: "pending", Ready: false}}

	assert.Equal(t, models.DeviceStatusOn, PathStatus(paths, "ready"))
	assert.Equal(t, models.DeviceStatusWaiting, PathStatus(paths, "pending"))
	assert.Equal(t, models.DeviceStatusOff, PathStatus(paths, "missing"))
	assert.Equal(t, models.DeviceStatusOff, PathStatus(nil, "ready"))
}
