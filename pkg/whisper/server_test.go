package whisper

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/remote"
	_ "joystick.io/fleet-control/pkg/testing"
)

type fakeGateway struct {
	mu   sync.Mutex
	sent []string
}

func (f *fakeGateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/login":
		_, _ = w.Write([]byte(`{"success":true,"data":{"token":"t0k3n"}}`))
	case "/api/messages/actions/send":
		if r.Header.Get("Authorization") != "Bearer t0k3n" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		var body struct {
			Data struct {
				Number string `json:"number"`
			} `json:"data"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		f.mu.Lock()
		f.sent = append(f.sent, body.Data.Number)
		f.mu.Unlock()
		_, _ = w.Write([]byte(`{"success":true,"data":{"id":"m1"}}`))
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (f *fakeGateway) numbers() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.sent...)
}

func setupTestServer(t *testing.T, timeout time.Duration) (*Server, *fakeGateway) {
	gin.SetMode(gin.TestMode)

	gateway := &fakeGateway{}
	gatewayServer := httptest.NewServer(gateway)
	t.Cleanup(gatewayServer.Close)

	s := &Server{
		Server:  gin.New(),
		Whisper: New(remote.NewSMSGateway(gatewayServer.URL, "user", "pass", "1-1"), timeout),
	}
	s.Setup()
	return s, gateway
}

func do(s *Server, method, path string, body any) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(method, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.Server.ServeHTTP(w, req)
	return w
}

func TestSendWaitsForReply(t *testing.T) {
	common.SetTestLoggerNop()
	s, gateway := setupTestServer(t, 5*time.Second)

	done := make(chan *httptest.ResponseRecorder, 1)
	go func() {
		done <- do(s, "POST", "/api/send-sms", SendRequest{PhoneNumbers: []string{"+3710001", "+3710002"}, Message: "status"})
	}()

	require.Eventually(t, func() bool { return s.Whisper.PendingCount() == 1 }, time.Second, 5*time.Millisecond)

	// a reply from another number leaves the wait in place
	w := do(s, "POST", "/api/receive-sms", WebhookEvent{
		Event:   EventSMSReceived,
		ID:      "r0",
		Payload: &WebhookPayload{PhoneNumber: "+3719999", Message: "noise"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, s.Whisper.PendingCount())

	w = do(s, "POST", "/api/receive-sms", WebhookEvent{
		Event:   EventSMSReceived,
		ID:      "r1",
		Status:  "Received",
		Payload: &WebhookPayload{PhoneNumber: "+3710001", Message: "OK live"},
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true}`, w.Body.String())

	var res *httptest.ResponseRecorder
	select {
	case res = <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("send-sms did not return")
	}

	require.Equal(t, http.StatusOK, res.Code, res.Body.String())
	var reply Reply
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &reply))
	assert.Equal(t, "r1", reply.ID)
	assert.Equal(t, "Received", reply.Status)
	assert.Equal(t, "OK live", reply.Message)
	assert.NotZero(t, reply.Timestamp)

	assert.Equal(t, []string{"+3710001", "+3710002"}, gateway.numbers())
	assert.Equal(t, 0, s.Whisper.PendingCount())
}

func TestSendTimesOut(t *testing.T) {
	common.SetTestLoggerNop()
	s, _ := setupTestServer(t, 50*time.Millisecond)

	w := do(s, "POST", "/api/send-sms", SendRequest{PhoneNumbers: []string{"+3710001"}, Message: "status"})

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
	assert.Contains(t, w.Body.String(), ErrReplyTimeout.Error())
	assert.Equal(t, 0, s.Whisper.PendingCount())
}

func TestSendValidation(t *testing.T) {
	common.SetTestLoggerNop()
	s, gateway := setupTestServer(t, time.Second)

	for _, body := range []any{
		map[string]any{"message": "status"},
		map[string]any{"phoneNumbers": []string{}, "message": "status"},
		map[string]any{"phoneNumbers": []string{"+3710001"}},
	} {
		w := do(s, "POST", "/api/send-sms", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.JSONEq(t, `{"error":"Phone numbers and message are required"}`, w.Body.String())
	}
	assert.Empty(t, gateway.numbers())
}

func TestReceiveWithoutPendingAndHealth(t *testing.T) {
	common.SetTestLoggerNop()
	s, _ := setupTestServer(t, time.Second)

	w := do(s, "POST", "/api/receive-sms", WebhookEvent{Event: "sms:sent", Payload: &WebhookPayload{PhoneNumber: "+3710001"}})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.False(t, s.Whisper.Receive(WebhookEvent{Event: EventSMSReceived}))

	w = do(s, "GET", "/health", nil)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}
