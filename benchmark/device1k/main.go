package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/go-resty/resty/v2"
	"google.golang.org/grpc"

	"joystick.io/fleet-control/pkg/common"
	joystickGrpc "joystick.io/fleet-control/pkg/grpc"
	"joystick.io/fleet-control/pkg/hooks"
	"joystick.io/fleet-control/pkg/remote"
)

var maxRequests int = 1000
var httpBaseURL string = common.EnvOr(common.EnvKeyJoystickAPIURL, "http://127.0.0.1:8000")
var grpcHostPort string = common.EnvOr(common.EnvKeyJoystickGrpcAddr, "127.0.0.1:8001")
var apiKey string = common.EnvOr(common.EnvKeyAPIKey, "")

var queryActions = []string{"set-mode", "get-mode", "set-fps", "get-fps", "reboot"}

var api *hooks.Hooks
var grpcClient *joystickGrpc.DeviceControlClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

var failures atomic.Int64

func main() {
	resp, err := resty.New().R().Get(httpBaseURL + "/api/health")
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Fatal("HTTP server not available")
	}

	fmt.Printf("http server verified\n")

	conn, err := grpc.Dial(grpcHostPort, grpc.WithInsecure())
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = joystickGrpc.NewDeviceControlClient(conn, apiKey)

	fmt.Printf("gRPC server verified and connected\n")

	var cache hooks.Cache = hooks.NewMemoryCache()
	if addr := common.EnvOr(common.EnvKeyRedisAddr, ""); addr != "" {
		client := redis.NewClient(&redis.Options{Addr: addr})
		defer client.Close()
		cache = hooks.NewRedisCache(client, "joystick:bench:")
		fmt.Printf("using redis query cache at %s\n", addr)
	}

	joystickClient := remote.NewJoystickClient(httpBaseURL, apiKey)
	api = hooks.New(joystickClient, cache, nil)

	devices, err := joystickClient.Devices(context.Background())
	if err != nil {
		log.Fatal("Failed to list devices:", err)
	}
	if len(devices) == 0 {
		log.Fatal("No devices to benchmark against")
	}
	deviceIDs := make([]string, len(devices))
	for i, device := range devices {
		deviceIDs[i] = device.ID
	}
	fmt.Printf("found %v devices\n", len(deviceIDs))

	var startTime time.Time
	var usedTime time.Duration

	startTime = time.Now()
	wg := sync.WaitGroup{}
	for i, deviceID := range deviceIDs {
		i, deviceID := i, deviceID
		wg.Add(1)
		go func() {
			warmQueries(deviceID)
			fmt.Printf("\rwarmed queries for device %v", i)
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\rwarmed queries for %v devices: used time=%v seconds, throughput=%v device/second\n",
		len(deviceIDs), usedTime.Seconds(), float64(len(deviceIDs))/usedTime.Seconds(),
	)

	startTime = time.Now()
	wg = sync.WaitGroup{}
	for i := 0; i < maxRequests; i++ {
		i := i
		wg.Add(1)
		go func() {
			doAction(deviceIDs[i%len(deviceIDs)])
			wg.Done()
		}()
	}
	wg.Wait()
	usedTime = time.Since(startTime)

	fmt.Printf(
		"\n\rdid actions for %v requests: used time=%v seconds, throughput=%v action/second, failures=%v\n",
		maxRequests, usedTime.Seconds(), float64(maxRequests*3)/usedTime.Seconds(), failures.Load(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func rndPause() time.Duration {
	rndMu.Lock()
	defer rndMu.Unlock()
	return time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
}

func warmQueries(deviceID string) {
	ctx := context.Background()
	api.DeviceActions(ctx, deviceID)
	api.IsPermittedMany(ctx, queryActions)
}

func doAction(deviceID string) {
	actions := []func(){
		genPingAction(deviceID),
		genQueryAction(deviceID),
		genPermissionAction(deviceID),
	}
	actionNames := []string{
		"Ping",
		"DeviceActions",
		"IsPermitted",
	}
	rndMu.Lock()
	rnd.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
		actionNames[i], actionNames[j] = actionNames[j], actionNames[i]
	})
	rndMu.Unlock()
	for index, action := range actions {
		action()
		fmt.Printf("\rexecuted action %v for device %v", actionNames[index], deviceID)
		time.Sleep(rndPause())
	}
}

func genPingAction(deviceID string) func() {
	return func() {
		ctx := context.Background()
		if flipCoin() {
			if result := api.Ping(ctx, deviceID); !result.Success {
				failures.Add(1)
			}
			return
		}
		if _, err := grpcClient.Ping(ctx, deviceID); err != nil {
			fmt.Printf("\nerror: %v\n", err)
			failures.Add(1)
		}
	}
}

func genQueryAction(deviceID string) func() {
	return func() {
		if len(api.DeviceActions(context.Background(), deviceID)) == 0 {
			failures.Add(1)
		}
	}
}

func genPermissionAction(deviceID string) func() {
	return func() {
		ctx := context.Background()
		if flipCoin() {
			api.IsPermitted(ctx, queryActions[len(deviceID)%len(queryActions)])
			return
		}
		if _, err := grpcClient.IsPermitted(ctx, "", "get-mode"); err != nil {
			fmt.Printf("\nerror: %v\n", err)
			failures.Add(1)
		}
	}
}
