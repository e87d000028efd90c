package main

import (
	"fmt"
	"log"
	"net"
	"os"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/db"
	joystickGrpc "joystick.io/fleet-control/pkg/grpc"
	joystickHttp "joystick.io/fleet-control/pkg/http"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/remote"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	common.SetService("joystick")

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	dbInstance := db.GetInstance(db.UseDialector())

	grpcHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyGrpcHostPort))
	httpHostPort := strings.TrimSpace(os.Getenv(common.EnvKeyHttpHostPort))

	logger := common.GetLogger()

	core := joystick.New(dbInstance, cfg)
	core.Stream = remote.NewMediaMTX(cfg.StreamAPIURL)

	if cfg.MQTTBroker != "" {
		publisher, err := joystick.NewMQTTPublisher(cfg.MQTTBroker, cfg.MQTTClientID)
		if err != nil {
			log.Fatalf("failed to connect to mqtt broker: %v", err)
		}
		defer publisher.Close()
		core.Events = publisher
		logger.Info("Publishing events to mqtt broker", zap.String("broker", cfg.MQTTBroker))
	}

	core.Hub.Start()
	defer core.Hub.Stop()

	// http and grpc share one limiter per device
	limiterStore := joystick.NewRateLimiterStore(rate.Limit(cfg.DefaultRate), cfg.DefaultBurst)
	limiterField := zap.String("default_limiter",
		fmt.Sprintf("{\"default_rate\": %v, \"default_burst\": %v}", cfg.DefaultRate, cfg.DefaultBurst))

	if grpcHostPort != "" {
		logger.Info("Starting gRPC server on port " + grpcHostPort)
		go func() {
			control := joystickGrpc.DeviceControl{
				Joystick:         core,
				RateLimiterStore: limiterStore,
			}
			s := control.NewServer()
			logger.Info("gRPC server created with:", limiterField)

			listener, err := net.Listen("tcp", grpcHostPort)
			if err != nil {
				log.Fatalf("failed to listen: %v", err)
			}

			logger.Info("start gRPC server on " + grpcHostPort)
			if err := s.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	if httpHostPort == "" {
		// fallback to default http port
		httpHostPort = ":8000"
	}

	rs := &joystickHttp.RestfulServer{
		Server:           gin.Default(),
		Joystick:         core,
		RateLimiterStore: limiterStore,
	}
	rs.Setup()

	logger.Info("http server created with:", limiterField)

	logger.Info("Starting HTTP server on: " + httpHostPort)
	if err := rs.Server.Run(httpHostPort); err != nil {
		log.Fatalf("http server failed to serve: %v", err)
	}
}
