package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"google.golang.org/grpc"

	"joystick.io/fleet-control/pkg/baker"
	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/db"
	joystickGrpc "joystick.io/fleet-control/pkg/grpc"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/remote"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	common.SetService("baker")

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := common.GetLoggerWith(common.LoggerNameBaker)

	core := joystick.New(db.GetInstance(db.UseDialector()), cfg)
	core.Stream = remote.NewMediaMTX(cfg.StreamAPIURL)

	// mode changes go through the joystick api, over grpc when an address is set
	var switcher baker.ModeSwitcher = remote.NewJoystickClient(cfg.JoystickAPIURL, cfg.APIKey)
	if grpcAddr := common.EnvOr(common.EnvKeyJoystickGrpcAddr, ""); grpcAddr != "" {
		conn, err := grpc.Dial(grpcAddr, grpc.WithInsecure())
		if err != nil {
			log.Fatalf("failed to dial joystick grpc: %v", err)
		}
		defer conn.Close()
		switcher = joystickGrpc.NewDeviceControlClient(conn, cfg.APIKey)
		logger.Info("Switching modes over gRPC", zap.String("addr", grpcAddr))
	}

	b := baker.New(core, switcher)
	defer b.Close()

	if err := b.Init(context.Background()); err != nil {
		log.Fatal(err)
	}
	b.StartStatusSync()

	hostPort := common.EnvOr(common.EnvKeyBakerHostPort, ":3000")
	server := &baker.Server{Server: gin.Default(), Baker: b}
	server.Setup()

	logger.Info("Starting baker server on: " + hostPort)
	if err := server.Server.Run(hostPort); err != nil {
		log.Fatalf("baker server failed to serve: %v", err)
	}
}
