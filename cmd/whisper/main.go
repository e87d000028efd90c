package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/remote"
	"joystick.io/fleet-control/pkg/whisper"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	common.SetService("whisper")

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	gateway := remote.NewSMSGateway(cfg.SMSGatewayURL, cfg.SMSGatewayUsername, cfg.SMSGatewayPassword, cfg.SMSGatewayModem)

	server := &whisper.Server{
		Server:  gin.Default(),
		Whisper: whisper.New(gateway, cfg.SMSReplyTimeout),
	}
	server.Setup()

	hostPort := common.EnvOr(common.EnvKeyWhisperHostPort, ":8081")
	common.GetLoggerWith(common.LoggerNameWhisper).Info("Starting whisper server on: " + hostPort)
	if err := server.Server.Run(hostPort); err != nil {
		log.Fatalf("whisper server failed to serve: %v", err)
	}
}
