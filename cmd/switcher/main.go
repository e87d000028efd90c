package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"joystick.io/fleet-control/pkg/common"
	"joystick.io/fleet-control/pkg/db"
	"joystick.io/fleet-control/pkg/joystick"
	"joystick.io/fleet-control/pkg/remote"
	"joystick.io/fleet-control/pkg/switcher"
)

func main() {
	var err error

	err = godotenv.Load()
	if err != nil {
		log.Fatal("Error loading .env file, copy .env.example to .env first if in development")
	}

	common.SetService("switcher")

	cfg, err := common.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	core := joystick.New(db.GetInstance(db.UseDialector()), cfg)

	server := &switcher.Server{
		Server: gin.Default(),
		Switcher: &switcher.Switcher{
			Joystick: core,
			Paths:    remote.NewMediaMTX(cfg.StreamAPIURL),
		},
	}
	server.Setup()

	hostPort := common.EnvOr(common.EnvKeySwitcherHostPort, ":8080")
	common.GetLoggerWith(common.LoggerNameSwitcher).Info("Starting switcher server on: " + hostPort)
	if err := server.Server.Run(hostPort); err != nil {
		log.Fatalf("switcher server failed to serve: %v", err)
	}
}
