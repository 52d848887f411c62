package main

import (
	"nyumba/config"
	"nyumba/di"
	"nyumba/shared/logger"
)

// @title Nyumba API
// @version 1.0
// @description Property-booking marketplace API
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name X-API-Key
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
