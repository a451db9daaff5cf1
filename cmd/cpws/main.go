package main

import (
	"os"

	"github.com/99minutos/canadapost-gateway/internal/cli"
)

// @title                       Canada Post Gateway API
// @version                     1.0
// @description                 Rates, tracking and shipment creation on top of the Canada Post web services.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
