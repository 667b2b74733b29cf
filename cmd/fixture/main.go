package main

import (
	"flag"
	"fmt"
	"os"

	"energy-report/internal/config"
	"energy-report/internal/fixture"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	dataDir := flag.String("data", "", "Override fixture data directory")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logrus.Fatalf("loading config: %v", err)
	}
	if *dataDir != "" {
		cfg.Fixture.DataDir = *dataDir
	}

	store, err := fixture.Load(cfg.Fixture.DataDir, cfg.Fixture.CarbonRates)
	if err != nil {
		logrus.Fatalf("loading fixture data: %v", err)
	}

	if os.Getenv("API_ENV") == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := fixture.Router(store)

	addr := fmt.Sprintf(":%d", cfg.Fixture.Port)
	logrus.Infof("fixture report API listening on %s (data: %s)", addr, cfg.Fixture.DataDir)
	if err := router.Run(addr); err != nil {
		logrus.Fatalf("server failed: %v", err)
	}
}
