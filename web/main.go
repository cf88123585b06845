package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/df07/go-sky-compositor/pkg/config"
	"github.com/df07/go-sky-compositor/web/server"
	"go.uber.org/zap"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	configPath := flag.String("config", "", "Path to YAML config file")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	cfg := config.Default()
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
		if err != nil {
			logger.Fatal("Error loading config", zap.Error(err))
		}
	}

	webServer := server.NewServer(*port, cfg, logger)

	logger.Info("Sky Compositor Web Server",
		zap.Int("port", *port),
		zap.String("url", fmt.Sprintf("http://localhost:%d/api/composite", *port)))

	if err := webServer.Start(); err != nil {
		logger.Fatal("Error starting server", zap.Error(err))
	}
}
