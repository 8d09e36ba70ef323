package main

import (
	"log"
	"os"

	"github.com/avstrong/campsite/internal/app"
	"github.com/avstrong/campsite/internal/config"
	"github.com/avstrong/campsite/internal/logger"
)

func main() {
	conf, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	l := logger.New(logger.Config{Level: conf.Log.Level, File: conf.Log.File})

	var exitCode int

	if err := app.Run(conf, l); err != nil {
		l.LogErrorf("Failed to run app: %v", err.Error())

		exitCode = 1
	}

	if err := l.Close(); err != nil {
		log.Printf("Failed to close logger: %v", err)
	}

	os.Exit(exitCode)
}
