package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/membercms/authsvc/internal/app"
	"github.com/membercms/authsvc/internal/config"
)

func main() {
	_ = godotenv.Load()

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := app.Run(cfg); err != nil {
		log.Fatalf("app: %v", err)
	}
}
