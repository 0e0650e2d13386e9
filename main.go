package main

import (
	"errors"
	"io/fs"
	"log"

	"github.com/joho/godotenv"

	"localtrack/cmd"
)

func main() {
	// .env may set LOCALTRACK_* overrides before viper reads the environment
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("Warning: Could not load .env file: %v", err)
	}

	cmd.Execute()
}
