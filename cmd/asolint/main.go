package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/joho/godotenv"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/cmd"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Optional .env for API keys; absence is fine.
	_ = godotenv.Load()

	err := fang.Execute(context.Background(), cmd.RootCmd)

	// The notice prints whether or not the command itself succeeded.
	cmd.ShowUpdateNoticeIfAvailable()

	if err != nil {
		return 1
	}
	return 0
}
