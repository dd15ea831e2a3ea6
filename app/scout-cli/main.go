package main

import (
	"context"
	"os"
	"scoutIO/app/scout-cli/commands"
	"scoutIO/pkg/logger"
)

func main() {
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	commands.ExecuteContext(context.Background())
}
