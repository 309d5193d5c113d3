package main

import (
	"Academy/internal/cli"
	"log/slog"
	"os"
)

func main() {
	if err := cli.Execute(); err != nil {
		slog.Error("academy failed", "error", err)
		os.Exit(1)
	}
}
