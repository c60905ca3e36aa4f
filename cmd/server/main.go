// Package main provides the emoscope analysis server entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/lukawang/emoscope-go/internal/config"
	"github.com/lukawang/emoscope-go/internal/container"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	c, err := container.Initialize(context.Background(), cfg)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}

	if err := container.NewApplication(c).Run(); err != nil {
		os.Exit(1)
	}
}
