package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/KouSug/G-I-buildcard/internal/app"
	"github.com/KouSug/G-I-buildcard/internal/config"
)

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := app.Run(context.Background(), cfg, log); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
