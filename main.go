package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/logrusorgru/aurora"
	"github.com/lukehollenback/bitsane/cli"
	"github.com/lukehollenback/bitsane/config"
	"github.com/lukehollenback/bitsane/constants"
	"github.com/lukehollenback/bitsane/exchange/bitsane"
	"github.com/lukehollenback/bitsane/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	//
	// Load configuration. A .env file is optional.
	//
	dotenvErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s %s\n", aurora.Bold(aurora.Red("config error:")), err)
		return cli.ExitUsage
	}

	log := logger.New(logger.Options{
		ServiceName: constants.AppName,
		Level:       logger.ParseLevel(cfg.LogLevel),
		Console:     cfg.LogFormat == config.LogFormatConsole,
	})

	if dotenvErr != nil {
		log.Debug().Err(dotenvErr).Msg(".env file not loaded, relying on environment")
	}

	//
	// Cancel the in-flight request if the operating system interrupts us.
	//
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := bitsane.NewClient(
		cfg.APIKey,
		cfg.APISecret,
		bitsane.WithBaseURL(cfg.BaseURL),
		bitsane.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		bitsane.WithLogger(log),
	)

	return cli.Run(ctx, os.Args[1:], cli.Env{
		Client:        client,
		Authenticated: cfg.HasCredentials(),
		Out:           os.Stdout,
		Err:           os.Stderr,
		Logger:        log,
	})
}
