package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/pageza/caloria/backend/internal/client"
	"github.com/pageza/caloria/backend/internal/logger"
)

func main() {
	_ = godotenv.Load()

	defaultServer := os.Getenv("CALORIA_SERVER_URL")
	if defaultServer == "" {
		defaultServer = client.DefaultServerURL
	}

	// Parse command line flags
	serverURL := flag.String("server", defaultServer, "Base URL of the CalorIA API")
	timeout := flag.Duration("timeout", client.DefaultTimeout, "Timeout for the analysis request")
	sourceFlag := flag.String("source", string(client.SourceGallery), "Where the photo came from: camera or gallery")
	verbose := flag.Bool("v", false, "Log request details")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: caloria [flags] <image>\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		logger.Init("debug")
	} else {
		logger.Init("warn")
	}
	logger.SetOutput(os.Stderr)

	source, err := client.ParseSource(*sourceFlag)
	if err != nil {
		logger.WithError(err).Fatal("Invalid -source")
	}

	session := client.NewSession(client.NewRelayClient(*serverURL, *timeout))
	if err := session.SelectImage(source, flag.Arg(0)); err != nil {
		logger.WithError(err).WithField("path", flag.Arg(0)).Fatal("Failed to load image")
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	start := time.Now()
	result, err := session.RequestAnalysis(ctx)
	logger.WithField("server", *serverURL).WithField("latency_ms", time.Since(start).Milliseconds()).Debug("Analysis request finished")
	if err != nil {
		logger.WithError(err).Debug("Analysis failed")
		_ = client.RenderError(os.Stderr, session.Snapshot().Error)
		os.Exit(1)
	}

	if err := client.RenderResult(os.Stdout, result); err != nil {
		logger.WithError(err).Fatal("Failed to write result")
	}
}
