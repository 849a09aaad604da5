package main

import (
	"log"
	"os"
	"time"

	"gopkg.in/urfave/cli.v2"
)

import _ "github.com/joho/godotenv/autoload"

const (
	flagAddr        = "addr"
	flagConcurrency = "concurrency"
	flagRetries     = "retries"
	flagRetryDelay  = "retry-delay"
)

var version = "dev"

var commands = []*cli.Command{
	{
		Name:  "server",
		Usage: "Run the job queue server",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    flagAddr,
				Usage:   "The address for the API server to bind on.",
				Value:   ":8080",
				EnvVars: []string{"QUEUED_ADDR"},
			},
			&cli.IntFlag{
				Name:    flagConcurrency,
				Usage:   "The maximum number of concurrently running jobs.",
				Value:   3,
				EnvVars: []string{"QUEUED_CONCURRENCY"},
			},
			&cli.IntFlag{
				Name:    flagRetries,
				Usage:   "The retry attempts allowed per job after the first failure.",
				Value:   2,
				EnvVars: []string{"QUEUED_RETRIES"},
			},
			&cli.DurationFlag{
				Name:    flagRetryDelay,
				Usage:   "The delay before a failed job is re-queued.",
				Value:   5 * time.Second,
				EnvVars: []string{"QUEUED_RETRY_DELAY"},
			},
		},
		Action: runServer,
	},
}

func newApp() *cli.App {
	return &cli.App{
		Name:     "queued",
		Version:  version,
		Commands: commands,
	}
}

func main() {
	app := newApp()

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
