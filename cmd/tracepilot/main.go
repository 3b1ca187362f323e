// Command tracepilot runs the MEV analytics engine: `run` drives the block
// pipeline (tracing through bundle composition and persistence), `db`
// inspects the on-disk store out of band. Flag wiring follows
// cmd/abigen's urfave/cli/v2 shape.
package main

import (
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/urfave/cli/v2"
)

var dbPathFlag = &cli.StringFlag{
	Name:     "tracepilot-db-path",
	Usage:    "Path to the engine's embedded store directory",
	EnvVars:  []string{"TRACEPILOT_DB_PATH"},
	Required: true,
}

var metricsPortFlag = &cli.IntFlag{
	Name:  "metrics-port",
	Usage: "Port to serve the Prometheus scrape endpoint on, when --with-metrics is set",
	Value: 6923,
}

var verbosityFlag = &cli.IntFlag{
	Name:    "verbosity",
	Aliases: []string{"v"},
	Usage:   "Log verbosity: 0=crit 1=error 2=warn 3=info 4=debug 5=trace",
	Value:   3,
}

func buildApp() *cli.App {
	app := &cli.App{
		Name:  "tracepilot",
		Usage: "Ethereum MEV trace analytics engine",
		Flags: []cli.Flag{
			dbPathFlag,
			metricsPortFlag,
			verbosityFlag,
		},
		Commands: []*cli.Command{
			runCommand,
			dbCommand,
		},
		Before: func(c *cli.Context) error {
			handler := log.NewTerminalHandlerWithLevel(colorable.NewColorableStderr(), verbosityToLevel(c.Int(verbosityFlag.Name)), true)
			log.SetDefault(log.NewLogger(handler))
			return nil
		},
	}
	return app
}

// verbosityToLevel maps the -v/--verbosity flag's 0..5 scale onto the
// log package's level constants, geth-CLI style.
func verbosityToLevel(v int) log.Level {
	switch {
	case v <= 0:
		return log.LevelCrit
	case v == 1:
		return log.LevelError
	case v == 2:
		return log.LevelWarn
	case v == 3:
		return log.LevelInfo
	case v == 4:
		return log.LevelDebug
	default:
		return log.LevelTrace
	}
}

func main() {
	if err := buildApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
