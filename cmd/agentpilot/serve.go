package main

import (
	"github.com/spf13/cobra"

	"github.com/hupe1980/agentpilot/logging"
	"github.com/hupe1980/agentpilot/server"
)

var (
	serveHost string
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP transport. Flags override the host and port from
configuration.

Endpoints:
  GET  /api/health
  GET  /api/agents
  GET  /api/prompts/versions
  PUT  /api/prompts/active
  POST /api/invoke        (JSON response, or SSE stream with "stream": true)`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "Bind address (overrides config)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Listen port (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	pilot, cfg, err := loadPilot()
	if err != nil {
		return err
	}

	host := cfg.ServerHost
	if serveHost != "" {
		host = serveHost
	}
	port := cfg.ServerPort
	if servePort != 0 {
		port = servePort
	}

	srv := server.New(pilot.Orchestrator(), func(o *server.Options) {
		o.Host = host
		o.Port = port
		o.Logger = logging.NewLogger(&logging.LoggerConfig{
			Level:  logging.ParseLevel(cfg.LogLevel),
			Format: cfg.LogFormat,
		}).WithComponent("server")
	})
	return srv.ListenAndServe()
}
