package cmd

import (
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/brdoc/internal/logger"
	"github.com/rezonia/brdoc/internal/server"
)

var (
	serverAddr   string
	serverDebug  bool
	readTimeout  time.Duration
	writeTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start an HTTP API server for validation and extraction.

The API provides endpoints for:
  - POST /api/v1/validate              - Validate one or more values
  - POST /api/v1/validate/incremental  - Judge a value being typed
  - POST /api/v1/boleto/format         - Barcode to digitable line
  - POST /api/v1/boleto/deformat       - Digitable line to barcode
  - POST /api/v1/boleto/info           - Decode slip fields
  - POST /api/v1/extract               - Find identifiers in a document
  - GET  /health                       - Health check

Settings not given as flags are read from BRDOC_ADDRESS, BRDOC_READ_TIMEOUT,
BRDOC_WRITE_TIMEOUT, BRDOC_DEBUG, BRDOC_LOG_LEVEL and BRDOC_LOG_FORMAT.

Examples:
  # Start server on default port
  brdoc serve

  # Start on custom port with API key
  brdoc serve --address :8080 --api-key <key>

  # Start in debug mode
  brdoc serve --debug`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serverAddr, "address", ":8080", "Server listen address")
	serveCmd.Flags().BoolVar(&serverDebug, "debug", false, "Enable debug mode")
	serveCmd.Flags().DurationVar(&readTimeout, "read-timeout", 30*time.Second, "HTTP read timeout")
	serveCmd.Flags().DurationVar(&writeTimeout, "write-timeout", 2*time.Minute, "HTTP write timeout")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := serverConfig(cmd)

	level, err := logger.ParseLevel(appConfig.Log.Level)
	if err != nil {
		return err
	}
	if verbose {
		level = slog.LevelDebug
	}
	serverLog := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(logger.Format(appConfig.Log.Format)),
	)

	srv := server.NewServer(config, server.WithLogger(serverLog))
	return srv.Run(cmd.Context())
}

// serverConfig merges flags with the environment; flags set explicitly win
func serverConfig(cmd *cobra.Command) *server.Config {
	env := appConfig.Server
	flags := cmd.Flags()

	config := &server.Config{
		Address:        env.Address,
		ReadTimeout:    env.ReadTimeout,
		WriteTimeout:   env.WriteTimeout,
		Debug:          env.Debug,
		APIKey:         apiKey,
		LLMBaseURL:     llmBaseURL,
		LLMModel:       llmModel,
		LLMVisionModel: llmVisionModel,
	}
	if flags.Changed("address") {
		config.Address = serverAddr
	}
	if flags.Changed("debug") {
		config.Debug = serverDebug
	}
	if flags.Changed("read-timeout") {
		config.ReadTimeout = readTimeout
	}
	if flags.Changed("write-timeout") {
		config.WriteTimeout = writeTimeout
	}
	return config
}
