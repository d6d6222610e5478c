package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/rezonia/brdoc/internal/config"
	"github.com/rezonia/brdoc/internal/llm"
	"github.com/rezonia/brdoc/internal/logger"
	"github.com/rezonia/brdoc/internal/processor"
)

var (
	version = "1.0.0"

	// Global flags
	verbose        bool
	outputFormat   string
	apiKey         string
	llmBaseURL     string
	llmModel       string
	llmVisionModel string

	appConfig *config.Config
	log       = logger.Discard()
)

var rootCmd = &cobra.Command{
	Use:   "brdoc",
	Short: "Validate Brazilian CPF, CNPJ and boleto identifiers",
	Long: `brdoc validates and converts Brazilian document identifiers.

Supports:
  - CPF and CNPJ check digits, complete or while being typed
  - Bank slip (47 digits) and tax-collection (48 digits) digitable lines
  - Barcode <-> digitable line conversion and field decoding
  - Finding identifiers in text, PDF and image files

Examples:
  # Validate values
  brdoc validate 529.982.247-25 23.106.535/0001-47

  # Validate the first column of a spreadsheet
  brdoc validate --file clientes.xlsx -f table

  # Follow a value keystroke by keystroke
  brdoc check 2379338128 --trace

  # Convert a barcode to its digitable line
  brdoc format 23791987000000100003381260007591540500630620

  # Find identifiers in a PDF, with model fallback
  brdoc extract boleto.pdf --api-key <openrouter-key>`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "format", "f", "json", "Output format (json, yaml, table, csv)")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "API key for LLM provider (env: LLM_API_KEY)")
	rootCmd.PersistentFlags().StringVar(&llmBaseURL, "llm-base-url", "", "LLM API base URL (env: LLM_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&llmModel, "llm-model", "", "LLM model for text extraction (env: LLM_MODEL)")
	rootCmd.PersistentFlags().StringVar(&llmVisionModel, "llm-vision-model", "", "LLM model for vision/image extraction (env: LLM_VISION_MODEL)")
}

// initConfig loads .env and the environment; flags set explicitly win
func initConfig() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	appConfig = cfg

	if apiKey == "" {
		apiKey = cfg.LLM.APIKey
	}
	if llmBaseURL == "" {
		llmBaseURL = cfg.LLM.BaseURL
	}
	if llmModel == "" {
		llmModel = cfg.LLM.Model
	}
	if llmVisionModel == "" {
		llmVisionModel = cfg.LLM.VisionModel
	}

	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	log = logger.New(
		logger.WithOutput(os.Stderr),
		logger.WithFormat(logger.FormatText),
		logger.WithLevel(level),
	)
	return nil
}

// newPipeline builds the extraction pipeline, with the model fallback when
// an API key is configured
func newPipeline() *processor.Pipeline {
	opts := []processor.PipelineOption{processor.WithLogger(log)}

	if apiKey != "" {
		client := llm.NewClient(apiKey,
			llm.WithBaseURL(llmBaseURL),
			llm.WithDefaultModel(llmModel),
		)
		opts = append(opts, processor.WithLLMExtractor(
			llm.NewExtractor(client,
				llm.WithModel(llmModel),
				llm.WithVisionModel(llmVisionModel),
			),
		))
		log.Debug("LLM extraction enabled",
			slog.String("text_model", llmModel),
			slog.String("vision_model", llmVisionModel))
	}

	return processor.NewPipeline(opts...)
}
