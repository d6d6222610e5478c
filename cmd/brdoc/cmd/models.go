package cmd

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/brdoc/internal/llm"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List available LLM models from API",
	Long: `Fetch and list available LLM models from the configured API endpoint.

This command queries the /models endpoint of your LLM provider to show
all available models. Requires LLM_API_KEY to be set; LLM_BASE_URL defaults
to OpenRouter.

To use a specific model, set the environment variables:
  LLM_MODEL=<model-id>         # For text extraction
  LLM_VISION_MODEL=<model-id>  # For vision/image extraction

Or use CLI flags:
  --llm-model <model-id>
  --llm-vision-model <model-id>`,
	RunE: runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

// modelLister is satisfied by *llm.Client
type modelLister interface {
	ListModels(ctx context.Context) ([]string, error)
}

func runModels(cmd *cobra.Command, args []string) error {
	w := cmd.OutOrStdout()

	baseURL := llmBaseURL
	if baseURL == "" {
		baseURL = llm.DefaultBaseURL
	}
	printModelConfig(w, baseURL)

	if apiKey == "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "LLM_API_KEY is required. Set it via environment variable or --api-key flag.")
		return nil
	}

	fmt.Fprintf(w, "Fetching models from %s/models...\n\n", strings.TrimSuffix(baseURL, "/"))

	client := llm.NewClient(apiKey, llm.WithBaseURL(baseURL), llm.WithTimeout(30*time.Second))
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return listModels(ctx, w, client)
}

func printModelConfig(w io.Writer, baseURL string) {
	fmt.Fprintln(w, "Current Configuration:")
	fmt.Fprintln(w, "----------------------")
	fmt.Fprintf(w, "  LLM_BASE_URL:     %s\n", baseURL)
	fmt.Fprintf(w, "  LLM_MODEL:        %s\n", orNotSet(llmModel))
	fmt.Fprintf(w, "  LLM_VISION_MODEL: %s\n", orNotSet(llmVisionModel))
	fmt.Fprintf(w, "  LLM_API_KEY:      %s\n", maskKey(apiKey))
	fmt.Fprintln(w)
}

func listModels(ctx context.Context, w io.Writer, lister modelLister) error {
	ids, err := lister.ListModels(ctx)
	if err != nil {
		fmt.Fprintf(w, "Could not fetch models: %v\n\n", err)
		fmt.Fprintln(w, "Tip: Your API provider may not support the /models endpoint.")
		fmt.Fprintln(w, "     You can still use models by setting LLM_MODEL and LLM_VISION_MODEL directly.")
		return nil
	}

	if len(ids) == 0 {
		fmt.Fprintln(w, "No models returned from API.")
		return nil
	}

	sort.Strings(ids)

	fmt.Fprintf(w, "Available Models (%d):\n\n", len(ids))
	models := make(modelList, 0, len(ids))
	for _, id := range ids {
		models = append(models, modelEntry{ID: id, Provider: inferProvider(id)})
	}
	return writeTable(w, models)
}

type modelEntry struct {
	ID       string
	Provider string
}

type modelList []modelEntry

func (modelList) header() []string {
	return []string{"MODEL ID", "PROVIDER"}
}

func (ms modelList) rows() [][]string {
	rows := make([][]string, 0, len(ms))
	for _, m := range ms {
		rows = append(rows, []string{m.ID, m.Provider})
	}
	return rows
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func maskKey(key string) string {
	switch {
	case key == "":
		return "Not set"
	case len(key) > 8:
		return "Set (" + key[:8] + "...)"
	default:
		return "Set"
	}
}

// inferProvider tries to infer the provider from model ID
func inferProvider(modelID string) string {
	modelID = strings.ToLower(modelID)
	if prefix, _, ok := strings.Cut(modelID, "/"); ok && prefix != "" {
		return prefix
	}

	switch {
	case strings.Contains(modelID, "claude"):
		return "anthropic"
	case strings.Contains(modelID, "gpt"), strings.HasPrefix(modelID, "o1"):
		return "openai"
	case strings.Contains(modelID, "gemini"):
		return "google"
	case strings.Contains(modelID, "llama"):
		return "meta"
	case strings.Contains(modelID, "mistral"), strings.Contains(modelID, "mixtral"):
		return "mistral"
	case strings.Contains(modelID, "qwen"):
		return "alibaba"
	case strings.Contains(modelID, "deepseek"):
		return "deepseek"
	}
	return "-"
}
