package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/brdoc/internal/processor"
)

var (
	outputFile     string
	extractTimeout time.Duration
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Find and validate identifiers in documents",
	Long: `Find CPF, CNPJ, digitable lines and barcodes in files and validate them.

Supported formats:
  - Text: .txt, .csv, .md
  - PDF: .pdf
  - Images: .png, .jpg, .jpeg, .gif, .webp, .tiff

The extraction flow:
  1. Text and PDF files: pattern scan of the text (no API key needed)
  2. Nothing found: LLM text extraction (requires API key)
  3. Images: LLM vision extraction (requires API key)

Examples:
  brdoc extract boleto.pdf
  brdoc extract scans/ --api-key <key> -f table
  brdoc extract *.pdf -o results.json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file (default: stdout)")
	extractCmd.Flags().DurationVar(&extractTimeout, "timeout", 2*time.Minute, "Processing timeout per file")
}

func runExtract(cmd *cobra.Command, args []string) error {
	files, err := collectFiles(args)
	if err != nil {
		return err
	}

	if len(files) == 0 {
		return fmt.Errorf("no files found to process")
	}

	log.Debug("files collected", slog.Int("count", len(files)))

	pipeline := newPipeline()
	results := make(extractResults, 0, len(files))
	for _, file := range files {
		result := extractFile(cmd.Context(), pipeline, file)
		if result.Error != "" {
			log.Warn("extraction failed", slog.String("file", file), slog.String("error", result.Error))
		} else {
			log.Debug("extracted", slog.String("file", file),
				slog.String("method", result.Method), slog.Float64("confidence", result.Confidence))
		}
		results = append(results, result)
	}

	w := cmd.OutOrStdout()
	if outputFile != "" {
		f, err := os.Create(outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer f.Close()
		w = f
	}
	return writeOutput(w, results)
}

func collectFiles(args []string) ([]string, error) {
	var files []string

	for _, arg := range args {
		matches, err := filepath.Glob(arg)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %s: %w", arg, err)
		}
		if len(matches) == 0 {
			if _, err := os.Stat(arg); err != nil {
				return nil, fmt.Errorf("file not found: %s", arg)
			}
			matches = []string{arg}
		}

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				continue
			}

			if info.IsDir() {
				err := filepath.Walk(match, func(path string, info os.FileInfo, err error) error {
					if err != nil {
						return err
					}
					if !info.IsDir() && isSupportedFile(path) {
						files = append(files, path)
					}
					return nil
				})
				if err != nil {
					return nil, err
				}
				continue
			}

			// explicit names are taken as given, patterns only pick known types
			if match == arg || isSupportedFile(match) {
				files = append(files, match)
			}
		}
	}

	return files, nil
}

func isSupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".csv", ".md", ".pdf", ".png", ".jpg", ".jpeg", ".gif", ".webp", ".tiff", ".tif":
		return true
	default:
		return false
	}
}

func extractFile(ctx context.Context, pipeline *processor.Pipeline, path string) *extractResult {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, extractTimeout)
	defer cancel()

	result := &extractResult{File: path}

	r := pipeline.ProcessFile(ctx, path)
	if r.Error != nil {
		result.Error = r.Error.Error()
		return result
	}

	result.Findings = r.Findings
	result.Method = string(r.Method)
	result.Confidence = r.Confidence
	result.Warnings = r.Warnings
	return result
}

// extractResult holds the result of processing a single file
type extractResult struct {
	File       string              `json:"file" yaml:"file"`
	Findings   []processor.Finding `json:"findings,omitempty" yaml:"findings,omitempty"`
	Method     string              `json:"method,omitempty" yaml:"method,omitempty"`
	Confidence float64             `json:"confidence,omitempty" yaml:"confidence,omitempty"`
	Warnings   []string            `json:"warnings,omitempty" yaml:"warnings,omitempty"`
	Error      string              `json:"error,omitempty" yaml:"error,omitempty"`
}

type extractResults []*extractResult

func (extractResults) header() []string {
	return []string{"FILE", "VALUE", "KIND", "VALID", "METHOD", "CONFIDENCE", "ERROR"}
}

func (rs extractResults) rows() [][]string {
	var rows [][]string
	for _, r := range rs {
		if r.Error != "" {
			rows = append(rows, []string{r.File, "", "", "", "", "", r.Error})
			continue
		}
		confidence := strconv.FormatFloat(r.Confidence, 'f', 2, 64)
		if len(r.Findings) == 0 {
			rows = append(rows, []string{r.File, "", "", "", r.Method, confidence, ""})
			continue
		}
		for _, f := range r.Findings {
			rows = append(rows, []string{r.File, f.Value, string(f.Kind), yesNo(f.Valid), r.Method, confidence, f.Message})
		}
	}
	return rows
}
