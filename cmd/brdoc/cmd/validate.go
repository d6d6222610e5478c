package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/rezonia/brdoc/internal/batch"
	"github.com/rezonia/brdoc/internal/processor"
)

var validateFile string

var validateCmd = &cobra.Command{
	Use:   "validate [values...]",
	Short: "Validate CPF, CNPJ and boleto values",
	Long: `Validate one or more values. The kind is picked from the digits:
11 digits are a CPF, 14 a CNPJ, 44 a barcode, 47 or 48 a digitable line.

Values may come from arguments or from a file (--file): the first column of
an .xlsx sheet or a .csv file, or one value per line of any other file.

Checks performed:
  - CPF and CNPJ check digits (repeated-digit numbers are rejected)
  - Every block check digit of a digitable line
  - The general check digit of a barcode

Examples:
  brdoc validate 529.982.247-25
  brdoc validate 23793381286000759154205006306202198700000010000
  brdoc validate --file clientes.csv -f table`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVar(&validateFile, "file", "", "Read values from a .xlsx, .csv or text file")
}

func runValidate(cmd *cobra.Command, args []string) error {
	values := append([]string{}, args...)
	if validateFile != "" {
		fromFile, err := batch.ReadValues(validateFile)
		if err != nil {
			return err
		}
		log.Debug("values read", slog.String("file", validateFile), slog.Int("count", len(fromFile)))
		values = append(values, fromFile...)
	}

	if len(values) == 0 {
		return fmt.Errorf("no values to validate")
	}

	results := validateValues(values, time.Now())
	if err := writeOutput(cmd.OutOrStdout(), results); err != nil {
		return err
	}

	if invalid := results.invalid(); invalid > 0 {
		return fmt.Errorf("%d of %d values are invalid", invalid, len(results))
	}
	return nil
}

func validateValues(values []string, ref time.Time) findingList {
	results := make(findingList, 0, len(values))
	for _, v := range values {
		results = append(results, processor.Check(v, ref))
	}
	return results
}

// findingList renders validation verdicts
type findingList []processor.Finding

func (l findingList) invalid() int {
	n := 0
	for _, f := range l {
		if !f.Valid {
			n++
		}
	}
	return n
}

func (findingList) header() []string {
	return []string{"VALUE", "KIND", "VALID", "FORMATTED", "MESSAGE"}
}

func (l findingList) rows() [][]string {
	rows := make([][]string, 0, len(l))
	for _, f := range l {
		rows = append(rows, []string{
			strings.TrimSpace(f.Value),
			string(f.Kind),
			yesNo(f.Valid),
			f.Formatted,
			f.Message,
		})
	}
	return rows
}
