package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"gopkg.in/yaml.v3"
)

// tabular is implemented by results that also render as rows
type tabular interface {
	header() []string
	rows() [][]string
}

// writeOutput renders v in the selected output format
func writeOutput(w io.Writer, v tabular) error {
	switch outputFormat {
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		return encoder.Encode(v)
	case "yaml":
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(v); err != nil {
			return err
		}
		return encoder.Close()
	case "table":
		return writeTable(w, v)
	case "csv":
		return writeCSV(w, v)
	default:
		return fmt.Errorf("unsupported output format: %s", outputFormat)
	}
}

func writeTable(w io.Writer, v tabular) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	header := v.header()
	dashes := make([]string, len(header))
	for i, h := range header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(header, "\t"))
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))

	for _, row := range v.rows() {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func writeCSV(w io.Writer, v tabular) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(lower(v.header())); err != nil {
		return err
	}
	if err := cw.WriteAll(v.rows()); err != nil {
		return err
	}
	return cw.Error()
}

func lower(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToLower(s)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
