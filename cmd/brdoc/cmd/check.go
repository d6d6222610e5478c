package cmd

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/model"
)

var (
	checkKind  string
	checkTrace bool
)

var checkCmd = &cobra.Command{
	Use:   "check <value>",
	Short: "Validate a value that may still be incomplete",
	Long: `Run the incremental validator on a value, the way an input field does
while it is being typed. The verdict is one of:

  empty     nothing typed yet
  growing   every check digit typed so far is correct
  invalid   a check digit is wrong (the message says which)
  complete  all digits typed and correct

With --trace the verdict is printed after every typed character.

Examples:
  brdoc check 529.982
  brdoc check 23793.38128 --kind boleto
  brdoc check 52998224725 --trace -f table`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&checkKind, "kind", "auto", "Validator: auto, cpf, cnpj, cpfcnpj or boleto")
	checkCmd.Flags().BoolVar(&checkTrace, "trace", false, "Print the verdict after every typed character")
}

func runCheck(cmd *cobra.Command, args []string) error {
	steps, err := checkValue(args[0], checkKind, checkTrace)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), steps)
}

// checkValue runs the incremental validator over value, or over each of its
// prefixes when trace is set
func checkValue(value, kind string, trace bool) (checkSteps, error) {
	kind = strings.ToLower(kind)
	if kind == "auto" || kind == "" {
		kind = document.Guess(value)
	}
	v, ok := document.Named(kind)
	if !ok {
		return nil, model.NewFieldError(model.ErrInvalidArgument, "kind", kind, "unknown validator")
	}

	prefixes := []string{value}
	if trace {
		prefixes = prefixes[:0]
		for i := range value {
			if i > 0 {
				prefixes = append(prefixes, value[:i])
			}
		}
		prefixes = append(prefixes, value)
	}

	// one carry reused across the whole trace
	carry := model.NewPartialResult()
	steps := make(checkSteps, 0, len(prefixes))
	for _, p := range prefixes {
		r, err := v.ValidateIncremental(p, carry)
		if err != nil {
			return nil, err
		}
		steps = append(steps, checkStep{
			Input:      p,
			Kind:       kind,
			State:      r.State(),
			StillValid: r.StillValid,
			Complete:   r.Complete,
			Message:    r.Message,
			Typed:      r.Typed,
		})
	}
	return steps, nil
}

type checkStep struct {
	Input      string      `json:"input" yaml:"input"`
	Kind       string      `json:"kind" yaml:"kind"`
	State      model.State `json:"state" yaml:"state"`
	StillValid bool        `json:"still_valid" yaml:"still_valid"`
	Complete   bool        `json:"complete" yaml:"complete"`
	Message    string      `json:"message,omitempty" yaml:"message,omitempty"`
	Typed      int         `json:"typed" yaml:"typed"`
}

type checkSteps []checkStep

func (checkSteps) header() []string {
	return []string{"INPUT", "TYPED", "STATE", "MESSAGE"}
}

func (s checkSteps) rows() [][]string {
	rows := make([][]string, 0, len(s))
	for _, st := range s {
		rows = append(rows, []string{st.Input, strconv.Itoa(st.Typed), string(st.State), st.Message})
	}
	return rows
}
