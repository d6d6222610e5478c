// Package checksum computes weighted-sum verification digits.
//
// An Engine reads a numeric segment right to left, multiplies each digit by a
// cyclic weight sequence, reduces the sum by a modulus and optionally reports
// the complement or a substituted text. The same engine drives CPF, CNPJ and
// boleto digits.
//
// For the segment 0000039104766 with weights 2 to 7 and modulus 11:
//
//	0  0  0  0  0  3  9  1  0  4  7  6  6   segment
//	2  7  6  5  4  3  2  7  6  5  4  3  2   weights, right to left, cycling
//	0  0  0  0  0  9 18  7  0 20 28 18 12   sum = 112
//
//	112 % 11 = 2, 11 - 2 = 9
package checksum

import (
	"fmt"
	"strconv"

	"github.com/rezonia/brdoc/internal/model"
)

// Default configuration values
const (
	DefaultModulus   = 11
	DefaultMinWeight = 2
	DefaultMaxWeight = 9
)

// Config describes a checksum scheme
type Config struct {
	// Modulus reduces the weighted sum; zero means DefaultModulus
	Modulus int

	// Weights are applied right to left and reused cyclically;
	// empty means DefaultMinWeight..DefaultMaxWeight
	Weights []int

	// SumDigits adds the two digits of each product instead of the product (18 => 9)
	SumDigits bool

	// Complement reports Modulus - remainder instead of the remainder
	Complement bool

	// Substitutions replaces a numeric result with a fixed text
	Substitutions map[int]string
}

// Engine is an immutable, concurrency-safe checksum calculator
type Engine struct {
	modulus       int
	weights       []int
	sumDigits     bool
	complement    bool
	substitutions map[int]string
}

// New builds an engine from cfg, filling defaults for unset fields
func New(cfg Config) (*Engine, error) {
	e := &Engine{
		modulus:    cfg.Modulus,
		sumDigits:  cfg.SumDigits,
		complement: cfg.Complement,
	}

	if e.modulus == 0 {
		e.modulus = DefaultModulus
	}
	if e.modulus < 0 {
		return nil, model.NewFieldError(model.ErrInvalidArgument, "modulus", strconv.Itoa(cfg.Modulus), "must be positive")
	}

	if len(cfg.Weights) == 0 {
		e.weights = Range(DefaultMinWeight, DefaultMaxWeight)
	} else {
		e.weights = append([]int(nil), cfg.Weights...)
	}

	e.substitutions = make(map[int]string, len(cfg.Substitutions))
	for k, v := range cfg.Substitutions {
		e.substitutions[k] = v
	}

	return e, nil
}

// MustNew is like New but panics on an invalid configuration
func MustNew(cfg Config) *Engine {
	e, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return e
}

// Range returns the ascending inclusive weight sequence from..to
func Range(from, to int) []int {
	if to < from {
		return nil
	}
	weights := make([]int, 0, to-from+1)
	for i := from; i <= to; i++ {
		weights = append(weights, i)
	}
	return weights
}

// Substitute maps every given result to text
func Substitute(text string, results ...int) map[int]string {
	subs := make(map[int]string, len(results))
	for _, r := range results {
		subs[r] = text
	}
	return subs
}

// Compute returns the verification digit text for segment.
// An empty segment has sum zero and still goes through modulus, complement
// and substitution.
func (e *Engine) Compute(segment string) (string, error) {
	sum := 0
	w := 0

	for i := len(segment) - 1; i >= 0; i-- {
		c := segment[i]
		if c < '0' || c > '9' {
			return "", model.NewFieldError(model.ErrInvalidInput, "segment", segment,
				fmt.Sprintf("non-digit %q at position %d", c, i))
		}

		product := int(c-'0') * e.weights[w]
		if e.sumDigits {
			product = product/10 + product%10
		}
		sum += product

		w++
		if w == len(e.weights) {
			w = 0
		}
	}

	result := sum % e.modulus
	if e.complement {
		result = e.modulus - result
	}

	if text, ok := e.substitutions[result]; ok {
		return text, nil
	}
	return strconv.Itoa(result), nil
}

// Digit is like Compute but returns the first byte of the result,
// which is what a single check position holds.
func (e *Engine) Digit(segment string) (byte, error) {
	text, err := e.Compute(segment)
	if err != nil {
		return 0, err
	}
	return text[0], nil
}

// Modulus returns the configured modulus
func (e *Engine) Modulus() int {
	return e.modulus
}

// Weights returns a copy of the weight sequence
func (e *Engine) Weights() []int {
	return append([]int(nil), e.weights...)
}
