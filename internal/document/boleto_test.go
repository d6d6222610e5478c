package document_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/brdoc/internal/document"
	"github.com/rezonia/brdoc/internal/model"
)

const (
	standardLine = "23793381286000759154205006306202198700000010000"
	taxMod10Line = "836600000019234500581231456789012345567890123456"
	taxMod11Line = "818000000012234500581239456789012341567890123457"
)

func validate(t *testing.T, v document.Validator, text string) *model.PartialResult {
	t.Helper()
	r, err := v.ValidateIncremental(text, model.NewPartialResult())
	require.NoError(t, err)
	return r
}

func TestBoleto_CompleteLines(t *testing.T) {
	for _, line := range []string{standardLine, taxMod10Line, taxMod11Line} {
		t.Run(line, func(t *testing.T) {
			r := validate(t, document.Boleto, line)
			assert.True(t, r.StillValid)
			assert.True(t, r.Complete)
			assert.Empty(t, r.Message)
			assert.Equal(t, model.StateComplete, r.State())

			assert.True(t, document.Boleto.IsValid(line))
		})
	}
}

func TestBoleto_GrowingPrefixes(t *testing.T) {
	for _, line := range []string{standardLine, taxMod10Line, taxMod11Line} {
		for n := 1; n < len(line); n++ {
			r := validate(t, document.Boleto, line[:n])
			require.True(t, r.StillValid, "prefix %d of %s", n, line)
			require.False(t, r.Complete, "prefix %d of %s", n, line)
			require.Equal(t, model.StateGrowing, r.State())
			require.Equal(t, n, r.Typed)
		}
	}
}

func TestBoleto_CorruptedFirstBlock(t *testing.T) {
	corrupted := standardLine[:9] + "9" + standardLine[10:]

	for n := 1; n < 10; n++ {
		r := validate(t, document.Boleto, corrupted[:n])
		assert.True(t, r.StillValid, "prefix of %d digits", n)
	}

	for n := 10; n <= len(corrupted); n++ {
		r := validate(t, document.Boleto, corrupted[:n])
		assert.False(t, r.StillValid, "prefix of %d digits", n)
		assert.False(t, r.Complete)
		assert.Equal(t, "first block is invalid", r.Message)
		assert.Equal(t, model.StateInvalid, r.State())
	}
}

func TestBoleto_CorruptedBlocks(t *testing.T) {
	tests := []struct {
		name    string
		line    string
		pos     int
		message string
	}{
		{"standard second", standardLine, 20, "second block is invalid"},
		{"standard third", standardLine, 31, "third block is invalid"},
		{"tax first", taxMod10Line, 11, "first block is invalid"},
		{"tax second", taxMod10Line, 23, "second block is invalid"},
		{"tax third", taxMod11Line, 35, "third block is invalid"},
		{"tax fourth", taxMod11Line, 47, "fourth block is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := []byte(tt.line)
			b[tt.pos] = '0' + (b[tt.pos]-'0'+1)%10
			corrupted := string(b)

			r := validate(t, document.Boleto, corrupted)
			assert.False(t, r.StillValid)
			assert.False(t, r.Complete)
			assert.Equal(t, tt.message, r.Message)

			assert.False(t, document.Boleto.IsValid(corrupted))
		})
	}
}

func TestBoleto_StandardFourthFieldUnchecked(t *testing.T) {
	// the last 15 digits carry no block digit
	changed := standardLine[:40] + "9" + standardLine[41:]
	assert.True(t, document.Boleto.IsValid(changed))
}

func TestBoleto_TaxNeedsSchemeDigit(t *testing.T) {
	for _, prefix := range []string{"8", "83"} {
		r := validate(t, document.Boleto, prefix)
		assert.True(t, r.StillValid)
		assert.False(t, r.Complete)
	}
}

func TestBoleto_Empty(t *testing.T) {
	r := validate(t, document.Boleto, "")
	assert.True(t, r.StillValid)
	assert.False(t, r.Complete)
	assert.Empty(t, r.Message)
	assert.Equal(t, model.StateEmpty, r.State())

	r = validate(t, document.Boleto, "  . ")
	assert.Equal(t, model.StateEmpty, r.State())

	assert.False(t, document.Boleto.IsValid(""))
}

func TestBoleto_Separators(t *testing.T) {
	spaced := "23793.38128 60007.591542 05006.306202 1 98700000010000"
	r := validate(t, document.Boleto, spaced)
	assert.True(t, r.Complete)

	_, err := document.Boleto.ValidateIncremental("23793-38128", model.NewPartialResult())
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidInput)

	_, err = document.Boleto.ValidateIncremental("2379a", model.NewPartialResult())
	assert.ErrorIs(t, err, model.ErrInvalidInput)
}

func TestBoleto_TooLong(t *testing.T) {
	r := validate(t, document.Boleto, standardLine+"0")
	assert.False(t, r.StillValid)
	assert.Contains(t, r.Message, "47")

	r = validate(t, document.Boleto, taxMod10Line+"0")
	assert.False(t, r.StillValid)
	assert.Contains(t, r.Message, "48")
}

func TestBoleto_NilCarry(t *testing.T) {
	_, err := document.Boleto.ValidateIncremental(standardLine, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, model.ErrInvalidArgument)
}

func TestBoleto_CarryIsReset(t *testing.T) {
	carry := model.NewPartialResult()

	corrupted := standardLine[:9] + "9"
	_, err := document.Boleto.ValidateIncremental(corrupted, carry)
	require.NoError(t, err)
	require.False(t, carry.StillValid)

	// the caller fixes the digit and re-validates the full text
	r, err := document.Boleto.ValidateIncremental(standardLine[:10], carry)
	require.NoError(t, err)
	assert.Same(t, carry, r)
	assert.True(t, r.StillValid)
	assert.Empty(t, r.Message)
}

func TestBoleto_LengthBoundaries(t *testing.T) {
	// 46 digits of a valid line are still growing, never complete
	r := validate(t, document.Boleto, standardLine[:46])
	assert.True(t, r.StillValid)
	assert.False(t, r.Complete)

	assert.False(t, document.Boleto.IsValid(standardLine[:46]))
	assert.False(t, document.Boleto.IsValid(strings.Repeat("1", 48)))
}
