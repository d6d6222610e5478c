package brdoc_test

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rezonia/brdoc/pkg/brdoc"
)

const (
	bankBarcode = "23791987000000100003381260007591540500630620"
	bankLine    = "23793381286000759154205006306202198700000010000"
)

func TestNewDefaultProcessor(t *testing.T) {
	proc := brdoc.NewDefaultProcessor()
	require.NotNil(t, proc)
}

func TestDefaultOptions(t *testing.T) {
	opts := brdoc.DefaultOptions()

	assert.Equal(t, 0.70, opts.ReviewThreshold)
	assert.True(t, opts.EnableLLM)
	assert.Equal(t, 4, opts.Workers)
	assert.Equal(t, "https://openrouter.ai/api/v1", opts.LLMBaseURL)
	assert.Equal(t, "openai/gpt-4o-mini", opts.LLMModel)
	assert.Equal(t, "openai/gpt-4o", opts.LLMVisionModel)
}

func TestProcessorProcess_Text(t *testing.T) {
	proc := brdoc.NewProcessor(brdoc.DefaultOptions())

	text := "Pagador: 529.982.247-25\nLinha: 23793.38128 60007.591542 05006.306202 1 98700000010000\n"
	result, err := proc.Process(context.Background(), strings.NewReader(text))
	require.NoError(t, err)

	require.Len(t, result.Findings, 2)
	assert.Len(t, result.Valid(), 2)
	assert.Equal(t, "scan", result.Method)
	assert.Equal(t, 1.0, result.Confidence)
	assert.False(t, result.NeedsReview)
}

func TestProcessorProcess_NeedsReview(t *testing.T) {
	proc := brdoc.NewProcessor(brdoc.DefaultOptions())

	result, err := proc.ProcessText(context.Background(), "CPF 529.982.247-25 e 111.444.777-00")
	require.NoError(t, err)
	require.Len(t, result.Findings, 2)
	assert.Len(t, result.Valid(), 1)
	assert.Equal(t, 0.5, result.Confidence)
	assert.True(t, result.NeedsReview)
	assert.NotEmpty(t, result.Warnings)
}

func TestProcessorProcessImage_NoLLM(t *testing.T) {
	opts := brdoc.DefaultOptions()
	opts.EnableLLM = false
	proc := brdoc.NewProcessor(opts)

	_, err := proc.ProcessImage(context.Background(), []byte{0x89, 'P', 'N', 'G'}, "image/png")
	assert.Error(t, err)
}

func TestProcessorProcess_Unsupported(t *testing.T) {
	proc := brdoc.NewDefaultProcessor()

	_, err := proc.Process(context.Background(), strings.NewReader(""))
	assert.Error(t, err)
}

func TestProcessorProcessBatch(t *testing.T) {
	opts := brdoc.DefaultOptions()
	opts.Workers = 2
	proc := brdoc.NewProcessor(opts)

	inputs := []io.Reader{
		strings.NewReader("CNPJ 23.106.535/0001-47"),
		strings.NewReader("linha " + bankLine),
		strings.NewReader("CPF 529.982.247-25"),
	}
	results, err := proc.ProcessBatch(context.Background(), inputs)
	require.NoError(t, err)
	require.Len(t, results, 3)

	assert.Equal(t, brdoc.KindCNPJ, results[0].Findings[0].Kind)
	assert.Equal(t, brdoc.KindBoleto, results[1].Findings[0].Kind)
	assert.Equal(t, brdoc.KindCPF, results[2].Findings[0].Kind)
}

func TestProcessorProcessBatch_Error(t *testing.T) {
	proc := brdoc.NewDefaultProcessor()

	inputs := []io.Reader{
		strings.NewReader("CPF 529.982.247-25"),
		strings.NewReader(""),
	}
	results, err := proc.ProcessBatch(context.Background(), inputs)
	assert.Error(t, err)
	require.Len(t, results, 2)
	assert.NotNil(t, results[0])
	assert.Nil(t, results[1])
}
