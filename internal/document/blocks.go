package document

import (
	"github.com/rezonia/brdoc/internal/checksum"
	"github.com/rezonia/brdoc/internal/model"
)

// block is a checksum-protected span: value[start:end-1] is summed and
// value[end-1] holds its digit.
type block struct {
	start int
	end   int
	label string
}

// checkBlocks validates blocks in order and reports whether all of them
// could be judged and passed. It stops at the first block that is still
// being typed (leaving the result valid) or that fails (invalidating it).
func checkBlocks(value string, blocks []block, engine *checksum.Engine, r *model.PartialResult) (bool, error) {
	for _, b := range blocks {
		if len(value) < b.end {
			r.StillValid = true
			return false, nil
		}

		digit, err := engine.Digit(value[b.start : b.end-1])
		if err != nil {
			return false, err
		}

		if digit != value[b.end-1] {
			r.Invalidate(b.label + " is invalid")
			return false, nil
		}
	}
	return true, nil
}

func prepare(carry *model.PartialResult) error {
	if carry == nil {
		return model.NewFieldError(model.ErrInvalidArgument, "result", "", "partial result must not be nil")
	}
	carry.Reset()
	return nil
}
