package parser

import (
	"github.com/vkarel/lrx"
	"github.com/vkarel/lrx/source"
)

// Error codes used by parser:
const (
	// CancelledError indicates that a cooperative cancellation flag was
	// observed between engine steps.
	CancelledError = lrx.ParseErrors + iota

	// StepLimitError indicates that the step budget was exhausted.
	StepLimitError
)

func cancelledError(src *source.Source, pos int) *lrx.Error {
	return lrx.FormatErrorPos(source.MakePos(src, pos), CancelledError, "parse cancelled")
}

func stepLimitError(src *source.Source, pos, limit int) *lrx.Error {
	return lrx.FormatErrorPos(source.MakePos(src, pos), StepLimitError, "parse exceeded the budget of %d steps", limit)
}
