package language

import (
	"github.com/vkarel/lrx"
	"github.com/vkarel/lrx/grammar"
)

func notGrammarFrameError(cause error) *lrx.Error {
	return lrx.FormatError(grammar.NotGrammarError, "blob is not a valid compressed grammar table: %s", cause.Error())
}

func oversizeFrameError(limit int) *lrx.Error {
	return lrx.FormatError(grammar.CorruptTableError, "compressed table expands beyond the %d byte limit", limit)
}
