package grammar

import (
	"github.com/vkarel/lrx"
)

// Error codes used by table blob loading:
const (
	// TruncatedError indicates that a blob is shorter than the fixed header.
	TruncatedError = lrx.TableErrors + iota

	// NotGrammarError indicates that the magic marker does not match.
	NotGrammarError

	// VersionError indicates a recognized format of an unsupported version.
	VersionError

	// CorruptTableError indicates a structurally invalid table body.
	CorruptTableError
)

func truncatedError(size int) *lrx.Error {
	return lrx.FormatError(TruncatedError, "table blob is %d bytes, shorter than the %d byte header", size, HeaderSize)
}

func notGrammarError() *lrx.Error {
	return lrx.FormatError(NotGrammarError, "blob does not start with the %q grammar table marker", Magic)
}

func versionError(found int) *lrx.Error {
	return lrx.FormatError(VersionError, "table format version %d is unsupported, supported range is [%d, %d]", found, MinVersion, MaxVersion)
}

func corruptTableError(detail string, params ...any) *lrx.Error {
	return lrx.FormatError(CorruptTableError, "corrupt table: "+detail, params...)
}
