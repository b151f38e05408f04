package grammar

import (
	"encoding/binary"
)

// Magic is the four byte marker every uncompressed table blob starts with.
const Magic = "LRXG"

// HeaderSize is the fixed size of the blob header in bytes.
const HeaderSize = 32

// Table blob format versions:
const (
	// MinVersion is the oldest format version this runtime accepts.
	// Version 1 tables carry no field name section.
	MinVersion = 1

	// MaxVersion is the newest format version this runtime accepts.
	MaxVersion = 2

	// Version is the format version written by Encode.
	Version = 2
)

// Header holds the decoded fixed-size blob header.
type Header struct {
	Version      int
	TermCount    int
	NonTermCount int
	RuleCount    int
	StateCount   int
	FieldCount   int
}

// ParseHeader validates the fixed-size header of an uncompressed table blob.
// Checks are ordered: length, magic marker, version, header consistency.
// No table body bytes are read.
func ParseHeader(blob []byte) (Header, error) {
	var h Header
	if len(blob) < HeaderSize {
		return h, truncatedError(len(blob))
	}
	if string(blob[:4]) != Magic {
		return h, notGrammarError()
	}

	version := int(binary.LittleEndian.Uint32(blob[4:]))
	if version < MinVersion || version > MaxVersion {
		return h, versionError(version)
	}

	h.Version = version
	h.TermCount = int(binary.LittleEndian.Uint32(blob[8:]))
	h.NonTermCount = int(binary.LittleEndian.Uint32(blob[12:]))
	h.RuleCount = int(binary.LittleEndian.Uint32(blob[16:]))
	h.StateCount = int(binary.LittleEndian.Uint32(blob[20:]))
	h.FieldCount = int(binary.LittleEndian.Uint32(blob[24:]))

	if binary.LittleEndian.Uint32(blob[28:]) != 0 {
		return h, corruptTableError("reserved header bytes are not zero")
	}
	if h.Version == 1 && h.FieldCount != 0 {
		return h, corruptTableError("version 1 table declares %d field names", h.FieldCount)
	}

	return h, nil
}
