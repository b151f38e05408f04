package lrx_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/vkarel/lrx"
	"github.com/vkarel/lrx/internal/test"
)

type errPos struct {
	name      string
	line, col int
}

func (p errPos) SourceName() string { return p.name }
func (p errPos) Line() int          { return p.line }
func (p errPos) Col() int           { return p.col }

func TestFormatError(t *testing.T) {
	e := lrx.FormatError(lrx.TableErrors, "bad %q", "blob")
	test.ExpectInt(t, lrx.TableErrors, e.Code)
	test.ExpectStr(t, `bad "blob"`, e.Error())
	test.ExpectStr(t, "", e.SourceName)
	test.ExpectInt(t, 0, e.Line)

	// literal percent signs survive when there are no params
	test.ExpectStr(t, "100%", lrx.FormatError(1, "100%").Error())
}

func TestFormatErrorPos(t *testing.T) {
	e := lrx.FormatErrorPos(errPos{"conf", 3, 7}, lrx.GenErrors, "unexpected %q", ";")
	test.ExpectStr(t, `unexpected ";" (conf:3:7)`, e.Error())
	test.ExpectStr(t, "conf", e.SourceName)
	test.ExpectInt(t, 3, e.Line)
	test.ExpectInt(t, 7, e.Col)

	e = lrx.FormatErrorPos(errPos{"", 3, 7}, lrx.GenErrors, "unexpected input")
	test.ExpectStr(t, "unexpected input (input:3:7)", e.Error())

	// unknown position leaves the message bare
	e = lrx.FormatErrorPos(errPos{"conf", 0, 0}, lrx.GenErrors, "unexpected input")
	test.ExpectStr(t, "unexpected input", e.Error())
	test.ExpectStr(t, "conf", e.SourceName)
}

func TestErrorClass(t *testing.T) {
	samples := []struct{ code, class int }{
		{lrx.TableErrors, lrx.TableErrors},
		{lrx.TableErrors + 3, lrx.TableErrors},
		{lrx.ParseErrors, lrx.ParseErrors},
		{lrx.GenErrors + 12, lrx.GenErrors},
	}
	for _, s := range samples {
		test.ExpectInt(t, s.class, lrx.FormatError(s.code, "x").Class())
	}
}

func TestCode(t *testing.T) {
	e := lrx.FormatError(lrx.ParseErrors+1, "stopped")
	test.ExpectInt(t, lrx.ParseErrors+1, lrx.Code(e))
	test.ExpectInt(t, lrx.ParseErrors+1, lrx.Code(fmt.Errorf("parse: %w", e)))
	test.ExpectInt(t, 0, lrx.Code(nil))
	test.ExpectInt(t, 0, lrx.Code(errors.New("plain")))
}
