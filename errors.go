package pyzc

import "fmt"

// TranslationError is returned whenever the AST can't be lowered to Zig
// source: an unsupported construct, a call to an unknown function, a
// non-constant tuple subscript, or any other Sec 6-listed
// failure. It carries the source Range so the CLI can print a
// diagnostic pointing at the offending Pyza source.
type TranslationError struct {
	Message    string
	Production string
	Where      Range
}

func (e TranslationError) Error() string {
	return fmt.Sprintf("%s @ %s", e.Message, e.Where)
}

func NewTranslationError(where Range, format string, args ...any) error {
	return TranslationError{Message: fmt.Sprintf(format, args...), Where: where}
}

func isTranslationError(err error) bool {
	_, ok := err.(TranslationError)
	return ok
}
