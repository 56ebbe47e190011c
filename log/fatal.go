package log

import (
	"fmt"

	"go.uber.org/zap/zapcore"
)

// Common errors that can happen on node startup.
var (
	ErrMalformedConfig = newFatalErrorWithReason("ERR_MALFORMED_CONFIG", "config file is malformed")
	ErrBadFlags        = newFatalErrorWithReason("ERR_BAD_FLAGS", "bad CLI flags")
	ErrEnsureDataDir   = newFatalErrorWithArgs("ERR_ENSURE_DATA_DIR", "could not open/create data dir %v: %v")
	ErrStartHost       = newFatalErrorWithReason("ERR_START_HOST", "could not start p2p host")
)

// FatalError describes an error that terminates the application.
type FatalError struct {
	Code   string
	Text   string
	Args   []any
	Reason error
}

func newFatalErrorWithArgs(code, text string) func(args ...any) *FatalError {
	return func(args ...any) *FatalError {
		return &FatalError{
			Code: code,
			Text: text,
			Args: args,
		}
	}
}

func newFatalErrorWithReason(code, text string) func(reason error) *FatalError {
	return func(reason error) *FatalError {
		return &FatalError{
			Code:   code,
			Text:   text,
			Reason: reason,
		}
	}
}

func (fe *FatalError) Error() string {
	if fe.Reason != nil {
		return fmt.Sprintf("%v: %v", fe.Text, fe.Reason)
	}
	if len(fe.Args) != 0 {
		return fmt.Sprintf(fe.Text, fe.Args...)
	}
	return fe.Text
}

func (fe *FatalError) Unwrap() error {
	return fe.Reason
}

// MarshalLogObject implements logging encoder for FatalError.
func (fe *FatalError) MarshalLogObject(encoder zapcore.ObjectEncoder) error {
	encoder.AddString("code", fe.Code)
	encoder.AddString("error", fe.Error())
	if len(fe.Args) == 0 {
		return nil
	}
	if err := encoder.AddArray("args", arrayMarshaler(fe.Args)); err != nil {
		return fmt.Errorf("add array: %w", err)
	}
	return nil
}

type arrayMarshaler []any

func (args arrayMarshaler) MarshalLogArray(encoder zapcore.ArrayEncoder) error {
	for _, arg := range args {
		if err := encoder.AppendReflected(arg); err != nil {
			return fmt.Errorf("append reflected: %w", err)
		}
	}
	return nil
}
