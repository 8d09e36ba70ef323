package tools

import (
	"errors"
	"fmt"
)

var ErrUnknownTool = errors.New("unknown tool")

type UnknownToolError struct {
	Name string
}

func IsUnknownToolError(err error) *UnknownToolError {
	if err == nil {
		return nil
	}

	var unknownToolError *UnknownToolError

	if errors.As(err, &unknownToolError) {
		return unknownToolError
	}

	return nil
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("%v: %q", ErrUnknownTool, e.Name)
}

func (e *UnknownToolError) Unwrap() error {
	return ErrUnknownTool
}
