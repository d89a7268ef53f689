package cmdutil

import (
	"errors"
	"fmt"
	"io"
	"strings"

	oerrors "github.com/rotorz/capri/internal/errors"
	"github.com/rotorz/capri/internal/output"
)

// PrintLoadError prints a loading failure in a user-friendly format. Joined
// errors are printed one per line; interface violations carry their class,
// interface and member as key/value pairs.
func PrintLoadError(msg string, err error) {
	errs := flatten(err)
	if len(errs) > 1 {
		output.Error(fmt.Sprintf("%s (%d errors)", msg, len(errs)))
	}
	for _, e := range errs {
		var ifaceErr *oerrors.InterfaceError
		var detailErr *oerrors.DetailError
		switch {
		case errors.As(e, &ifaceErr):
			output.Error(msg,
				"class", ifaceErr.ClassID,
				"interface", ifaceErr.InterfaceID,
				"member", ifaceErr.Member,
				"error", e,
			)
		case errors.As(e, &detailErr):
			var kv []any
			if detailErr.Location != "" {
				kv = append(kv, "location", detailErr.Location)
			}
			if detailErr.Field != "" {
				kv = append(kv, "field", detailErr.Field)
			}
			output.Error(fmt.Sprintf("%s: %s", msg, detailErr.Message), kv...)
			if detailErr.Hint != "" {
				output.Info(detailErr.Hint)
			}
		default:
			output.Error(msg, "error", e)
		}
	}
}

// flatten expands errors.Join trees into their leaves.
func flatten(err error) []error {
	if err == nil {
		return nil
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		var out []error
		for _, e := range joined.Unwrap() {
			out = append(out, flatten(e)...)
		}
		return out
	}
	return []error{err}
}

// WriteReport writes v to w as JSON or YAML, or calls text for the text
// format.
func WriteReport(w io.Writer, f output.OutputFormat, v any, text func() string) error {
	if f == output.FormatText || f == "" {
		s := text()
		if !strings.HasSuffix(s, "\n") {
			s += "\n"
		}
		_, err := io.WriteString(w, s)
		return err
	}
	data, err := output.Marshal(f, v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
