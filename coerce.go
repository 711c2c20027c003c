package re2

import (
	"encoding"
	"fmt"
)

// Coerce converts v to text for matching. It accepts strings, byte slices,
// fmt.Stringer and encoding.TextMarshaler; anything else is a *TypeError.
func Coerce(v any) ([]byte, error) {
	switch t := v.(type) {
	case []byte:
		return t, nil
	case string:
		return []byte(t), nil
	case fmt.Stringer:
		return []byte(t.String()), nil
	case encoding.TextMarshaler:
		return t.MarshalText()
	}
	return nil, &TypeError{Message: fmt.Sprintf("no implicit conversion of %T into String", v)}
}
