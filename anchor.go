package re2

// Anchor restricts where a match may start and end.
type Anchor int

const (
	// Unanchored lets a match start anywhere in the window.
	Unanchored Anchor = iota

	// AnchorStart requires the match to start at the window start.
	AnchorStart

	// AnchorBoth requires the match to span the whole window.
	AnchorBoth
)

func (a Anchor) String() string {
	switch a {
	case Unanchored:
		return "unanchored"
	case AnchorStart:
		return "anchor_start"
	case AnchorBoth:
		return "anchor_both"
	}
	return "invalid"
}

func (a Anchor) valid() bool {
	return a >= Unanchored && a <= AnchorBoth
}

// ParseAnchor parses "unanchored", "anchor_start" or "anchor_both".
func ParseAnchor(s string) (Anchor, error) {
	for a := Unanchored; a <= AnchorBoth; a++ {
		if a.String() == s {
			return a, nil
		}
	}
	return 0, &ArgumentError{Message: errBadAnchor}
}

// MarshalText implements encoding.TextMarshaler.
func (a Anchor) MarshalText() ([]byte, error) {
	if !a.valid() {
		return nil, &ArgumentError{Message: errBadAnchor}
	}
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so anchors can be read
// from YAML by name.
func (a *Anchor) UnmarshalText(text []byte) error {
	parsed, err := ParseAnchor(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
