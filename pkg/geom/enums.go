package geom

import "fmt"

// Corner identifies one of the four corners of a rectangular template.
type Corner int

const (
	UpperLeft Corner = iota
	UpperRight
	LowerLeft
	LowerRight
)

var cornerNames = [...]string{
	UpperLeft:  "UPPER_LEFT",
	UpperRight: "UPPER_RIGHT",
	LowerLeft:  "LOWER_LEFT",
	LowerRight: "LOWER_RIGHT",
}

// Corners lists every corner in declaration order.
var Corners = []Corner{UpperLeft, UpperRight, LowerLeft, LowerRight}

// Valid reports whether c is one of the declared corners.
func (c Corner) Valid() bool { return c >= UpperLeft && c <= LowerRight }

// String returns the symbolic name, e.g. "UPPER_LEFT".
func (c Corner) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Corner(%d)", int(c))
	}
	return cornerNames[c]
}

// MarshalText implements encoding.TextMarshaler.
func (c Corner) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("invalid corner %d", int(c))
	}
	return []byte(cornerNames[c]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Corner) UnmarshalText(text []byte) error {
	parsed, err := ParseCorner(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// ParseCorner returns the corner with the given symbolic name.
func ParseCorner(name string) (Corner, error) {
	for i, n := range cornerNames {
		if n == name {
			return Corner(i), nil
		}
	}
	return 0, fmt.Errorf("unknown corner %q", name)
}

// RelativePosition is one of the four side-by-side placements of a template
// with respect to an anchor template.
type RelativePosition int

const (
	AboveOf RelativePosition = iota
	BelowOf
	LeftOf
	RightOf
)

var relativePositionNames = [...]string{
	AboveOf: "ABOVE_OF",
	BelowOf: "BELOW_OF",
	LeftOf:  "LEFT_OF",
	RightOf: "RIGHT_OF",
}

// Valid reports whether r is one of the declared relative positions.
func (r RelativePosition) Valid() bool { return r >= AboveOf && r <= RightOf }

// String returns the symbolic name, e.g. "RIGHT_OF".
func (r RelativePosition) String() string {
	if !r.Valid() {
		return fmt.Sprintf("RelativePosition(%d)", int(r))
	}
	return relativePositionNames[r]
}

// MarshalText implements encoding.TextMarshaler.
func (r RelativePosition) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("invalid relative position %d", int(r))
	}
	return []byte(relativePositionNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *RelativePosition) UnmarshalText(text []byte) error {
	parsed, err := ParseRelativePosition(string(text))
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

// ParseRelativePosition returns the relative position with the given
// symbolic name.
func ParseRelativePosition(name string) (RelativePosition, error) {
	for i, n := range relativePositionNames {
		if n == name {
			return RelativePosition(i), nil
		}
	}
	return 0, fmt.Errorf("unknown relative position %q", name)
}

// Corners returns the pair of corners that coincide when a template is
// placed at r of an anchor: the corner of the placed template first, the
// corner of the anchor second. The placed template shares a full side with
// the anchor and is aligned on the anchor's upper or left edge.
func (r RelativePosition) Corners() (positioned, anchor Corner) {
	switch r {
	case AboveOf:
		return LowerLeft, UpperLeft
	case BelowOf:
		return UpperLeft, LowerLeft
	case LeftOf:
		return UpperRight, UpperLeft
	default:
		return UpperLeft, UpperRight
	}
}
