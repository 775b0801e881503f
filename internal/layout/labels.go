package layout

import (
	"strconv"
	"strings"
)

// Assignment is a key's switch-matrix position as parsed from SlotMatrix.
// Either dimension may be unset. An unassigned key is a normal state, not
// an error: malformed or partial labels parse to nil components.
type Assignment struct {
	Row *int
	Col *int
}

// HasRow reports whether the row component is set.
func (a Assignment) HasRow() bool { return a.Row != nil }

// HasCol reports whether the column component is set.
func (a Assignment) HasCol() bool { return a.Col != nil }

// Complete reports whether both components are set.
func (a Assignment) Complete() bool { return a.Row != nil && a.Col != nil }

// String formats the assignment as "row,col" with unset components left
// empty. A fully unset assignment formats as "".
func (a Assignment) String() string {
	if a.Row == nil && a.Col == nil {
		return ""
	}
	var sb strings.Builder
	if a.Row != nil {
		sb.WriteString(strconv.Itoa(*a.Row))
	}
	sb.WriteByte(',')
	if a.Col != nil {
		sb.WriteString(strconv.Itoa(*a.Col))
	}
	return sb.String()
}

// ParseAssignment parses a "row,col" label. Each side parses independently;
// anything that is not a non-negative integer yields a nil component.
func ParseAssignment(s string) Assignment {
	row, col, ok := splitPair(s)
	if !ok {
		return Assignment{}
	}
	return Assignment{Row: parseIndex(row), Col: parseIndex(col)}
}

// Variant is a layout-variant discriminator: Option identifies the variant
// group, Choice the specific alternative within it.
type Variant struct {
	Option int
	Choice int
}

// String formats the variant as "option,choice".
func (v Variant) String() string {
	return strconv.Itoa(v.Option) + "," + strconv.Itoa(v.Choice)
}

// ParseVariant parses an "option,choice" label. Unlike matrix labels both
// parts must be present and non-negative, otherwise ok is false.
func ParseVariant(s string) (Variant, bool) {
	opt, choice, found := splitPair(s)
	if !found {
		return Variant{}, false
	}
	o := parseIndex(opt)
	c := parseIndex(choice)
	if o == nil || c == nil {
		return Variant{}, false
	}
	return Variant{Option: *o, Choice: *c}, true
}

// splitPair splits on the first comma. Labels without a comma are
// malformed as a pair.
func splitPair(s string) (left, right string, ok bool) {
	i := strings.IndexByte(s, ',')
	if i < 0 {
		return "", "", false
	}
	return s[:i], s[i+1:], true
}

// parseIndex parses a non-negative integer, or nil.
func parseIndex(s string) *int {
	if s == "" {
		return nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return nil
	}
	return &n
}

// Index is a convenience for building *int literals in assignments.
func Index(n int) *int { return &n }
