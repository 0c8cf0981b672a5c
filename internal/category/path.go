package category

import "strings"

// Separator joins the segments of a category path.
const Separator = " - "

// Path is a parsed category path. The zero value is the root (no category).
type Path []string

// Parse splits a stored category string into its segments.
// An empty string parses to the root path.
func Parse(s string) Path {
	if s == "" {
		return nil
	}
	return Path(strings.Split(s, Separator))
}

// String joins the segments back into the stored representation.
func (p Path) String() string {
	return strings.Join(p, Separator)
}

// IsRoot reports whether p has no segments.
func (p Path) IsRoot() bool {
	return len(p) == 0
}

// Leaf returns the final segment, or "" for the root.
func (p Path) Leaf() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Parent returns p without its final segment.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1:len(p)-1]
}

// Equal reports whether both paths have identical segments.
func (p Path) Equal(other Path) bool {
	if len(p) != len(other) {
		return false
	}
	for i := range p {
		if p[i] != other[i] {
			return false
		}
	}
	return true
}

// IsDescendant reports whether candidate equals ancestor or lies below it.
// The root is an ancestor of every path.
func IsDescendant(candidate, ancestor Path) bool {
	if len(candidate) < len(ancestor) {
		return false
	}
	for i := range ancestor {
		if candidate[i] != ancestor[i] {
			return false
		}
	}
	return true
}

// IsDescendantOf is IsDescendant on stored strings.
func IsDescendantOf(candidate, ancestor string) bool {
	return IsDescendant(Parse(candidate), Parse(ancestor))
}

// Rebase replaces the from prefix of p with to, keeping the remaining
// segments. ok is false when p is not a descendant of from.
func (p Path) Rebase(from, to Path) (rebased Path, ok bool) {
	if !IsDescendant(p, from) {
		return nil, false
	}
	out := make(Path, 0, len(to)+len(p)-len(from))
	out = append(out, to...)
	out = append(out, p[len(from):]...)
	return out, true
}

// Rename returns p with its final segment replaced by leaf.
// Renaming the root returns the root.
func Rename(p Path, leaf string) Path {
	if len(p) == 0 {
		return nil
	}
	out := make(Path, len(p))
	copy(out, p)
	out[len(out)-1] = leaf
	return out
}
