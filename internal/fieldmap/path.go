package fieldmap

import (
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

func (s Segment) String() string {
	if s.IsIndex {
		return "[" + strconv.Itoa(s.Index) + "]"
	}
	return s.Key
}

// MaxIndex is the largest array index a path may address.
const MaxIndex = 1000

// Path addresses a location inside a nested output document, e.g. variants[0].price.
type Path []Segment

// ParsePath splits a target expression on '.', '[' and ']', dropping empty pieces.
// Pieces made only of digits become array indexes.
func ParsePath(expr string) Path {
	pieces := strings.FieldsFunc(expr, func(r rune) bool {
		return r == '.' || r == '[' || r == ']'
	})
	path := make(Path, 0, len(pieces))
	for _, piece := range pieces {
		if idx, err := strconv.Atoi(piece); err == nil && idx >= 0 && isDigits(piece) {
			path = append(path, Segment{Index: idx, IsIndex: true})
			continue
		}
		path = append(path, Segment{Key: piece})
	}
	return path
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func (p Path) String() string {
	var b strings.Builder
	for i, seg := range p {
		if !seg.IsIndex && i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(seg.String())
	}
	return b.String()
}

// Validate rejects paths addressing an array index above MaxIndex.
func (p Path) Validate() error {
	for _, seg := range p {
		if seg.IsIndex && seg.Index > MaxIndex {
			return fmt.Errorf("array index %d exceeds %d", seg.Index, MaxIndex)
		}
	}
	return nil
}

// Set writes value at the path inside root, creating intermediate containers as it
// goes: an array when the next segment is an index, an object otherwise. Existing
// values at the destination are overwritten. Empty paths and paths failing Validate
// are a no-op.
func (p Path) Set(root map[string]any, value any) {
	if len(p) == 0 || p.Validate() != nil {
		return
	}
	setIn(root, p, value)
}

// Get reads the value at the path. The boolean is false when any step is missing.
func (p Path) Get(root map[string]any) (any, bool) {
	var cur any = root
	for _, seg := range p {
		switch c := cur.(type) {
		case map[string]any:
			v, ok := c[seg.keyString()]
			if !ok {
				return nil, false
			}
			cur = v
		case []any:
			if !seg.IsIndex || seg.Index >= len(c) {
				return nil, false
			}
			cur = c[seg.Index]
		default:
			return nil, false
		}
	}
	return cur, true
}

func (s Segment) keyString() string {
	if s.IsIndex {
		return strconv.Itoa(s.Index)
	}
	return s.Key
}

func newContainerFor(next Segment) any {
	if next.IsIndex {
		return []any{}
	}
	return map[string]any{}
}

// setIn writes into container and returns the (possibly reallocated) container so
// that callers holding a slice can store the grown version back.
func setIn(container any, path Path, value any) any {
	seg := path[0]
	rest := path[1:]

	switch c := container.(type) {
	case map[string]any:
		key := seg.keyString()
		if len(rest) == 0 {
			c[key] = value
			return c
		}
		child, ok := c[key]
		if !ok || !compatible(child, rest[0]) {
			child = newContainerFor(rest[0])
		}
		c[key] = setIn(child, rest, value)
		return c
	case []any:
		if !seg.IsIndex {
			// A key addressed into an array replaces the array with an object.
			return setIn(map[string]any{}, path, value)
		}
		for len(c) <= seg.Index {
			c = append(c, nil)
		}
		if len(rest) == 0 {
			c[seg.Index] = value
			return c
		}
		child := c[seg.Index]
		if child == nil || !compatible(child, rest[0]) {
			child = newContainerFor(rest[0])
		}
		c[seg.Index] = setIn(child, rest, value)
		return c
	default:
		return setIn(newContainerFor(seg), path, value)
	}
}

// compatible reports whether an existing value can hold the next segment.
func compatible(v any, next Segment) bool {
	switch v.(type) {
	case map[string]any:
		return true
	case []any:
		return next.IsIndex
	default:
		return false
	}
}
