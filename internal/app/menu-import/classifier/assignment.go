package menu_classifier

import (
	"fmt"
	"sort"
	"strings"
)

// Assignment maps a role to its 0-based column index. Roles that could not be
// resolved are absent.
type Assignment map[Role]int

// Column returns the column of a role, ok is false for unresolved roles.
func (a Assignment) Column(r Role) (int, bool) {
	c, ok := a[r]
	if !ok || c < 0 {
		return 0, false
	}
	return c, true
}

// Validate checks that the roles every record needs are resolved and that no
// unknown role sneaked in (assignments also come from outside the scorer).
func (a Assignment) Validate() error {
	for r := range a {
		if !r.IsValid() {
			return fmt.Errorf("%w: unknown role %q", ErrColumnDetection, string(r))
		}
	}
	if missing := missingRequired(a); len(missing) > 0 {
		return detectionError(missing)
	}
	return nil
}

func (a Assignment) Equal(b Assignment) bool {
	if len(a) != len(b) {
		return false
	}
	for r, c := range a {
		if bc, ok := b[r]; !ok || bc != c {
			return false
		}
	}
	return true
}

// Describe renders the assignment for the confirmation step, one line per
// column in sheet order, e.g. `Column 3 "Price" -> Price`.
func (a Assignment) Describe(header []Cell) string {
	type line struct {
		col  int
		role Role
	}
	lines := make([]line, 0, len(a))
	for r, c := range a {
		lines = append(lines, line{c, r})
	}
	sort.Slice(lines, func(i, j int) bool {
		if lines[i].col != lines[j].col {
			return lines[i].col < lines[j].col
		}
		return roleRank[lines[i].role] < roleRank[lines[j].role]
	})

	var b strings.Builder
	for i, l := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "Column %d", l.col+1)
		if l.col < len(header) && !header[l.col].IsEmpty() {
			fmt.Fprintf(&b, " %q", header[l.col].String())
		}
		fmt.Fprintf(&b, " -> %s", l.role.Label())
	}
	return b.String()
}
