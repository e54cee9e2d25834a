package menu_classifier

import (
	"fmt"
	"sort"
	"strings"
	"unicode/utf8"
)

// Keyword evidence has to dominate content patterns, and distinctive patterns
// (meal words, cuisine words, Arabic script) outweigh "looks like a number".
const (
	weightKeywordExact   = 12
	weightKeyword        = 10
	weightMealPattern    = 5
	weightCuisinePattern = 5
	weightArabicScript   = 2
	weightNumeric        = 1
)

// ScanWindow is how many leading rows are scored.
const ScanWindow = 50

var (
	mealPatterns    = []string{"breakfast", "lunch", "dinner"}
	cuisinePatterns = []string{"fast", "food", "desi", "indian"}
)

// Scores holds the accumulated evidence of every role, per column.
type Scores []map[Role]int

func (s Scores) Of(col int, role Role) int {
	if col < 0 || col >= len(s) {
		return 0
	}
	return s[col][role]
}

// Score scans the first ScanWindow rows of the grid, header included, and
// accumulates keyword and content-pattern votes for every column. Empty rows
// inside the window cast no votes but still count towards it.
func Score(grid Grid) Scores {
	window := min(len(grid), ScanWindow)

	maxColumns := 0
	for r := 0; r < window; r++ {
		maxColumns = max(maxColumns, len(grid[r]))
	}

	scores := make(Scores, maxColumns)
	for c := range scores {
		scores[c] = make(map[Role]int, len(allRoles))
	}

	for r := 0; r < window; r++ {
		if grid.rowEmpty(r) {
			continue
		}
		for c, cell := range grid[r] {
			if cell.IsEmpty() {
				continue
			}
			voteCell(scores[c], cell)
		}
	}
	return scores
}

func voteCell(votes map[Role]int, cell Cell) {
	s := fold(cell)

	for _, role := range allRoles {
		votes[role] += keywordVote(role, s)
	}

	if cell.IsNumeric() {
		votes[RolePrice] += weightNumeric
	}
	if hasArabic(s) {
		votes[RoleNameAR] += weightArabicScript
	}
	if containsAny(s, mealPatterns) {
		votes[RoleMeal] += weightMealPattern
	}
	if containsAny(s, cuisinePatterns) {
		votes[RoleCuisine] += weightCuisinePattern
	}
}

// keywordVote counts a role at most once per cell. Equality beats containment,
// and containment is only considered for strings longer than two characters.
func keywordVote(role Role, s string) int {
	vote := 0
	long := utf8.RuneCountInString(s) > 2
	for _, kw := range keywords[role] {
		if s == kw {
			return weightKeywordExact
		}
		if long && strings.Contains(s, kw) {
			vote = weightKeyword
		}
	}
	return vote
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

// Classify infers the column role assignment of a grid. It fails with
// ErrInsufficientData when fewer than two rows carry data and with
// ErrColumnDetection when no column can be found for the item name or price.
//
// A column is given to at most one scored role: the highest score wins, ties go
// to the role listed first in AllRoles and, within a role, to the leftmost
// column. A role that loses its best column falls back to its next best
// unclaimed one. If that leaves name_en or price without a column, name_en and
// price choose first and the other roles share out what remains. When no column scored for category, the first column not used
// by name_en, price or name_ar is taken as the category column, even if it
// holds something else.
func Classify(grid Grid) (Assignment, error) {
	if grid.UsableRows() < 2 {
		return nil, ErrInsufficientData
	}

	scores := Score(grid)
	assignment := resolve(scores)

	if err := assignment.Validate(); err != nil {
		return nil, err
	}

	if _, ok := assignment[RoleCategory]; !ok {
		claimed := map[int]bool{
			assignment[RoleNameEN]: true,
			assignment[RolePrice]:  true,
		}
		if c, ok := assignment[RoleNameAR]; ok {
			claimed[c] = true
		}
		for c := range scores {
			if !claimed[c] {
				assignment[RoleCategory] = c
				break
			}
		}
	}

	return assignment, nil
}

type claim struct {
	role   Role
	column int
	score  int
}

func resolve(scores Scores) Assignment {
	claims := rankedClaims(scores)

	assignment := make(Assignment, len(allRoles))
	taken := make(map[int]bool, len(scores))
	assign(claims, assignment, taken, func(Role) bool { return true })
	if len(missingRequired(assignment)) == 0 {
		return assignment
	}

	// An optional role took the only column a required role could use.
	assignment = make(Assignment, len(allRoles))
	taken = make(map[int]bool, len(scores))
	assign(claims, assignment, taken, isRequired)
	assign(claims, assignment, taken, func(r Role) bool { return !isRequired(r) })
	return assignment
}

func rankedClaims(scores Scores) []claim {
	claims := make([]claim, 0, len(scores)*len(allRoles))
	for c, votes := range scores {
		for _, role := range allRoles {
			if votes[role] > 0 {
				claims = append(claims, claim{role: role, column: c, score: votes[role]})
			}
		}
	}

	sort.SliceStable(claims, func(i, j int) bool {
		a, b := claims[i], claims[j]
		if a.score != b.score {
			return a.score > b.score
		}
		if roleRank[a.role] != roleRank[b.role] {
			return roleRank[a.role] < roleRank[b.role]
		}
		return a.column < b.column
	})
	return claims
}

func assign(claims []claim, assignment Assignment, taken map[int]bool, eligible func(Role) bool) {
	for _, cl := range claims {
		if !eligible(cl.role) {
			continue
		}
		if _, done := assignment[cl.role]; done || taken[cl.column] {
			continue
		}
		assignment[cl.role] = cl.column
		taken[cl.column] = true
	}
}

func isRequired(r Role) bool {
	return r == RoleNameEN || r == RolePrice
}

func missingRequired(a Assignment) []string {
	var missing []string
	for _, role := range []Role{RoleNameEN, RolePrice} {
		if c, ok := a[role]; !ok || c < 0 {
			missing = append(missing, role.Label())
		}
	}
	return missing
}

func detectionError(missing []string) error {
	return fmt.Errorf("%w: no column found for %s", ErrColumnDetection, strings.Join(missing, ", "))
}
