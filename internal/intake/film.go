package intake

import "strings"

const (
	filmCodeSeparator     = "|"
	filmCategorySeparator = "—"
)

// ParseFilmChoice splits a film dropdown answer of the form
//
//	"F26-004 | Drowned Land (2025) — Environmental & Social Justice"
//
// into its catalog code and display title. Year stays in the title, the
// category after the em dash is dropped. Without a "|" the whole answer is
// the title and the code is empty; malformed input never fails.
func ParseFilmChoice(raw string) (code, title string) {
	head, rest, found := strings.Cut(raw, filmCodeSeparator)
	if !found {
		return "", strings.TrimSpace(raw)
	}
	title, _, _ = strings.Cut(rest, filmCategorySeparator)
	return strings.TrimSpace(head), strings.TrimSpace(title)
}
