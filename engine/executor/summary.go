package executor

import (
	"fmt"

	"github.com/jinzhu/inflection"
)

// Count renders "1 row" or "3 rows"
func Count(n int64, noun string) string {
	if n != 1 {
		noun = inflection.Plural(noun)
	}
	return fmt.Sprintf("%d %s", n, noun)
}

// Summary renders "<count> <verb>", e.g. "2 documents inserted"
func Summary(n int64, noun, verb string) string {
	return Count(n, noun) + " " + verb
}

// UpdateSummary renders "3 documents matched, 2 modified"
func UpdateSummary(matched, modified int64) string {
	return fmt.Sprintf("%s, %d modified", Summary(matched, "document", "matched"), modified)
}
