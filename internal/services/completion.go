package services

import "github.com/nwestbury/pulselog/internal/models"

// EvaluateCompletion recomputes the derived IsComplete flag from the
// five section flags and reports whether the stored value changed. It
// runs after every section merge, whichever section arrived, so its
// correctness does not depend on submission order.
func EvaluateCompletion(entry *models.DailyLog) bool {
	complete := true
	for _, flag := range entry.SectionFlags() {
		if !flag {
			complete = false
			break
		}
	}

	if entry.IsComplete == complete {
		return false
	}
	entry.IsComplete = complete
	return true
}
