package vision

import (
	"github.com/aicuts/faceshape-api/internal/domain"
)

// SelectBest returns the single highest-confidence detection from the
// candidate set, or false when the set is empty. The comparison is strictly
// greater-than, so on a tie the first candidate seen wins. Losing candidates
// are discarded outright; there is no suppression or merging across classes.
func SelectBest(detections []domain.Detection) (domain.Detection, bool) {
	if len(detections) == 0 {
		return domain.Detection{}, false
	}

	best := detections[0]
	for _, det := range detections[1:] {
		if det.Confidence > best.Confidence {
			best = det
		}
	}
	return best, true
}
