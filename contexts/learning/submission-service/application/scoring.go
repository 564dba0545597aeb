package application

import "strings"

// Verification scoring over three evidence signals. The score starts at
// 100 and loses a fixed penalty per missing signal; a submission is
// verified strictly above the threshold, so a bare 60 is not enough.
const (
	scoreBase               = 100
	penaltyMissingImage     = 40
	penaltyMissingGeotag    = 30
	penaltyShortDescription = 20

	verifiedThreshold = 60

	// Descriptions under this word count are treated as missing the
	// description signal.
	minDescriptionWords = 20
)

type ScoreInput struct {
	HasImage    bool
	HasGeotag   bool
	Description string
}

// ScoreSubmission returns the heuristic score clamped to [0, 100] and
// whether the submission counts as verified.
func ScoreSubmission(input ScoreInput) (int, bool) {
	score := scoreBase
	if !input.HasImage {
		score -= penaltyMissingImage
	}
	if !input.HasGeotag {
		score -= penaltyMissingGeotag
	}
	if len(strings.Fields(input.Description)) < minDescriptionWords {
		score -= penaltyShortDescription
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	return score, score > verifiedThreshold
}
