package application

import (
	"strings"
	"testing"
)

func words(n int) string {
	return strings.TrimSpace(strings.Repeat("restoration ", n))
}

func TestScoreSubmissionAllSignalsPresent(t *testing.T) {
	score, verified := ScoreSubmission(ScoreInput{
		HasImage:    true,
		HasGeotag:   true,
		Description: words(60),
	})
	if score != 100 {
		t.Fatalf("expected score 100, got %d", score)
	}
	if !verified {
		t.Fatalf("expected verified submission")
	}
}

func TestScoreSubmissionMissingImageIsBoundary(t *testing.T) {
	score, verified := ScoreSubmission(ScoreInput{
		HasImage:    false,
		HasGeotag:   true,
		Description: words(60),
	})
	if score != 60 {
		t.Fatalf("expected score 60, got %d", score)
	}
	if verified {
		t.Fatalf("expected unverified submission: 60 is not strictly above the threshold")
	}
}

func TestScoreSubmissionShortDescription(t *testing.T) {
	score, verified := ScoreSubmission(ScoreInput{
		HasImage:    true,
		HasGeotag:   true,
		Description: words(10),
	})
	if score != 80 {
		t.Fatalf("expected score 80, got %d", score)
	}
	if !verified {
		t.Fatalf("expected verified submission")
	}
}

func TestScoreSubmissionAllSignalsMissing(t *testing.T) {
	score, verified := ScoreSubmission(ScoreInput{})
	if score != 10 {
		t.Fatalf("expected score 10, got %d", score)
	}
	if verified {
		t.Fatalf("expected unverified submission")
	}
}
