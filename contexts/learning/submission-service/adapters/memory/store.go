package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"evergreen/contexts/learning/submission-service/domain/entities"
	domainerrors "evergreen/contexts/learning/submission-service/domain/errors"

	"github.com/google/uuid"
)

type Store struct {
	mu          sync.RWMutex
	submissions map[string]entities.Submission
}

func NewStore() *Store {
	return &Store{submissions: make(map[string]entities.Submission)}
}

func (s *Store) CreateSubmission(_ context.Context, submission entities.Submission) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, existing := range s.submissions {
		if existing.UserID == submission.UserID &&
			existing.CourseID == submission.CourseID &&
			existing.ImageURL != "" &&
			existing.ImageURL == submission.ImageURL {
			return domainerrors.ErrDuplicateSubmission
		}
	}
	s.submissions[submission.SubmissionID] = submission
	return nil
}

func (s *Store) GetSubmission(_ context.Context, submissionID string) (entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	submission, ok := s.submissions[strings.TrimSpace(submissionID)]
	if !ok {
		return entities.Submission{}, domainerrors.ErrSubmissionNotFound
	}
	return submission, nil
}

func (s *Store) ListSubmissions(_ context.Context, userID string) ([]entities.Submission, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]entities.Submission, 0)
	for _, submission := range s.submissions {
		if submission.UserID == strings.TrimSpace(userID) {
			items = append(items, submission)
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
	return items, nil
}

func (s *Store) Now() time.Time {
	return time.Now().UTC()
}

func (s *Store) NewID(_ context.Context) (string, error) {
	return uuid.NewString(), nil
}
