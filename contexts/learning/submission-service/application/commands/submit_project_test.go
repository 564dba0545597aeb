package commands

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"evergreen/contexts/learning/submission-service/adapters/memory"
	"evergreen/contexts/learning/submission-service/domain/entities"
	domainerrors "evergreen/contexts/learning/submission-service/domain/errors"
	"evergreen/internal/shared/events"
)

type fakeDispatcher struct {
	dispatched []events.Event
	err        error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, event events.Event) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.dispatched = append(f.dispatched, event)
	return "job-1", nil
}

func newUseCase(dispatcher *fakeDispatcher) SubmitProjectUseCase {
	store := memory.NewStore()
	return SubmitProjectUseCase{
		Repository: store,
		Dispatcher: dispatcher,
		Clock:      store,
		IDGen:      store,
	}
}

func longDescription() string {
	return strings.TrimSpace(strings.Repeat("we planted native saplings along the riverbank ", 6))
}

func TestSubmitVerifiedProjectDispatchesEvent(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	uc := newUseCase(dispatcher)

	result, err := uc.Execute(context.Background(), SubmitProjectCommand{
		UserID:      "user-1",
		CourseID:    "course-1",
		Description: longDescription(),
		ImageURL:    "https://img.example/evidence.jpg",
		Geotag:      &entities.Geotag{Lat: -1.28, Lng: 36.82},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if !result.Submission.Verified || result.Submission.AIScore != 100 {
		t.Fatalf("expected verified submission with score 100, got %+v", result.Submission)
	}
	if result.JobID != "job-1" {
		t.Fatalf("expected job id from dispatcher, got %q", result.JobID)
	}
	if len(dispatcher.dispatched) != 1 {
		t.Fatalf("expected one dispatched event, got %d", len(dispatcher.dispatched))
	}
	event := dispatcher.dispatched[0]
	if event.Name != events.ProjectVerified || event.UserID != "user-1" {
		t.Fatalf("unexpected event: %+v", event)
	}
	var data events.ProjectVerifiedData
	if err := json.Unmarshal(event.Data, &data); err != nil {
		t.Fatalf("decode event data: %v", err)
	}
	if data.SubmissionID != result.Submission.SubmissionID || data.AIScore != 100 {
		t.Fatalf("unexpected event data: %+v", data)
	}
}

func TestSubmitUnverifiedProjectDoesNotDispatch(t *testing.T) {
	dispatcher := &fakeDispatcher{}
	uc := newUseCase(dispatcher)

	result, err := uc.Execute(context.Background(), SubmitProjectCommand{
		UserID:      "user-2",
		CourseID:    "course-1",
		Description: longDescription(),
		Geotag:      &entities.Geotag{Lat: 0, Lng: 0},
	})
	if err != nil {
		t.Fatalf("submit failed: %v", err)
	}
	if result.Submission.Verified {
		t.Fatalf("expected unverified submission at score %d", result.Submission.AIScore)
	}
	if len(dispatcher.dispatched) != 0 {
		t.Fatalf("expected no dispatched events, got %d", len(dispatcher.dispatched))
	}
}

func TestSubmitSucceedsWhenDispatchFails(t *testing.T) {
	dispatcher := &fakeDispatcher{err: errors.New("queue down")}
	uc := newUseCase(dispatcher)

	result, err := uc.Execute(context.Background(), SubmitProjectCommand{
		UserID:      "user-3",
		CourseID:    "course-1",
		Description: longDescription(),
		ImageURL:    "https://img.example/evidence.jpg",
		Geotag:      &entities.Geotag{Lat: 1, Lng: 1},
	})
	if err != nil {
		t.Fatalf("submission must not fail on dispatch error, got: %v", err)
	}
	if result.JobID != "" {
		t.Fatalf("expected empty job id on dispatch failure, got %q", result.JobID)
	}
}

func TestSubmitRejectsMissingIdentity(t *testing.T) {
	uc := newUseCase(&fakeDispatcher{})
	_, err := uc.Execute(context.Background(), SubmitProjectCommand{CourseID: "course-1"})
	if !errors.Is(err, domainerrors.ErrInvalidSubmission) {
		t.Fatalf("expected ErrInvalidSubmission, got %v", err)
	}
}

func TestSubmitRejectsDuplicateEvidence(t *testing.T) {
	uc := newUseCase(&fakeDispatcher{})
	cmd := SubmitProjectCommand{
		UserID:      "user-4",
		CourseID:    "course-2",
		Description: longDescription(),
		ImageURL:    "https://img.example/same.jpg",
		Geotag:      &entities.Geotag{Lat: 2, Lng: 2},
	}
	if _, err := uc.Execute(context.Background(), cmd); err != nil {
		t.Fatalf("first submit failed: %v", err)
	}
	if _, err := uc.Execute(context.Background(), cmd); !errors.Is(err, domainerrors.ErrDuplicateSubmission) {
		t.Fatalf("expected ErrDuplicateSubmission, got %v", err)
	}
}
