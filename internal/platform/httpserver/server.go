package httpserver

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	gamificationservice "evergreen/contexts/engagement/gamification-service"
	gamificationerrors "evergreen/contexts/engagement/gamification-service/domain/errors"
	gamificationhttp "evergreen/contexts/engagement/gamification-service/transport/http"
	leaderboardservice "evergreen/contexts/engagement/leaderboard-service"
	leaderboarderrors "evergreen/contexts/engagement/leaderboard-service/domain/errors"
	leaderboardhttp "evergreen/contexts/engagement/leaderboard-service/transport/http"
	submissionservice "evergreen/contexts/learning/submission-service"
	submissionerrors "evergreen/contexts/learning/submission-service/domain/errors"
	submissionhttp "evergreen/contexts/learning/submission-service/transport/http"

	httpSwagger "github.com/swaggo/http-swagger"

	_ "evergreen/internal/platform/httpserver/docs"
)

// maxRankSpan bounds leaderboard range pagination; the ranking store
// itself does not enforce this.
const maxRankSpan = 100

type Server struct {
	mux          *http.ServeMux
	logger       *slog.Logger
	addr         string
	submissions  submissionservice.Module
	gamification gamificationservice.Module
	leaderboard  leaderboardservice.Module
}

func New(
	submissions submissionservice.Module,
	gamification gamificationservice.Module,
	leaderboard leaderboardservice.Module,
	logger *slog.Logger,
	addr string,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	if addr == "" {
		addr = ":8080"
	}

	s := &Server{
		mux:          http.NewServeMux(),
		logger:       logger,
		addr:         addr,
		submissions:  submissions,
		gamification: gamification,
		leaderboard:  leaderboard,
	}
	s.registerRoutes()
	return s
}

func (s *Server) Start() error {
	s.logger.Info("http server starting",
		"event", "http_server_starting",
		"module", "internal/platform/httpserver",
		"layer", "platform",
		"addr", s.addr,
	)
	return http.ListenAndServe(s.addr, s.mux)
}

func (s *Server) registerRoutes() {
	s.mux.Handle("/swagger/", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	s.mux.HandleFunc("POST /api/submissions/v1/submissions", s.handleSubmitProject)
	s.mux.HandleFunc("GET /api/submissions/v1/submissions/{submission_id}", s.handleGetSubmission)
	s.mux.HandleFunc("GET /api/submissions/v1/users/{user_id}/submissions", s.handleListSubmissions)

	s.mux.HandleFunc("POST /api/gamification/v1/users/{user_id}/xp", s.handleAddXP)
	s.mux.HandleFunc("GET /api/gamification/v1/users/{user_id}", s.handleUserSummary)
	s.mux.HandleFunc("POST /api/gamification/v1/events", s.handleDispatchEvent)

	s.mux.HandleFunc("GET /api/leaderboard/v1/top", s.handleLeaderboardTop)
	s.mux.HandleFunc("GET /api/leaderboard/v1/users/{user_id}/rank", s.handleLeaderboardRank)
	s.mux.HandleFunc("GET /api/leaderboard/v1/range", s.handleLeaderboardRange)
	s.mux.HandleFunc("GET /api/leaderboard/v1/count", s.handleLeaderboardCount)
}

func (s *Server) handleSubmitProject(w http.ResponseWriter, r *http.Request) {
	var req submissionhttp.SubmitProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeSubmissionError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.submissions.Handler.SubmitProjectHandler(r.Context(), req)
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (s *Server) handleGetSubmission(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.GetSubmissionHandler(r.Context(), r.PathValue("submission_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListSubmissions(w http.ResponseWriter, r *http.Request) {
	resp, err := s.submissions.Handler.ListSubmissionsHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeSubmissionDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleAddXP(w http.ResponseWriter, r *http.Request) {
	var req gamificationhttp.AddXPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGamificationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.gamification.Handler.AddXPHandler(r.Context(), r.PathValue("user_id"), req)
	if err != nil {
		writeGamificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

// handleUserSummary composes the ledger summary with the user's current
// rank; the two stores may diverge during ranking-backend outages.
func (s *Server) handleUserSummary(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("user_id")
	resp, err := s.gamification.Handler.GetUserSummaryHandler(r.Context(), userID)
	if err != nil {
		writeGamificationDomainError(w, err)
		return
	}
	rank, err := s.leaderboard.Handler.RankHandler(r.Context(), userID)
	if err != nil {
		writeLeaderboardDomainError(w, err)
		return
	}
	resp.Data.Rank = rank.Data.Rank
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDispatchEvent(w http.ResponseWriter, r *http.Request) {
	var req gamificationhttp.DispatchEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeGamificationError(w, http.StatusBadRequest, "invalid_json", "request body must be valid JSON")
		return
	}
	resp, err := s.gamification.Handler.DispatchEventHandler(r.Context(), req)
	if err != nil {
		writeGamificationDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusAccepted, resp)
}

func (s *Server) handleLeaderboardTop(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeLeaderboardError(w, http.StatusBadRequest, "invalid_limit", "limit must be a positive integer")
			return
		}
		limit = parsed
	}
	resp, err := s.leaderboard.Handler.TopHandler(r.Context(), limit)
	if err != nil {
		writeLeaderboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboardRank(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leaderboard.Handler.RankHandler(r.Context(), r.PathValue("user_id"))
	if err != nil {
		writeLeaderboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboardRange(w http.ResponseWriter, r *http.Request) {
	start, err := strconv.ParseInt(r.URL.Query().Get("start"), 10, 64)
	if err != nil {
		writeLeaderboardError(w, http.StatusBadRequest, "invalid_range", "start must be an integer")
		return
	}
	end, err := strconv.ParseInt(r.URL.Query().Get("end"), 10, 64)
	if err != nil {
		writeLeaderboardError(w, http.StatusBadRequest, "invalid_range", "end must be an integer")
		return
	}
	if end-start+1 > maxRankSpan {
		writeLeaderboardError(w, http.StatusBadRequest, "range_too_wide", "rank span must not exceed 100")
		return
	}
	resp, err := s.leaderboard.Handler.RangeHandler(r.Context(), start, end)
	if err != nil {
		writeLeaderboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleLeaderboardCount(w http.ResponseWriter, r *http.Request) {
	resp, err := s.leaderboard.Handler.CountHandler(r.Context())
	if err != nil {
		writeLeaderboardDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func writeSubmissionDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, submissionerrors.ErrSubmissionNotFound):
		writeSubmissionError(w, http.StatusNotFound, "submission_not_found", err.Error())
	case errors.Is(err, submissionerrors.ErrDuplicateSubmission):
		writeSubmissionError(w, http.StatusConflict, "duplicate_submission", err.Error())
	case errors.Is(err, submissionerrors.ErrInvalidSubmission):
		writeSubmissionError(w, http.StatusBadRequest, "invalid_submission", err.Error())
	default:
		writeSubmissionError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeGamificationDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, gamificationerrors.ErrInvalidUserID),
		errors.Is(err, gamificationerrors.ErrMissingUserID):
		writeGamificationError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, gamificationerrors.ErrUnknownEvent):
		writeGamificationError(w, http.StatusUnprocessableEntity, "unknown_event", err.Error())
	case errors.Is(err, gamificationerrors.ErrUserNotFound):
		writeGamificationError(w, http.StatusNotFound, "user_not_found", err.Error())
	default:
		writeGamificationError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeLeaderboardDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, leaderboarderrors.ErrInvalidUserID),
		errors.Is(err, leaderboarderrors.ErrInvalidLimit),
		errors.Is(err, leaderboarderrors.ErrInvalidRange):
		writeLeaderboardError(w, http.StatusBadRequest, "invalid_request", err.Error())
	default:
		writeLeaderboardError(w, http.StatusInternalServerError, "internal_error", "internal server error")
	}
}

func writeSubmissionError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, submissionhttp.ErrorResponse{Code: code, Message: message})
}

func writeGamificationError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, gamificationhttp.ErrorResponse{Code: code, Message: message})
}

func writeLeaderboardError(w http.ResponseWriter, status int, code string, message string) {
	writeJSON(w, status, leaderboardhttp.ErrorResponse{Code: code, Message: message})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
