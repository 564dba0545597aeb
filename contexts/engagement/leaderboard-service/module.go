package leaderboardservice

import (
	"log/slog"

	httpadapter "evergreen/contexts/engagement/leaderboard-service/adapters/http"
	"evergreen/contexts/engagement/leaderboard-service/adapters/memory"
	"evergreen/contexts/engagement/leaderboard-service/application"
	"evergreen/contexts/engagement/leaderboard-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Ranking ports.RankingStore
}

type Dependencies struct {
	Ranking ports.RankingStore
	Logger  *slog.Logger
}

// NewModule wires the ranked-read surface over the RankingStore backend
// chosen once at bootstrap.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Ranking: deps.Ranking,
		Logger:  deps.Logger,
	}
	return Module{
		Handler: httpadapter.Handler{Service: service},
		Ranking: deps.Ranking,
	}
}

// NewInMemoryModule backs the module with the process-lifetime fallback
// store; used for local development and tests.
func NewInMemoryModule(logger *slog.Logger) Module {
	return NewModule(Dependencies{
		Ranking: memory.NewStore(),
		Logger:  logger,
	})
}
