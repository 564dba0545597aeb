package gamificationservice

import (
	"log/slog"

	httpadapter "evergreen/contexts/engagement/gamification-service/adapters/http"
	"evergreen/contexts/engagement/gamification-service/adapters/memory"
	"evergreen/contexts/engagement/gamification-service/application"
	"evergreen/contexts/engagement/gamification-service/application/dispatch"
	"evergreen/contexts/engagement/gamification-service/application/workers"
	"evergreen/contexts/engagement/gamification-service/ports"
)

type Module struct {
	Handler    httpadapter.Handler
	Service    application.Service
	Router     workers.Router
	Dispatcher ports.Dispatcher
	Store      *memory.Store
}

type Dependencies struct {
	Repository ports.ScoreRepository
	Failures   ports.FailureStore
	Mirror     ports.RankingMirror
	Queue      dispatch.Enqueuer // nil selects the inline dispatcher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

// NewModule wires the ledger service, the worker router, and the
// dispatcher. Queued vs inline dispatch is decided here, once, by whether
// a queue client was provided.
func NewModule(deps Dependencies) Module {
	service := application.Service{
		Repo:   deps.Repository,
		Mirror: deps.Mirror,
		Clock:  deps.Clock,
		IDGen:  deps.IDGen,
		Logger: deps.Logger,
	}
	router := workers.Router{
		Scores: service,
		Logger: deps.Logger,
	}
	inline := dispatch.InlineDispatcher{
		Handle:   router.Handle,
		Failures: deps.Failures,
		Clock:    deps.Clock,
		IDGen:    deps.IDGen,
		Logger:   deps.Logger,
	}

	var dispatcher ports.Dispatcher = inline
	if deps.Queue != nil {
		dispatcher = dispatch.QueuedDispatcher{
			Queue:  deps.Queue,
			Inline: inline,
			Logger: deps.Logger,
		}
	}

	return Module{
		Handler: httpadapter.Handler{
			Service:    service,
			Dispatcher: dispatcher,
		},
		Service:    service,
		Router:     router,
		Dispatcher: dispatcher,
	}
}

// NewInMemoryModule backs every port with the memory store and the inline
// dispatcher; used for local development and tests.
func NewInMemoryModule(mirror ports.RankingMirror, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Failures:   store,
		Mirror:     mirror,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
