package submissionservice

import (
	"log/slog"

	httpadapter "evergreen/contexts/learning/submission-service/adapters/http"
	"evergreen/contexts/learning/submission-service/adapters/memory"
	"evergreen/contexts/learning/submission-service/application/commands"
	"evergreen/contexts/learning/submission-service/application/queries"
	"evergreen/contexts/learning/submission-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Repository ports.Repository
	Dispatcher ports.EventDispatcher
	Clock      ports.Clock
	IDGen      ports.IDGenerator
	Logger     *slog.Logger
}

func NewModule(deps Dependencies) Module {
	return Module{
		Handler: httpadapter.Handler{
			Submit: commands.SubmitProjectUseCase{
				Repository: deps.Repository,
				Dispatcher: deps.Dispatcher,
				Clock:      deps.Clock,
				IDGen:      deps.IDGen,
				Logger:     deps.Logger,
			},
			Queries: queries.SubmissionQueries{
				Repository: deps.Repository,
			},
		},
	}
}

// NewInMemoryModule backs the repository with the memory store; used for
// local development and tests.
func NewInMemoryModule(dispatcher ports.EventDispatcher, logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Repository: store,
		Dispatcher: dispatcher,
		Clock:      store,
		IDGen:      store,
		Logger:     logger,
	})
	module.Store = store
	return module
}
