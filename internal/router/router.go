package router

import (
	"context"
	"database/sql"
	"net/http"

	mem "horse-registry/internal/adapters/storage/memory"
	pg "horse-registry/internal/adapters/storage/postgres"
	"horse-registry/internal/domain/horses"
	"horse-registry/internal/domain/owners"
	"horse-registry/internal/middleware"
	"horse-registry/internal/platform/logger"

	_ "horse-registry/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// Opcional: nil => no loguea.
	Logger logger.Logger
}

// NewRouter arma la API. Con DB crea el esquema si falta; el error de esquema se devuelve.
func NewRouter(ctx context.Context, opts Options) (http.Handler, error) {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		horseRepo horses.Repository
		ownerRepo owners.Repository
	)
	if opts.DB != nil {
		if err := pg.EnsureSchema(ctx, opts.DB); err != nil {
			return nil, err
		}
		horseRepo = pg.NewHorsesRepo(opts.DB)
		ownerRepo = pg.NewOwnersRepo(opts.DB)
		log.Info("using postgres storage", nil)
	} else {
		horseRepo = mem.NewHorseRepo()
		ownerRepo = mem.NewOwnerRepo()
		log.Info("using in-memory storage", nil)
	}

	// Services por módulo
	ownersSvc := owners.NewService(ownerRepo)
	horsesSvc := horses.NewService(horseRepo, ownersSvc, log.With(map[string]any{"module": "horses"}))

	// Borrar un owner deja sus caballos sin owner
	ownersSvc.OnDelete(horsesSvc.DetachOwner)

	// Rutas por módulo
	owners.RegisterRoutes(r, ownersSvc)
	horses.RegisterRoutes(r, horsesSvc)

	return r, nil
}
