package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/ipai-lab/taskboard/pkg/domain/types"
	"github.com/ipai-lab/taskboard/pkg/usecase"
	"github.com/ipai-lab/taskboard/pkg/utils/logging"
)

type Server struct {
	router *chi.Mux
	uc     *usecase.UseCases
}

type Options func(*Server)

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router: r,
		uc:     uc,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger)
	r.Use(middleware.Recoverer)
	r.Use(contractVersion)

	r.Route("/api", func(r chi.Router) {
		r.Route("/boards", func(r chi.Router) {
			r.Get("/", s.listBoards)
			r.Get("/{boardID}", s.getBoard)
			r.Get("/{boardID}/cards", s.listCards)
			r.Get("/{boardID}/stats", s.boardStats)
		})
		r.Route("/cards", func(r chi.Router) {
			r.Post("/", s.createCard)
			r.Get("/{cardID}", s.getCard)
			r.Patch("/{cardID}", s.updateCard)
			r.Post("/{cardID}/comments", s.createComment)
			r.Get("/{cardID}/activity", s.cardActivity)
		})
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// contractVersion stamps every response with the contract version the
// server speaks.
func contractVersion(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(types.ContractVersionHeader, types.ContractVersion)
		next.ServeHTTP(w, r)
	})
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		defer func() {
			logging.Default().Info("access",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"remote", r.RemoteAddr,
				"user_agent", r.UserAgent(),
			)
		}()

		next.ServeHTTP(ww, r)
	})
}
