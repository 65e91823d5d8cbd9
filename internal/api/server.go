package api

import (
	"net/http"

	"github.com/faunadata/fauna/internal/logging"
	"github.com/faunadata/fauna/internal/monitor"
	"github.com/faunadata/fauna/internal/species"
	"github.com/rs/zerolog"
)

// SpeciesStore is the read side of the species catalogue.
type SpeciesStore interface {
	Summaries() ([]species.Summary, error)
	Get(id int) (species.Species, error)
	ByHabitat(habitat string) ([]species.Species, error)
	WithCoordinates() ([]species.Species, error)
	HabitatOf(id int) (species.HabitatResponse, error)
}

type Options struct {
	Store       SpeciesStore
	Broadcaster *monitor.Broadcaster
	Logger      zerolog.Logger
	// QuietPaths are served without a request log line.
	QuietPaths []string
}

type APIServer struct {
	router      *http.ServeMux
	store       SpeciesStore
	broadcaster *monitor.Broadcaster
	logger      zerolog.Logger
	quietPaths  []string
}

func NewServer(opts Options) *APIServer {
	s := &APIServer{
		router:      http.NewServeMux(),
		store:       opts.Store,
		broadcaster: opts.Broadcaster,
		logger:      opts.Logger,
		quietPaths:  opts.QuietPaths,
	}
	s.setupRoutes()
	return s
}

// Handler returns the full middleware chain. The interceptor sits inside the
// request logger and outside panic recovery so recovered panics are published
// as 500s.
func (s *APIServer) Handler() http.Handler {
	var h http.Handler = s.router
	h = s.recoverMiddleware(h)
	h = s.broadcaster.Interceptor(h)
	h = logging.RequestLogger(logging.RequestLoggerConfig{
		Logger:    s.logger,
		SkipPaths: s.quietPaths,
	})(h)
	return h
}
