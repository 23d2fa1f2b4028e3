package http

import (
	"net/http"

	"github.com/mauv0809/kickabout/internal/announcer"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/config"
	"github.com/mauv0809/kickabout/internal/fixture"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/roster"
	"github.com/mauv0809/kickabout/internal/settings"
)

func NewServer(cfg config.Config, rosterStore roster.RosterStore, fixtures fixture.FixtureStore, settingsStore settings.Store, engine *balancer.Engine, ann *announcer.Announcer, metricsSvc metrics.Metrics, counters metrics.Store, metricsHandler http.Handler) *Server {
	server := &Server{
		Roster:         rosterStore,
		Fixtures:       fixtures,
		Settings:       settingsStore,
		Engine:         engine,
		Announcer:      ann,
		Metrics:        metricsSvc,
		Counters:       counters,
		MetricsHandler: metricsHandler,
		Cfg:            cfg,
		Router:         http.NewServeMux(),
		loc:            cfg.Location(),
	}

	server.routes()
	return server
}

func (s *Server) routes() {
	// All handlers are wrapped with middleware using the Chain helper.
	// e.g. Chain(s.MyHandler(), paramsMiddleware, authMiddleware)
	s.Router.Handle("GET /metrics", s.MetricsHandler)
	s.Router.Handle("GET /health", Chain(s.HealthCheckHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/stats", Chain(s.StatsHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/players/{userID}", Chain(s.AddPlayerHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/players/{userID}", Chain(s.ListPlayersHandler(), paramsMiddleware))
	s.Router.Handle("PUT /api/players/{userID}/{id}", Chain(s.UpdatePlayerHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/players/{userID}/{id}", Chain(s.DeletePlayerHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/generate-teams", Chain(s.GenerateTeamsHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/matches/{userID}", Chain(s.PlanMatchHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/matches/{userID}", Chain(s.ListMatchesHandler(), paramsMiddleware))
	s.Router.Handle("GET /api/matches/{userID}/{id}", Chain(s.GetMatchHandler(), paramsMiddleware))
	s.Router.Handle("PUT /api/matches/{userID}/{id}", Chain(s.UpdateMatchHandler(), paramsMiddleware))
	s.Router.Handle("DELETE /api/matches/{userID}/{id}", Chain(s.DeleteMatchHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/matches/{userID}/{id}/announce", Chain(s.AnnounceMatchHandler(), paramsMiddleware))

	s.Router.Handle("GET /api/settings/{userID}", Chain(s.GetSettingsHandler(), paramsMiddleware))
	s.Router.Handle("POST /api/settings/{userID}", Chain(s.SaveSettingsHandler(), paramsMiddleware))

	s.Router.Handle("POST /api/announcements/{userID}", Chain(s.AnnouncementHandler(), paramsMiddleware))
	s.Router.Handle("POST /pubsub/announce", Chain(s.PubSubAnnounceHandler(), paramsMiddleware))
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	corsMiddleware(s.Router).ServeHTTP(w, r)
}
