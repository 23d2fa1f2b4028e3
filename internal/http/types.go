package http

import (
	"net/http"
	"time"

	"github.com/mauv0809/kickabout/internal/announcer"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/config"
	"github.com/mauv0809/kickabout/internal/fixture"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/roster"
	"github.com/mauv0809/kickabout/internal/settings"
)

type Server struct {
	Roster         roster.RosterStore
	Fixtures       fixture.FixtureStore
	Settings       settings.Store
	Engine         *balancer.Engine
	Announcer      *announcer.Announcer
	Metrics        metrics.Metrics
	Counters       metrics.Store
	MetricsHandler http.Handler
	Cfg            config.Config
	Router         *http.ServeMux

	loc *time.Location
}

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type generateTeamsRequest struct {
	Players       []balancer.Player `json:"players"`
	UserID        string            `json:"userId"`
	PlayerIDs     []string          `json:"playerIds"`
	PreviousTeams *balancer.Pairing `json:"previousTeams"`
}

type planMatchRequest struct {
	TeamA      []balancer.Player `json:"teamA"`
	TeamB      []balancer.Player `json:"teamB"`
	Stats      balancer.Stats    `json:"stats"`
	Prediction string            `json:"prediction"`
	Location   string            `json:"location"`
	Date       string            `json:"date"`
}

// updateMatchRequest mirrors fixture.Update, absent fields stay untouched.
type updateMatchRequest struct {
	ScoreA   *int            `json:"scoreA"`
	ScoreB   *int            `json:"scoreB"`
	MVP      *string         `json:"mvp"`
	Location *string         `json:"location"`
	Date     *string         `json:"date"`
	Status   *fixture.Status `json:"status"`
}

type announcementRequest struct {
	TeamA      []balancer.Player `json:"teamA"`
	TeamB      []balancer.Player `json:"teamB"`
	Location   string            `json:"location"`
	Date       string            `json:"date"`
	Prediction string            `json:"prediction"`
	ScoreA     *int              `json:"scoreA"`
	ScoreB     *int              `json:"scoreB"`
	MVP        string            `json:"mvp"`
}

type announceResponse struct {
	Message  string             `json:"message"`
	Delivery announcer.Delivery `json:"delivery"`
}
