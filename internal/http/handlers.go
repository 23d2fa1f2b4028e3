package http

import (
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kickabout/internal/fixture"
	"github.com/mauv0809/kickabout/internal/metrics"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/pubsub"
	"github.com/mauv0809/kickabout/internal/roster"
	"github.com/mauv0809/kickabout/internal/settings"
)

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

// StatsHandler returns the durable business counters.
func (s *Server) StatsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := s.Counters.GetAll()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}
}

func (s *Server) AddPlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in roster.PlayerInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err)
			return
		}
		player, err := s.Roster.AddPlayer(r.PathValue("userID"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, player)
	}
}

func (s *Server) ListPlayersHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		players, err := s.Roster.GetPlayers(r.PathValue("userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, players)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in roster.PlayerInput
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err)
			return
		}
		player, err := s.Roster.UpdatePlayer(r.PathValue("userID"), r.PathValue("id"), in)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, player)
	}
}

func (s *Server) DeletePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Roster.DeletePlayer(r.PathValue("userID"), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Player deleted"})
	}
}

// GenerateTeamsHandler splits either inline players or roster players picked
// by id into two teams.
func (s *Server) GenerateTeamsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req generateTeamsRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}

		players := req.Players
		if len(req.PlayerIDs) > 0 {
			if req.UserID == "" {
				writeError(w, fmt.Errorf("%w: userId is required with playerIds", errInvalidInput))
				return
			}
			selected, err := s.Roster.GetPlayersByID(req.UserID, req.PlayerIDs)
			if err != nil {
				writeError(w, err)
				return
			}
			players = roster.EnginePlayers(selected)
		} else if err := validatePlayers(players); err != nil {
			writeError(w, err)
			return
		}

		result, err := s.Engine.Generate(players, req.PreviousTeams)
		if err != nil {
			log.Warn("Rejected team generation", "error", err, "players", len(players))
			writeError(w, err)
			return
		}

		s.Metrics.IncTeamsGenerated()
		s.Metrics.ObserveGenerationAttempts(result.Attempts)
		s.Counters.Increment(metrics.KeyTeamsGenerated)
		log.Info("Generated teams", "players", len(players), "attempts", result.Attempts, "diff", result.Stats.Diff)
		writeJSON(w, http.StatusOK, result)
	}
}

func (s *Server) PlanMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req planMatchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		date, err := parseDate(req.Date, s.loc)
		if err != nil {
			writeError(w, err)
			return
		}
		match, err := s.Fixtures.Plan(r.PathValue("userID"), fixture.Plan{
			TeamA:      req.TeamA,
			TeamB:      req.TeamB,
			Stats:      req.Stats,
			Prediction: req.Prediction,
			Location:   req.Location,
			Date:       date,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		s.Counters.Increment(metrics.KeyMatchesPlanned)
		writeJSON(w, http.StatusCreated, match)
	}
}

func (s *Server) ListMatchesHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		matches, err := s.Fixtures.List(r.PathValue("userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, matches)
	}
}

func (s *Server) GetMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		match, err := s.Fixtures.Get(r.PathValue("userID"), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) UpdateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateMatchRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		u := fixture.Update{
			ScoreA:   req.ScoreA,
			ScoreB:   req.ScoreB,
			MVP:      req.MVP,
			Location: req.Location,
			Status:   req.Status,
		}
		if req.Date != nil {
			date, err := parseDate(*req.Date, s.loc)
			if err != nil {
				writeError(w, err)
				return
			}
			u.Date = &date
		}

		userID, id := r.PathValue("userID"), r.PathValue("id")
		before, err := s.Fixtures.Get(userID, id)
		if err != nil {
			writeError(w, err)
			return
		}
		match, err := s.Fixtures.Update(userID, id, u)
		if err != nil {
			writeError(w, err)
			return
		}
		if before.Status != fixture.StatusCompleted && match.Status == fixture.StatusCompleted {
			s.Counters.Increment(metrics.KeyMatchesCompleted)
		}
		writeJSON(w, http.StatusOK, match)
	}
}

func (s *Server) DeleteMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.Fixtures.Delete(r.PathValue("userID"), r.PathValue("id")); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Match deleted"})
	}
}

func (s *Server) AnnounceMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		delivery, err := s.Announcer.AnnounceMatch(r.Context(), r.PathValue("userID"), r.PathValue("id"), isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, announceResponse{Message: "Announcement " + string(delivery), Delivery: delivery})
	}
}

func (s *Server) GetSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := s.Settings.Get(r.PathValue("userID"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func (s *Server) SaveSettingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in settings.Settings
		if err := decodeJSON(w, r, &in); err != nil {
			writeError(w, err)
			return
		}
		if err := s.Settings.Save(r.PathValue("userID"), in); err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: "Settings saved"})
	}
}

// AnnouncementHandler sends an announcement built by the client, for matches
// that were never stored.
func (s *Server) AnnouncementHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req announcementRequest
		if err := decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		date, err := parseDate(req.Date, s.loc)
		if err != nil {
			writeError(w, err)
			return
		}
		a := &notifier.Announcement{
			TeamA:      req.TeamA,
			TeamB:      req.TeamB,
			Location:   req.Location,
			Date:       date,
			Prediction: req.Prediction,
			ScoreA:     req.ScoreA,
			ScoreB:     req.ScoreB,
			MVP:        req.MVP,
		}
		delivery, err := s.Announcer.Announce(r.Context(), r.PathValue("userID"), a, isDryRunFromContext(r))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, announceResponse{Message: "Announcement " + string(delivery), Delivery: delivery})
	}
}

// PubSubAnnounceHandler receives queued announcements pushed by Pub/Sub. A
// non-2xx answer makes Pub/Sub redeliver.
func (s *Server) PubSubAnnounceHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body, err := readBody(w, r)
		if err != nil {
			http.Error(w, "Failed to read request body", http.StatusBadRequest)
			return
		}
		log.Debug("Received announce message", "body", string(body))

		event, data, err := pubsub.ParsePush(body)
		if err != nil {
			log.Error("Failed to parse push message", "error", err)
			http.Error(w, "Invalid push message", http.StatusBadRequest)
			return
		}
		if event != "" && event != pubsub.EventAnnounce {
			log.Warn("Ignoring unexpected event", "event", event)
			w.Write([]byte("OK"))
			return
		}
		if err := s.Announcer.HandleEvent(r.Context(), data); err != nil {
			log.Error("Failed to handle announce event", "error", err)
			http.Error(w, "Failed to deliver announcement", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
