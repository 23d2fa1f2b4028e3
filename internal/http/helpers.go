package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/kickabout/internal/balancer"
	"github.com/mauv0809/kickabout/internal/fixture"
	"github.com/mauv0809/kickabout/internal/notifier"
	"github.com/mauv0809/kickabout/internal/roster"
)

const maxBodyBytes = 1 << 20

var errInvalidInput = errors.New("invalid input")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, err error) {
	status := errorStatus(err)
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		writeJSON(w, status, errorResponse{Error: "internal server error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

// errorStatus maps domain errors to HTTP status codes.
func errorStatus(err error) int {
	switch {
	case errors.Is(err, errInvalidInput),
		errors.Is(err, balancer.ErrInsufficientPlayers),
		errors.Is(err, balancer.ErrTooManyGoalkeepers),
		errors.Is(err, roster.ErrInvalidPlayer),
		errors.Is(err, fixture.ErrInvalidMatch),
		errors.Is(err, fixture.ErrInvalidUpdate),
		errors.Is(err, notifier.ErrNotConfigured):
		return http.StatusBadRequest
	case errors.Is(err, roster.ErrPlayerNotFound),
		errors.Is(err, fixture.ErrMatchNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	return io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
}

// decodeJSON reads a JSON body into v, rejecting oversized and malformed input.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body, err := readBody(w, r)
	if err != nil {
		return fmt.Errorf("%w: failed to read request body: %v", errInvalidInput, err)
	}
	log.Debug("Request body", "body", string(body))
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("%w: %v", errInvalidInput, err)
	}
	return nil
}

// validatePlayers rejects engine input the roster would never have stored.
func validatePlayers(players []balancer.Player) error {
	seen := make(map[string]struct{}, len(players))
	for i, p := range players {
		_, dup := seen[p.ID]
		seen[p.ID] = struct{}{}
		switch {
		case p.ID == "":
			return fmt.Errorf("%w: player %d has no id", errInvalidInput, i)
		case dup:
			return fmt.Errorf("%w: player %s is listed more than once", errInvalidInput, p.ID)
		case !p.Position.Valid():
			return fmt.Errorf("%w: player %s has an unknown position %q", errInvalidInput, p.ID, p.Position)
		case p.Rating < roster.MinRating || p.Rating > roster.MaxRating:
			return fmt.Errorf("%w: player %s has rating %d, expected %d-%d", errInvalidInput, p.ID, p.Rating, roster.MinRating, roster.MaxRating)
		}
	}
	return nil
}

// dateLayouts are tried in order. Layouts without a zone are read in the
// configured timezone, that is what HTML datetime-local inputs send.
var dateLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04", "2006-01-02 15:04"}

func parseDate(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognised date %q", errInvalidInput, s)
}
