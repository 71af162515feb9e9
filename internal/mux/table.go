package mux

import (
	"errors"
	"net/http"
	"regexp"

	"galaxypoker-server/internal/jwt"
	"galaxypoker-server/pkg/room"
)

type postTablePayload struct {
	Name string `json:"name"`
}

func (m *Mux) postTable() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		tbl := room.NewTable(pp.Name)
		m.addTable(tbl)

		writeJSON(w, http.StatusCreated, tbl)
	}
}

type postTableUUIDJoinPayload struct {
	PlayerID int64 `json:"playerId"`
}

type postTableUUIDJoinResponse struct {
	Table *room.Table `json:"table"`
	JWT   string      `json:"jwt"`
}

// postTableUUIDJoin issues a table access token for the player
func (m *Mux) postTableUUIDJoin() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var pp postTableUUIDJoinPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if pp.PlayerID <= 0 {
			writeJSONError(w, http.StatusBadRequest, errors.New("playerId must be greater than zero"))
			return
		}

		tbl := r.Context().Value(ctxTableKey).(*room.Table)

		signed, err := jwt.Sign(pp.PlayerID, tbl.UUID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, postTableUUIDJoinResponse{
			Table: tbl,
			JWT:   signed,
		})
	})
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*room.Table)
		writeJSON(w, http.StatusOK, tbl)
	})
}

// getTableUUIDHand returns the table's hand history, most recent first
func (m *Mux) getTableUUIDHand() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.history == nil {
			writeJSONError(w, http.StatusServiceUnavailable, errors.New("hand history is not available"))
			return
		}

		offset, limit, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		tbl := r.Context().Value(ctxTableKey).(*room.Table)
		hands, err := m.history.GetHands(r.Context(), tbl.UUID, offset, limit)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusOK, hands)
	})
}
