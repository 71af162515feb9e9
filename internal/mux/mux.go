package mux

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"galaxypoker-server/internal/jwt"
	"galaxypoker-server/pkg/history"
	"galaxypoker-server/pkg/room"

	gmux "github.com/gorilla/mux"
)

type ctxKey int

const (
	ctxPlayerKey ctxKey = iota
	ctxTableKey
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	history *history.Store

	lock   sync.RWMutex
	tables map[string]*room.Table
}

// NewMux returns a new HTTP mux.
// The history store may be nil, in which case hands are not persisted.
func NewMux(version string, store *history.Store) *Mux {
	var saver room.HandSaver
	if store != nil {
		saver = store
	}

	pitBoss := room.NewPitBoss(saver)
	pitBoss.StartShift()

	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		history: store,
		tables:  make(map[string]*room.Table),
	}

	// unauthorized endpoints
	{
		r := this.Router
		r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
		r.Methods(http.MethodPost).Path("/table").Handler(this.postTable())
	}

	// table-scoped endpoints
	{
		tr := this.Router.PathPrefix("/table/{uuid:(?i)[a-f0-9]{8}(?:-[a-f0-9]{4}){3}-[a-f0-9]{12}}").Subrouter()
		tr.Use(this.tableMiddleware)

		tr.Methods(http.MethodPost).Path("/join").Handler(this.postTableUUIDJoin())

		ar := tr.NewRoute().Subrouter()
		ar.Use(this.authMiddleware)

		ar.Methods(http.MethodGet).Path("").Handler(this.getTableUUID())
		ar.Methods(http.MethodGet).Path("/ws").Handler(this.getTableUUIDWS())
		ar.Methods(http.MethodGet).Path("/hand").Handler(this.getTableUUIDHand())
	}

	return this
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := gmux.Vars(r)["uuid"]

		m.lock.RLock()
		tbl, found := m.tables[strings.ToLower(uuid)]
		m.lock.RUnlock()

		if !found {
			writeJSONError(w, http.StatusNotFound, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, tbl)
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

// authMiddleware requires a table access token, either as a bearer token or
// an access_token parameter for websocket clients
func (m *Mux) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.FormValue("access_token")
		if token == "" {
			authHeader := strings.Split(r.Header.Get("Authorization"), " ")
			if len(authHeader) != 2 || strings.ToLower(authHeader[0]) != "bearer" {
				writeJSONError(w, http.StatusUnauthorized, nil)
				return
			}

			token = authHeader[1]
		}

		playerID, tableUUID, err := jwt.ValidTableAccess(token)
		if err != nil {
			writeJSONError(w, http.StatusUnauthorized, nil)
			return
		}

		tbl := r.Context().Value(ctxTableKey).(*room.Table)
		if tbl.UUID != tableUUID {
			writeJSONError(w, http.StatusForbidden, nil)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxPlayerKey, playerID)
		w.Header().Set("GalaxyPoker-PlayerID", strconv.FormatInt(playerID, 10))
		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}

func (m *Mux) addTable(tbl *room.Table) {
	m.lock.Lock()
	m.tables[tbl.UUID] = tbl
	m.lock.Unlock()
}
