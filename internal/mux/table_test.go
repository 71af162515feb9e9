package mux

import (
	"net/http/httptest"
	"net/url"
	"testing"

	"galaxypoker-server/pkg/room"

	"github.com/stretchr/testify/assert"
)

func TestMux_postTable(t *testing.T) {
	setupJWT()
	a := assert.New(t)
	m := NewMux("", nil)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var errObj errorResponse
	assertPost(t, ts, "/table", postTablePayload{Name: "x"}, &errObj, 400)
	a.Equal("name must be 3-40 characters", errObj.Message)

	assertPost(t, ts, "/table", "not json", &errObj, 400)

	var tbl room.Table
	assertPost(t, ts, "/table", postTablePayload{Name: "High Rollers"}, &tbl, 201)
	a.Equal("High Rollers", tbl.Name)
	a.NotEmpty(tbl.UUID)
	a.Equal(25, tbl.Options.SmallBlind)
	a.Equal(50, tbl.Options.BigBlind)
}

func TestMux_joinAndAuth(t *testing.T) {
	setupJWT()
	a := assert.New(t)
	m := NewMux("", nil)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var tbl room.Table
	assertPost(t, ts, "/table", postTablePayload{Name: "Orbit Lounge"}, &tbl, 201)

	// unknown table
	var errObj errorResponse
	assertPost(t, ts, "/table/00000000-0000-0000-0000-000000000000/join", postTableUUIDJoinPayload{PlayerID: 1}, &errObj, 404)

	assertPost(t, ts, "/table/"+tbl.UUID+"/join", postTableUUIDJoinPayload{PlayerID: 0}, &errObj, 400)
	a.Equal("playerId must be greater than zero", errObj.Message)

	var joined postTableUUIDJoinResponse
	assertPost(t, ts, "/table/"+tbl.UUID+"/join", postTableUUIDJoinPayload{PlayerID: 7}, &joined, 201)
	a.NotEmpty(joined.JWT)
	a.Equal(tbl.UUID, joined.Table.UUID)

	// table info requires the token
	assertGet(t, ts, "/table/"+tbl.UUID, &errObj, 401)

	var gotTable room.Table
	resp := assertGetWithResp(t, ts, "/table/"+tbl.UUID, &gotTable, 200, joined.JWT)
	a.Equal(tbl.UUID, gotTable.UUID)
	a.Equal("7", resp.Header.Get("GalaxyPoker-PlayerID"))
	_ = resp.Body.Close()

	// access_token query parameter works for websocket-style clients
	assertGet(t, ts, "/table/"+tbl.UUID+"?access_token="+url.QueryEscape(joined.JWT), &gotTable, 200)

	// a token for one table does not open another
	var other room.Table
	assertPost(t, ts, "/table", postTablePayload{Name: "Second Table"}, &other, 201)
	assertGet(t, ts, "/table/"+other.UUID, &errObj, 403, joined.JWT)
}

func TestMux_handHistoryUnavailableWithoutStore(t *testing.T) {
	setupJWT()
	a := assert.New(t)
	m := NewMux("", nil)
	ts := httptest.NewServer(m)
	defer ts.Close()

	var tbl room.Table
	assertPost(t, ts, "/table", postTablePayload{Name: "No History"}, &tbl, 201)

	var joined postTableUUIDJoinResponse
	assertPost(t, ts, "/table/"+tbl.UUID+"/join", postTableUUIDJoinPayload{PlayerID: 3}, &joined, 201)

	var errObj errorResponse
	assertGet(t, ts, "/table/"+tbl.UUID+"/hand", &errObj, 503, joined.JWT)
	a.Equal("hand history is not available", errObj.Message)
}
