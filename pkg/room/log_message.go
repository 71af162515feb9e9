package room

import (
	"time"

	"github.com/google/uuid"
)

const logMessageLimit = 25

// LogMessage is a table log entry shown to the players
type LogMessage struct {
	UUID     string    `json:"uuid"`
	PlayerID int64     `json:"playerId"`
	Seat     int       `json:"seat"`
	Message  string    `json:"message"`
	Time     time.Time `json:"time"`
}

// flushGameLog converts any new game log entries to table log messages and
// broadcasts them
// Note: this must only be called from within the run loop
func (d *Dealer) flushGameLog() {
	entries := d.game.ActionLog()
	if d.lastLogIndex >= len(entries) {
		return
	}

	messages := make([]*LogMessage, 0, len(entries)-d.lastLogIndex)
	for _, entry := range entries[d.lastLogIndex:] {
		messages = append(messages, &LogMessage{
			UUID:     uuid.New().String(),
			PlayerID: entry.PlayerID,
			Seat:     entry.SeatNumber,
			Message:  entry.Message,
			Time:     entry.Time,
		})
	}

	d.lastLogIndex = len(entries)
	d.addLogMessages(messages)

	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:  "logs",
			Data: messages,
		})
	}
}

// addLogMessages appends to the table log, keeping only the most recent
// messages
// Note: this must only be called from within the run loop
func (d *Dealer) addLogMessages(messages []*LogMessage) {
	m := append(d.logMessages, messages...)
	count := len(m)
	if count > logMessageLimit {
		m = m[count-logMessageLimit:]
	}

	d.logMessages = m
}
