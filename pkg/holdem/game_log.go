package holdem

import (
	"time"

	"github.com/sirupsen/logrus"
)

// LogEntry is a single event in the hand's audit trail
type LogEntry struct {
	Time       time.Time `json:"time"`
	Phase      Phase     `json:"phase"`
	SeatNumber int       `json:"seatNumber"`
	PlayerID   int64     `json:"playerId"`
	Message    string    `json:"message"`
	Amount     int       `json:"amount,omitempty"`
}

func (g *Game) appendLog(seat *Seat, message string, amount int) {
	entry := &LogEntry{
		Time:       time.Now(),
		Phase:      g.phase,
		SeatNumber: seat.Number,
		PlayerID:   seat.PlayerID,
		Message:    message,
		Amount:     amount,
	}

	g.actionLog = append(g.actionLog, entry)
	g.log.WithFields(logrus.Fields{
		"seat":  seat.Number,
		"phase": g.phase.String(),
	}).Debug(message)
}

// ActionLog returns the ordered audit trail for the hand
func (g *Game) ActionLog() []*LogEntry {
	log := make([]*LogEntry, len(g.actionLog))
	copy(log, g.actionLog)
	return log
}
