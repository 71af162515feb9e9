package room

import (
	"time"

	"galaxypoker-server/internal/config"
	"galaxypoker-server/pkg/holdem"

	"github.com/google/uuid"
)

// Table is a poker table that hosts successive hands of Texas Hold'em
type Table struct {
	UUID      string         `json:"uuid"`
	Name      string         `json:"name"`
	Options   holdem.Options `json:"options"`
	TurnClock time.Duration  `json:"-"`
	Created   time.Time      `json:"created"`
}

// NewTable returns a new table using the configured stakes
func NewTable(name string) *Table {
	c := config.Instance()

	return &Table{
		UUID: uuid.New().String(),
		Name: name,
		Options: holdem.Options{
			SmallBlind: c.Table.SmallBlind,
			BigBlind:   c.Table.BigBlind,
		},
		TurnClock: time.Duration(c.Table.TurnClock) * time.Second,
		Created:   time.Now(),
	}
}
