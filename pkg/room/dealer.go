package room

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"galaxypoker-server/internal/rng"
	"galaxypoker-server/pkg/holdem"

	"github.com/sirupsen/logrus"
)

type state int

const (
	stateClientEvent state = iota
	stateGameEvent
	stateHandEnded
)

const saveHandTimeout = time.Second * 10

// HandSaver persists completed hands
type HandSaver interface {
	SaveHand(ctx context.Context, tableUUID string, result *holdem.GameResult, log []*holdem.LogEntry) error
}

// tableSeat is a player's standing position at the table between hands
type tableSeat struct {
	PlayerID   int64
	Stack      int
	SittingOut bool
}

// Dealer is responsible for running hands at a single table.
// All game state is owned by the run loop; the exported methods only
// enqueue work, so every mutation is serialized without locks.
type Dealer struct {
	pitBoss *PitBoss
	table   *Table
	saver   HandSaver
	clients map[*Client]bool
	lock    sync.RWMutex

	// run loop state
	seats        map[int]*tableSeat
	dealerSeat   int
	game         *holdem.Game
	logMessages  []*LogMessage
	lastLogIndex int

	turnGeneration int
	turnTimer      *time.Timer

	execInRunLoop chan func()
	stateChanged  chan state
	close         chan bool
}

// NewDealer creates a new dealer object
// This is called from a blocking state, so it needs to return quickly
func NewDealer(pitBoss *PitBoss, table *Table, saver HandSaver) *Dealer {
	return &Dealer{
		pitBoss:       pitBoss,
		table:         table,
		saver:         saver,
		clients:       make(map[*Client]bool),
		seats:         make(map[int]*tableSeat),
		dealerSeat:    -1,
		execInRunLoop: make(chan func(), 256),
		stateChanged:  make(chan state, 256),
		close:         make(chan bool),
	}
}

// Clients will return a slice of connected (at the time) clients
func (d *Dealer) Clients() []*Client {
	d.lock.RLock()
	defer d.lock.RUnlock()

	clients := make([]*Client, 0, len(d.clients))
	for client := range d.clients {
		clients = append(clients, client)
	}

	return clients
}

// StartShift starts the run loop
func (d *Dealer) StartShift() {
	go d.runLoop()
}

func (d *Dealer) runLoop() {
	log := logrus.WithFields(logrus.Fields{
		"uuid": d.table.UUID,
		"name": d.table.Name,
	})

	log.Debug("creating dealer run loop")
	for {
		select {
		case s := <-d.stateChanged:
			switch s {
			case stateClientEvent:
				d.sendSeatData()
			case stateGameEvent:
				d.sendGameData()
			case stateHandEnded:
				d.sendHandEnded()
				d.sendSeatData()
			}
		case fn := <-d.execInRunLoop:
			fn()
		case <-d.close:
			if d.turnTimer != nil {
				d.turnTimer.Stop()
			}

			log.Debug("terminating dealer run loop")
			return
		}
	}
}

// AddClient adds a client
// This method must return quickly
func (d *Dealer) AddClient(client *Client) {
	d.lock.Lock()
	client.dealer = d
	d.clients[client] = true
	d.lock.Unlock()

	d.stateChanged <- stateClientEvent
	d.execInRunLoop <- func() {
		if d.game == nil {
			return
		}

		client.Send(newStateResponse(d.game.StateForPlayer(client.playerID)))
	}
}

// RemoveClient removes a client
// This method must return quickly
func (d *Dealer) RemoveClient(client *Client) (lastClient bool) {
	d.lock.Lock()
	delete(d.clients, client)
	nClients := len(d.clients)
	d.lock.Unlock()

	if nClients > 0 {
		d.stateChanged <- stateClientEvent
		return false
	}

	return true
}

// EndShift is called when the dealer is no longer needed
func (d *Dealer) EndShift() {
	close(d.close)
}

// ReceivedMessage is called when a client sends a message to the server
func (d *Dealer) ReceivedMessage(c *Client, msg *PayloadIn) {
	switch msg.Action {
	case "sit":
		d.execInRunLoop <- func() {
			if err := d.sit(c.playerID, msg.Seat, msg.Amount); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateClientEvent
		}
	case "stand":
		d.execInRunLoop <- func() {
			if err := d.stand(c.playerID); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateClientEvent
		}
	case "startHand":
		d.execInRunLoop <- func() {
			if err := d.startHand(); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
			d.stateChanged <- stateGameEvent
		}
	case "state":
		d.execInRunLoop <- func() {
			if d.game == nil {
				c.Send(newErrorResponse(msg.Context, errors.New("no hand in progress")))
				return
			}

			c.Send(newStateResponse(d.game.StateForPlayer(c.playerID)))
		}
	default:
		actionType, err := holdem.ActionTypeFromString(msg.Action)
		if err != nil {
			logrus.WithField("msg", msg).Warn("unknown message")
			c.Send(newErrorResponse(msg.Context, err))
			return
		}

		d.execInRunLoop <- func() {
			if err := d.playerAction(c.playerID, holdem.Action{Type: actionType, Amount: msg.Amount}); err != nil {
				c.Send(newErrorResponse(msg.Context, err))
				return
			}

			c.Send(OK(msg.Context))
		}
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) sit(playerID int64, seat, buyIn int) error {
	if seat < 0 {
		return errors.New("seat cannot be negative")
	}

	if buyIn <= 0 {
		return errors.New("buy-in must be greater than zero")
	}

	if _, occupied := d.seats[seat]; occupied {
		return fmt.Errorf("seat %d is taken", seat)
	}

	for _, s := range d.seats {
		if s.PlayerID == playerID {
			return errors.New("you are already seated")
		}
	}

	d.seats[seat] = &tableSeat{
		PlayerID: playerID,
		Stack:    buyIn,
	}

	return nil
}

// NOTE: must only be called from the run loop
func (d *Dealer) stand(playerID int64) error {
	if d.game != nil && !d.game.Phase().IsTerminal() {
		return errors.New("cannot stand during a hand")
	}

	for number, s := range d.seats {
		if s.PlayerID == playerID {
			delete(d.seats, number)
			return nil
		}
	}

	return errors.New("you are not seated")
}

// NOTE: must only be called from the run loop
func (d *Dealer) startHand() error {
	if d.game != nil && !d.game.Phase().IsTerminal() {
		return errors.New("a hand is already in progress")
	}

	configs := make([]holdem.SeatConfig, 0, len(d.seats))
	for number, s := range d.seats {
		configs = append(configs, holdem.SeatConfig{
			Number:     number,
			PlayerID:   s.PlayerID,
			Stack:      s.Stack,
			SittingOut: s.SittingOut,
		})
	}

	d.advanceButton()

	game, err := holdem.NewGame(logrus.WithField("table", d.table.UUID), configs, d.dealerSeat, d.table.Options, rng.Crypto{})
	if err != nil {
		return err
	}

	if err := game.StartHand(); err != nil {
		return err
	}

	d.game = game
	d.lastLogIndex = 0
	d.flushGameLog()
	d.scheduleTurnClock()

	if game.Phase().IsTerminal() {
		d.finishHand()
	}

	return nil
}

// advanceButton moves the dealer button to the next occupied seat with chips
func (d *Dealer) advanceButton() {
	next := -1
	smallest := -1
	for number, s := range d.seats {
		if s.Stack == 0 || s.SittingOut {
			continue
		}

		if smallest < 0 || number < smallest {
			smallest = number
		}

		if number > d.dealerSeat && (next < 0 || number < next) {
			next = number
		}
	}

	if next < 0 {
		next = smallest
	}

	if next >= 0 {
		d.dealerSeat = next
	}
}

// NOTE: must only be called from the run loop
func (d *Dealer) playerAction(playerID int64, action holdem.Action) error {
	if d.game == nil {
		return errors.New("no hand in progress")
	}

	seatNumber := -1
	for number, s := range d.seats {
		if s.PlayerID == playerID {
			seatNumber = number
			break
		}
	}

	if seatNumber < 0 {
		return errors.New("you are not seated")
	}

	return d.applyAction(seatNumber, action)
}

// NOTE: must only be called from the run loop
func (d *Dealer) applyAction(seatNumber int, action holdem.Action) error {
	_, err := d.game.ApplyAction(seatNumber, action)
	if err != nil {
		if holdem.IsFatal(err) {
			d.abortHand(err)
		}

		return err
	}

	d.flushGameLog()
	d.stateChanged <- stateGameEvent
	d.scheduleTurnClock()

	if d.game.Phase().IsTerminal() {
		d.finishHand()
	}

	return nil
}

// scheduleTurnClock arms the turn clock for the seat on the clock. When it
// expires the seat checks if possible, otherwise folds.
func (d *Dealer) scheduleTurnClock() {
	d.turnGeneration++
	generation := d.turnGeneration

	if d.turnTimer != nil {
		d.turnTimer.Stop()
		d.turnTimer = nil
	}

	if d.game == nil || d.table.TurnClock <= 0 {
		return
	}

	seatNumber := d.game.ActiveSeatNumber()
	if seatNumber < 0 {
		return
	}

	d.turnTimer = time.AfterFunc(d.table.TurnClock, func() {
		d.execInRunLoop <- func() {
			// a stale timer must never act on a later turn
			if generation != d.turnGeneration || d.game == nil {
				return
			}

			action, ok := d.game.ForcedAction(seatNumber)
			if !ok {
				return
			}

			logrus.WithFields(logrus.Fields{
				"table":  d.table.UUID,
				"seat":   seatNumber,
				"action": action.Type.String(),
			}).Info("turn clock expired")

			if err := d.applyAction(seatNumber, action); err != nil {
				logrus.WithError(err).Error("could not apply forced action")
			}
		}
	})
}

// NOTE: must only be called from the run loop
func (d *Dealer) finishHand() {
	result, err := d.game.GetResult()
	if err != nil {
		logrus.WithError(err).Error("hand is over with no result")
		return
	}

	// write the final stacks back to the table seats
	for _, view := range d.game.State().Seats {
		if s, ok := d.seats[view.Number]; ok {
			s.Stack = view.Stack
		}
	}

	if d.saver != nil {
		ctx, cancel := context.WithTimeout(context.Background(), saveHandTimeout)
		defer cancel()

		if err := d.saver.SaveHand(ctx, d.table.UUID, result, d.game.ActionLog()); err != nil {
			logrus.WithError(err).WithField("hand", result.HandID).Error("could not save hand")
		}
	}

	d.stateChanged <- stateGameEvent
	d.stateChanged <- stateHandEnded
}

// NOTE: must only be called from the run loop
func (d *Dealer) abortHand(err error) {
	logrus.WithError(err).WithField("table", d.table.UUID).Error("hand aborted")

	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:   "handAborted",
			Value: "the hand was halted and will be reviewed",
		})
	}

	d.game = nil
	d.scheduleTurnClock()
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendHandEnded() {
	if d.game == nil {
		return
	}

	result, err := d.game.GetResult()
	if err != nil {
		return
	}

	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:  "handEnded",
			Data: result,
		})
	}

	d.game = nil
	d.scheduleTurnClock()
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendGameData() {
	if d.game == nil {
		return
	}

	for _, client := range d.Clients() {
		client.Send(newStateResponse(d.game.StateForPlayer(client.playerID)))
	}
}

type seatData struct {
	Seat        int   `json:"seat"`
	PlayerID    int64 `json:"playerId"`
	Stack       int   `json:"stack"`
	IsConnected bool  `json:"isConnected"`
}

// NOTE: must only be called from the run loop
func (d *Dealer) sendSeatData() {
	connected := make(map[int64]bool)
	for _, client := range d.Clients() {
		connected[client.playerID] = true
	}

	seats := make([]*seatData, 0, len(d.seats))
	for number, s := range d.seats {
		seats = append(seats, &seatData{
			Seat:        number,
			PlayerID:    s.PlayerID,
			Stack:       s.Stack,
			IsConnected: connected[s.PlayerID],
		})
	}

	for _, client := range d.Clients() {
		client.Send(&Response{
			Key:  "seats",
			Data: seats,
		})
	}
}
