package holdem

import (
	"errors"
	"fmt"
	"sort"

	"galaxypoker-server/internal/rng"
	"galaxypoker-server/pkg/deck"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// SeatConfig describes a seat joining a hand
type SeatConfig struct {
	Number     int
	PlayerID   int64
	Stack      int
	SittingOut bool
}

// Game runs a single hand of Texas Hold'em from blinds to showdown.
// It is the only owner of the hand's state: ApplyAction is the sole
// mutation entrypoint and every call is atomic. The game performs no
// locking of its own; callers must serialize access through a single
// writer (see pkg/room).
type Game struct {
	log     logrus.FieldLogger
	id      uuid.UUID
	options Options
	rand    rng.Generator

	deck      *deck.Deck
	seats     []*Seat
	community deck.Hand

	dealerIndex int
	phase       Phase

	currentBet    int
	lastRaiseSize int
	activeIndex   int

	// initialChips is the invariant total used by the consistency check
	initialChips int
	paidOut      bool
	result       *GameResult
	actionLog    []*LogEntry
	abortErr     error
}

// NewGame returns a new hand in the waiting phase. StartHand posts the
// blinds and deals the cards.
func NewGame(logger logrus.FieldLogger, seats []SeatConfig, dealerSeat int, opts Options, g rng.Generator) (*Game, error) {
	if err := validateOptions(&opts); err != nil {
		return nil, err
	}

	if g == nil {
		return nil, errors.New("a random number generator is required")
	}

	gameSeats, err := buildSeats(seats)
	if err != nil {
		return nil, err
	}

	dealerIndex := -1
	playable := 0
	for i, s := range gameSeats {
		if s.Number == dealerSeat {
			dealerIndex = i
		}

		if s.canAct() {
			playable++
		}
	}

	if dealerIndex < 0 {
		return nil, fmt.Errorf("no seat numbered %d for the dealer button", dealerSeat)
	}

	if playable < 2 {
		return nil, errors.New("there must be at least two seats with chips")
	}

	id := uuid.New()
	game := &Game{
		log:         logger.WithField("hand", id.String()),
		id:          id,
		options:     opts,
		rand:        g,
		seats:       gameSeats,
		community:   make(deck.Hand, 0, 5),
		dealerIndex: dealerIndex,
		phase:       PhaseWaiting,
		activeIndex: -1,
	}

	for _, s := range gameSeats {
		game.initialChips += s.Stack
	}

	return game, nil
}

func buildSeats(configs []SeatConfig) ([]*Seat, error) {
	if len(configs) < 2 {
		return nil, errors.New("there must be at least two seats")
	}

	seats := make([]*Seat, 0, len(configs))
	seen := make(map[int]bool)
	players := make(map[int64]bool)
	for _, cfg := range configs {
		if seen[cfg.Number] {
			return nil, fmt.Errorf("duplicate seat number: %d", cfg.Number)
		}
		seen[cfg.Number] = true

		if players[cfg.PlayerID] {
			return nil, fmt.Errorf("player %d is seated twice", cfg.PlayerID)
		}
		players[cfg.PlayerID] = true

		if cfg.Stack < 0 {
			return nil, fmt.Errorf("seat %d has a negative stack", cfg.Number)
		}

		status := StatusActive
		if cfg.SittingOut || cfg.Stack == 0 {
			status = StatusSittingOut
		}

		seats = append(seats, &Seat{
			Number:   cfg.Number,
			PlayerID: cfg.PlayerID,
			Stack:    cfg.Stack,
			Status:   status,
			canRaise: true,
		})
	}

	sort.Slice(seats, func(i, j int) bool {
		return seats[i].Number < seats[j].Number
	})

	return seats, nil
}

// ID returns the unique hand identifier
func (g *Game) ID() string {
	return g.id.String()
}

// Phase returns the current phase
func (g *Game) Phase() Phase {
	return g.phase
}

// StartHand posts the blinds, deals two hole cards to every seat in the
// hand, and opens the pre-flop betting round
func (g *Game) StartHand() error {
	if g.phase != PhaseWaiting {
		return invalidActionf("cannot start a hand from the %s phase", g.phase)
	}

	g.deck = deck.NewShuffled(g.rand)
	g.log.WithField("deckHash", g.deck.HashCode()).Debug("deck shuffled")

	g.seats[g.dealerIndex].IsDealer = true

	smallBlindIndex := g.nextIndex(g.dealerIndex, (*Seat).canAct)
	if g.countCanAct() == 2 && g.seats[g.dealerIndex].canAct() {
		// heads-up: the dealer posts the small blind and acts first pre-flop
		smallBlindIndex = g.dealerIndex
	}
	bigBlindIndex := g.nextIndex(smallBlindIndex, (*Seat).canAct)

	g.postBlind(g.seats[smallBlindIndex], g.options.SmallBlind, "posted the small blind")
	g.seats[smallBlindIndex].IsSmallBlind = true

	g.postBlind(g.seats[bigBlindIndex], g.options.BigBlind, "posted the big blind")
	g.seats[bigBlindIndex].IsBigBlind = true

	g.currentBet = g.options.BigBlind
	g.lastRaiseSize = g.options.BigBlind

	if err := g.dealHoleCards(); err != nil {
		g.abort(err)
		return err
	}

	g.phase = PhasePreFlop
	g.activeIndex = g.nextIndex(bigBlindIndex, (*Seat).canAct)

	if g.bettingRoundOver() {
		// blinds put everyone all-in; run out the board
		if err := g.advancePhase(); err != nil {
			g.abort(err)
			return err
		}
	}

	return g.checkIntegrity()
}

func (g *Game) postBlind(seat *Seat, amount int, event string) {
	committed := seat.commit(amount)
	g.appendLog(seat, event, committed)
}

func (g *Game) dealHoleCards() error {
	for i := 0; i < 2; i++ {
		for offset := 1; offset <= len(g.seats); offset++ {
			seat := g.seats[(g.dealerIndex+offset)%len(g.seats)]
			if !seat.inHand() {
				continue
			}

			card, err := g.deck.Draw()
			if err != nil {
				return ErrDeckExhausted
			}

			seat.HoleCards.AddCard(card)
		}
	}

	return nil
}

// ApplyAction is the single mutation entrypoint. It validates the action
// against the current turn and stack constraints, then either applies it
// atomically or returns a typed error with the state untouched.
func (g *Game) ApplyAction(seatNumber int, act Action) (*State, error) {
	if g.abortErr != nil {
		return nil, g.abortErr
	}

	if !g.phase.IsBetting() {
		return nil, invalidActionf("no betting round is in progress")
	}

	seat := g.activeSeat()
	if seat == nil || seat.Number != seatNumber {
		return nil, invalidActionf("it is not seat %d's turn", seatNumber)
	}

	resolved, err := g.resolveAction(seat, act)
	if err != nil {
		return nil, err
	}

	g.apply(seat, resolved)
	g.appendLog(seat, resolved.logEvent, resolved.logAmount)

	if err := g.advanceTurn(seat); err != nil {
		g.abort(err)
		return nil, err
	}

	if err := g.checkIntegrity(); err != nil {
		return nil, err
	}

	return g.State(), nil
}

// resolvedAction is the fully-validated effect of a player action. Nothing
// is mutated until the action resolves cleanly.
type resolvedAction struct {
	action    ActionType
	fold      bool
	commitTo  int // the seat's new round bet
	newBet    int // the new current bet, if the action is aggressive
	reopens   bool
	logEvent  string
	logAmount int
}

func (g *Game) resolveAction(seat *Seat, act Action) (resolvedAction, error) {
	callAmount := g.currentBet - seat.RoundBet

	switch act.Type {
	case ActionFold:
		return resolvedAction{action: ActionFold, fold: true, logEvent: "folded"}, nil

	case ActionCheck:
		if callAmount != 0 {
			return resolvedAction{}, invalidActionf("cannot check with ${%d} to call", callAmount)
		}

		return resolvedAction{action: ActionCheck, commitTo: seat.RoundBet, logEvent: "checked"}, nil

	case ActionCall:
		if callAmount <= 0 {
			return resolvedAction{}, invalidActionf("there is no bet to call")
		}

		// a call for less than the full amount is legal and puts the seat all-in
		commitTo := g.currentBet
		if callAmount > seat.Stack {
			commitTo = seat.RoundBet + seat.Stack
		}

		return resolvedAction{
			action:    ActionCall,
			commitTo:  commitTo,
			logEvent:  fmt.Sprintf("called ${%d}", commitTo-seat.RoundBet),
			logAmount: commitTo - seat.RoundBet,
		}, nil

	case ActionBet:
		if g.currentBet != 0 {
			return resolvedAction{}, invalidActionf("cannot bet with a bet outstanding; raise instead")
		}

		if act.Amount < g.options.MinBet {
			return resolvedAction{}, invalidActionf("bet must be at least ${%d}", g.options.MinBet)
		}

		if act.Amount > seat.Stack {
			return resolvedAction{}, InsufficientStackError{SeatNumber: seat.Number, Amount: act.Amount, Stack: seat.Stack}
		}

		return resolvedAction{
			action:    ActionBet,
			commitTo:  act.Amount,
			newBet:    act.Amount,
			reopens:   true,
			logEvent:  fmt.Sprintf("bet ${%d}", act.Amount),
			logAmount: act.Amount,
		}, nil

	case ActionRaise:
		return g.resolveRaise(seat, act.Amount)

	case ActionAllIn:
		if seat.Stack <= 0 {
			return resolvedAction{}, invalidActionf("no chips left to go all-in with")
		}

		return g.resolveAllIn(seat)
	}

	panic(fmt.Sprintf("unknown action type: %d", int(act.Type)))
}

func (g *Game) resolveRaise(seat *Seat, raiseTo int) (resolvedAction, error) {
	if g.currentBet == 0 {
		return resolvedAction{}, invalidActionf("cannot raise without a bet outstanding; bet instead")
	}

	if !seat.canRaise {
		return resolvedAction{}, invalidActionf("betting was not reopened; you may only call or fold")
	}

	if raiseTo <= g.currentBet {
		return resolvedAction{}, invalidActionf("raise must exceed the current bet of ${%d}", g.currentBet)
	}

	needed := raiseTo - seat.RoundBet
	if needed > seat.Stack {
		return resolvedAction{}, InsufficientStackError{SeatNumber: seat.Number, Amount: needed, Stack: seat.Stack}
	}

	minRaiseTo := g.currentBet + g.lastRaiseSize
	isAllIn := needed == seat.Stack
	if raiseTo < minRaiseTo && !isAllIn {
		return resolvedAction{}, invalidActionf("raise must be to at least ${%d}", minRaiseTo)
	}

	return resolvedAction{
		action:    ActionRaise,
		commitTo:  raiseTo,
		newBet:    raiseTo,
		reopens:   raiseTo >= minRaiseTo,
		logEvent:  fmt.Sprintf("raised to ${%d}", raiseTo),
		logAmount: raiseTo,
	}, nil
}

// resolveAllIn classifies an all-in as the bet, call, or raise it
// mechanically represents, which decides whether it reopens the betting
func (g *Game) resolveAllIn(seat *Seat) (resolvedAction, error) {
	commitTo := seat.RoundBet + seat.Stack
	logEvent := fmt.Sprintf("went all-in for ${%d}", commitTo)

	if g.currentBet == 0 {
		// an all-in below the minimum bet is still a legal opening bet
		return resolvedAction{
			action:    ActionAllIn,
			commitTo:  commitTo,
			newBet:    commitTo,
			reopens:   true,
			logEvent:  logEvent,
			logAmount: commitTo,
		}, nil
	}

	if commitTo <= g.currentBet {
		// a call for less
		return resolvedAction{
			action:    ActionAllIn,
			commitTo:  commitTo,
			logEvent:  logEvent,
			logAmount: commitTo,
		}, nil
	}

	// an all-in above the current bet is a raise and needs raise rights
	if !seat.canRaise {
		return resolvedAction{}, invalidActionf("betting was not reopened; you may only call or fold")
	}

	return resolvedAction{
		action:    ActionAllIn,
		commitTo:  commitTo,
		newBet:    commitTo,
		reopens:   commitTo-g.currentBet >= g.lastRaiseSize,
		logEvent:  logEvent,
		logAmount: commitTo,
	}, nil
}

func (g *Game) apply(seat *Seat, resolved resolvedAction) {
	if resolved.fold {
		seat.Status = StatusFolded
		seat.acted = true
		return
	}

	if resolved.commitTo > seat.RoundBet {
		seat.commit(resolved.commitTo - seat.RoundBet)
	}

	seat.acted = true

	if resolved.newBet > g.currentBet {
		if resolved.reopens {
			g.lastRaiseSize = resolved.newBet - g.currentBet
		}

		g.currentBet = resolved.newBet

		for _, other := range g.seats {
			if other == seat || !other.canAct() {
				continue
			}

			if resolved.reopens {
				other.acted = false
				other.canRaise = true
			} else if other.acted {
				// a short all-in does not reopen the betting for seats
				// that already matched the prior full bet
				other.acted = false
				other.canRaise = false
			}
		}
	}
}

// advanceTurn moves the action to the next seat, or closes the betting
// round when everyone has matched
func (g *Game) advanceTurn(last *Seat) error {
	if g.countInHand() == 1 {
		return g.finishByFold()
	}

	if g.bettingRoundOver() {
		return g.advancePhase()
	}

	g.activeIndex = g.nextIndex(g.indexOf(last), (*Seat).needsAction)
	if g.activeIndex < 0 {
		return StateCorruptionError{Detail: "no seat to act but the betting round is not over"}
	}

	return nil
}

// needsAction reports whether the seat still owes a decision this round.
// A raise clears the acted flag on every other live seat, so an unmatched
// bet always shows up here as acted == false.
func (s *Seat) needsAction() bool {
	return s.canAct() && !s.acted
}

// bettingRoundOver returns true when every seat still able to act has
// matched the current bet and acted since the last raise, or when at most
// one seat can act at all
func (g *Game) bettingRoundOver() bool {
	actors := make([]*Seat, 0, len(g.seats))
	for _, s := range g.seats {
		if s.canAct() {
			actors = append(actors, s)
		}
	}

	for _, s := range actors {
		if s.RoundBet != g.currentBet {
			return false
		}
	}

	if len(actors) < 2 {
		// nobody left to bet against
		return true
	}

	for _, s := range actors {
		if !s.acted {
			return false
		}
	}

	return true
}

// advancePhase rolls betting rounds forward, dealing community cards and
// fast-forwarding streets when no further betting is possible
func (g *Game) advancePhase() error {
	for {
		g.resetRound()

		switch g.phase {
		case PhasePreFlop:
			if err := g.dealCommunity(3); err != nil {
				return err
			}
			g.phase = PhaseFlop
		case PhaseFlop:
			if err := g.dealCommunity(1); err != nil {
				return err
			}
			g.phase = PhaseTurn
		case PhaseTurn:
			if err := g.dealCommunity(1); err != nil {
				return err
			}
			g.phase = PhaseRiver
		case PhaseRiver:
			g.phase = PhaseShowdown
			return g.resolveShowdown()
		default:
			return StateCorruptionError{Detail: fmt.Sprintf("cannot advance from the %s phase", g.phase)}
		}

		if g.countCanAct() >= 2 {
			g.activeIndex = g.nextIndex(g.dealerIndex, (*Seat).canAct)
			return nil
		}

		// everyone is all-in; keep dealing
	}
}

func (g *Game) resetRound() {
	for _, s := range g.seats {
		s.RoundBet = 0
		s.acted = false
		s.canRaise = true
	}

	g.currentBet = 0
	g.lastRaiseSize = g.options.MinBet
	g.activeIndex = -1
}

func (g *Game) dealCommunity(n int) error {
	for i := 0; i < n; i++ {
		card, err := g.deck.Draw()
		if err != nil {
			return ErrDeckExhausted
		}

		g.community.AddCard(card)
	}

	return nil
}

// finishByFold ends the hand when all but one seat has folded. The last
// seat standing wins the entire pot without showing their cards.
func (g *Game) finishByFold() error {
	var winner *Seat
	for _, s := range g.seats {
		if s.inHand() {
			winner = s
			break
		}
	}

	if winner == nil {
		return StateCorruptionError{Detail: "no seats left in the hand"}
	}

	amount := g.Pot()
	sidePots := g.SidePots()

	winner.Stack += amount
	g.paidOut = true
	g.phase = PhaseHandOverByFold
	g.activeIndex = -1

	g.result = &GameResult{
		HandID: g.ID(),
		Winners: []*Winner{{
			PlayerID:     winner.PlayerID,
			SeatNumber:   winner.Number,
			WinAmount:    amount,
			SidePotIndex: -1,
		}},
		SidePots:  sidePots,
		Community: g.community.Clone(),
		WonByFold: true,
	}

	g.appendLog(winner, fmt.Sprintf("won ${%d} uncontested", amount), amount)
	return nil
}

// GetResult returns the final result once the hand is over
func (g *Game) GetResult() (*GameResult, error) {
	if g.result == nil {
		return nil, errors.New("the hand is not over")
	}

	return g.result, nil
}

// Pot returns the total chips committed and not yet paid out
func (g *Game) Pot() int {
	if g.paidOut {
		return 0
	}

	total := 0
	for _, s := range g.seats {
		total += s.TotalContributed
	}

	return total
}

// ActiveSeatNumber returns the seat currently on the clock, or -1
func (g *Game) ActiveSeatNumber() int {
	if seat := g.activeSeat(); seat != nil {
		return seat.Number
	}

	return -1
}

func (g *Game) activeSeat() *Seat {
	if g.activeIndex < 0 || g.activeIndex >= len(g.seats) {
		return nil
	}

	return g.seats[g.activeIndex]
}

// ActionsForSeat returns the actions the seat may legally take right now
func (g *Game) ActionsForSeat(seatNumber int) []ActionType {
	seat := g.activeSeat()
	if seat == nil || seat.Number != seatNumber || !g.phase.IsBetting() {
		return nil
	}

	callAmount := g.currentBet - seat.RoundBet

	actions := make([]ActionType, 0, 4)
	if callAmount == 0 {
		actions = append(actions, ActionCheck)
	} else {
		actions = append(actions, ActionCall)
	}

	if g.currentBet == 0 {
		if seat.Stack >= g.options.MinBet {
			actions = append(actions, ActionBet)
		}
	} else if seat.canRaise && seat.RoundBet+seat.Stack > g.currentBet {
		actions = append(actions, ActionRaise)
	}

	if seat.Stack > 0 && (seat.canRaise || seat.RoundBet+seat.Stack <= g.currentBet) {
		actions = append(actions, ActionAllIn)
	}

	return append(actions, ActionFold)
}

// ForcedAction returns the action to take on a seat's behalf when their
// turn clock expires or they disconnect: a check when legal, otherwise a
// fold. The second return is false if the seat is not on the clock.
func (g *Game) ForcedAction(seatNumber int) (Action, bool) {
	seat := g.activeSeat()
	if seat == nil || seat.Number != seatNumber || !g.phase.IsBetting() {
		return Action{}, false
	}

	if g.currentBet == seat.RoundBet {
		return Check(), true
	}

	return Fold(), true
}

// MinRaiseTo returns the smallest legal raise target given the current bet
func (g *Game) MinRaiseTo() int {
	if g.currentBet == 0 {
		return g.options.MinBet
	}

	return g.currentBet + g.lastRaiseSize
}

func (g *Game) abort(err error) {
	if g.abortErr != nil {
		return
	}

	g.abortErr = err
	g.activeIndex = -1
	g.log.WithError(err).Error("hand aborted; flagging for audit")
}

// Aborted returns the fatal error that halted the hand, if any
func (g *Game) Aborted() error {
	return g.abortErr
}

// checkIntegrity validates the money and card invariants. A failure aborts
// the hand: funds are left unresolved for an operator rather than guessed at.
func (g *Game) checkIntegrity() error {
	chips := g.Pot()
	for _, s := range g.seats {
		chips += s.Stack
	}

	if !g.paidOut && chips != g.initialChips {
		err := StateCorruptionError{Detail: fmt.Sprintf("chip total %d does not match initial total %d", chips, g.initialChips)}
		g.abort(err)
		return err
	}

	if g.phase != PhaseHandOverByFold {
		if want := g.phase.CommunityCardCount(); len(g.community) != want {
			err := StateCorruptionError{Detail: fmt.Sprintf("%s phase must have %d community cards, found %d", g.phase, want, len(g.community))}
			g.abort(err)
			return err
		}
	}

	if seat := g.activeSeat(); seat != nil && !seat.canAct() {
		err := StateCorruptionError{Detail: fmt.Sprintf("seat %d is on the clock but cannot act", seat.Number)}
		g.abort(err)
		return err
	}

	return nil
}

// nextIndex scans the ring clockwise from the index and returns the first
// seat matching the predicate, or -1
func (g *Game) nextIndex(from int, match func(*Seat) bool) int {
	n := len(g.seats)
	for offset := 1; offset <= n; offset++ {
		i := (from + offset) % n
		if match(g.seats[i]) {
			return i
		}
	}

	return -1
}

func (g *Game) indexOf(seat *Seat) int {
	for i, s := range g.seats {
		if s == seat {
			return i
		}
	}

	panic("seat is not at the table")
}

func (g *Game) countCanAct() int {
	count := 0
	for _, s := range g.seats {
		if s.canAct() {
			count++
		}
	}

	return count
}

func (g *Game) countInHand() int {
	count := 0
	for _, s := range g.seats {
		if s.inHand() {
			count++
		}
	}

	return count
}

// distanceFromDealer returns how many seats clockwise the seat sits from
// the dealer button. The dealer is the farthest seat from itself: odd
// chips start left of the button and the button collects last.
func (g *Game) distanceFromDealer(seat *Seat) int {
	n := len(g.seats)
	d := ((g.indexOf(seat)-g.dealerIndex)%n + n) % n
	if d == 0 {
		d = n
	}

	return d
}
