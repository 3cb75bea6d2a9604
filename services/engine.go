package services

import (
	"crypto/rand"
	"encoding/hex"
	mrand "math/rand"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/openbingo/board-server/config"
	"github.com/openbingo/board-server/game"
	"github.com/openbingo/board-server/models"
	"github.com/openbingo/board-server/utils/logger"
)

// PatternCycleInterval drives the board's display-pattern rotation for
// game types with more than one winning pattern.
const PatternCycleInterval = 1500 * time.Millisecond

// Engine is the authoritative game state machine. Every operation runs
// its full read-modify-recompute-broadcast sequence under one mutex, so
// no caller ever observes a partially-updated state.
type Engine struct {
	mu    sync.Mutex
	guard *Guard
	hub   *Hub
	rng   *mrand.Rand

	current         int
	called          []int
	callOrder       []int
	pool            []int
	boardSeed       int
	gameType        models.GameType
	callingStyle    models.CallingStyle
	gameEstablished bool

	sessions         map[string]*models.CardSession
	manualWinner     bool
	winnerSuppressed bool
	winnerDeclared   bool
	winnerCount      int
	winnerEventID    int

	ledTestMode  bool
	theme        int
	brightness   int
	colorMode    models.ColorMode
	staticColor  string
	patternIndex int

	seq uint64
}

func NewEngine(cfg *config.Config) *Engine {
	e := &Engine{
		guard:        NewGuard(cfg.BoardPin, cfg.AuthTTL),
		hub:          newHub(),
		rng:          mrand.New(mrand.NewSource(time.Now().UnixNano())),
		gameType:     models.GameTraditional,
		callingStyle: models.CallingAutomatic,
		sessions:     make(map[string]*models.CardSession),
		brightness:   128,
		colorMode:    models.ColorModeTheme,
		staticColor:  "#22C55E",
	}
	e.pool = freshPool()
	e.boardSeed = e.randomSeed()
	logger.Infof("engine ready, board seed %d", e.boardSeed)
	return e
}

func freshPool() []int {
	pool := make([]int, 75)
	for i := range pool {
		pool[i] = i + 1
	}
	return pool
}

func (e *Engine) randomSeed() int {
	return 1000 + e.rng.Intn(9000)
}

func genCardID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return hex.EncodeToString(b)
}

// -------------------- snapshots & envelopes --------------------

func (e *Engine) snapshotLocked() models.Snapshot {
	return models.Snapshot{
		Current:              e.current,
		Called:               append([]int{}, e.called...),
		Remaining:            len(e.pool),
		BoardSeed:            e.boardSeed,
		GameType:             e.gameType,
		CallingStyle:         e.callingStyle,
		GameEstablished:      e.gameEstablished,
		WinnerDeclared:       e.winnerDeclared,
		ManualWinnerDeclared: e.manualWinner,
		WinnerCount:          e.winnerCount,
		WinnerEventID:        e.winnerEventID,
		PlayerCount:          len(e.sessions),
		CardCount:            len(e.sessions),
		LedTestMode:          e.ledTestMode,
		BoardAccessRequired:  true,
		BoardAuthValid:       e.guard.Valid(),
		Theme:                e.theme,
		Brightness:           e.brightness,
		ColorMode:            e.colorMode,
		StaticColor:          e.staticColor,
		PatternIndex:         e.patternIndex,
	}
}

func (e *Engine) envelopeLocked(eventType string, data interface{}) models.Envelope {
	e.seq++
	return models.Envelope{
		Type: eventType,
		Seq:  e.seq,
		Seed: strconv.Itoa(e.boardSeed),
		TS:   time.Now().UnixMilli(),
		Data: data,
	}
}

func (e *Engine) cardStateLocked(s *models.CardSession, withMarks bool) models.CardState {
	state := models.CardState{
		CardID:        s.CardID,
		Winner:        s.Winner,
		WinnerCount:   e.winnerCount,
		WinnerEventID: e.winnerEventID,
	}
	if withMarks {
		marks := make([]bool, 25)
		copy(marks, s.Marks[:])
		state.Marks = marks
	}
	return state
}

// -------------------- broadcast filtering --------------------

func (e *Engine) canReceiveBoardLocked(c *Client) bool {
	if c.mode == models.SubBoard {
		return true
	}
	if c.mode == models.SubCard && c.cardID != "" {
		_, ok := e.sessions[c.cardID]
		return ok
	}
	return false
}

func (e *Engine) canReceiveCardLocked(c *Client, cardID string) bool {
	if c.mode == models.SubBoard {
		return true
	}
	if c.mode != models.SubCard || c.cardID != cardID {
		return false
	}
	_, ok := e.sessions[cardID]
	return ok
}

func (e *Engine) broadcastStateLocked(eventType string) {
	env := e.envelopeLocked(eventType, e.snapshotLocked())
	e.hub.deliver(env, func(c *Client) bool { return e.canReceiveBoardLocked(c) })
}

func (e *Engine) broadcastCardStateLocked(cardID string) {
	s, ok := e.sessions[cardID]
	if !ok {
		return
	}
	env := e.envelopeLocked(models.EventCardState, e.cardStateLocked(s, true))
	e.hub.deliver(env, func(c *Client) bool { return e.canReceiveCardLocked(c, cardID) })
}

func (e *Engine) broadcastAllCardStatesLocked() {
	for cardID := range e.sessions {
		e.broadcastCardStateLocked(cardID)
	}
}

// -------------------- winner bookkeeping --------------------

func (e *Engine) calledSetLocked() map[int]bool {
	set := make(map[int]bool, len(e.called))
	for _, n := range e.called {
		set[n] = true
	}
	return set
}

// recomputeLocked re-evaluates every card against the current game type
// and updates the aggregate winner flags. A card wins while it has a
// satisfied pattern not yet moved into its claimed mask.
func (e *Engine) recomputeLocked() {
	called := e.calledSetLocked()
	winners := 0
	newWinnerEvent := false
	for _, s := range e.sessions {
		covered := game.Coverage(s.Numbers, s.Marks, called)
		satisfied := game.SatisfiedMask(e.gameType, covered)
		wasWinner := s.Winner
		s.Winner = satisfied&^s.Claimed[e.gameType] != 0
		if !wasWinner && s.Winner {
			newWinnerEvent = true
		}
		if s.Winner {
			winners++
		}
	}
	if e.winnerSuppressed && winners > 0 {
		// A genuinely new unclaimed win breaks keep-going suppression.
		e.winnerSuppressed = false
	}
	if newWinnerEvent {
		e.winnerEventID++
	}
	e.winnerCount = winners
	e.winnerDeclared = !e.winnerSuppressed && (winners > 0 || e.manualWinner)
}

func (e *Engine) claimCurrentPatternsLocked(s *models.CardSession) {
	covered := game.Coverage(s.Numbers, s.Marks, e.calledSetLocked())
	satisfied := game.SatisfiedMask(e.gameType, covered)
	s.Claimed[e.gameType] |= satisfied
}

// -------------------- read operations --------------------

func (e *Engine) Snapshot() models.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) CardState(cardID string) (models.CardState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[cardID]
	if !ok {
		return models.CardState{}, models.ErrCardNotFound
	}
	e.recomputeLocked()
	return e.cardStateLocked(s, true), nil
}

// -------------------- auth operations --------------------

func (e *Engine) Unlock(pin string) (models.AuthSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, err := e.guard.Unlock(pin)
	if err != nil {
		return models.AuthSession{}, err
	}
	e.broadcastStateLocked(models.EventBoardAuthChanged)
	return session, nil
}

func (e *Engine) Lock() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.guard.Lock()
	e.broadcastStateLocked(models.EventBoardAuthChanged)
}

func (e *Engine) Refresh(token string) (models.AuthSession, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	session, err := e.guard.Refresh(token)
	if err != nil {
		return models.AuthSession{}, err
	}
	e.broadcastStateLocked(models.EventBoardAuthChanged)
	return session, nil
}

func (e *Engine) ChangePin(token, current, next string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	if err := e.guard.ChangePin(current, next); err != nil {
		return err
	}
	e.broadcastStateLocked(models.EventBoardPinChanged)
	return nil
}

// -------------------- number calling --------------------

func (e *Engine) Draw(token string) (models.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return models.Snapshot{}, err
	}
	if e.callingStyle == models.CallingManual {
		return models.Snapshot{}, models.ErrManualMode
	}
	if len(e.pool) == 0 {
		return models.Snapshot{}, models.ErrPoolEmpty
	}
	idx := e.rng.Intn(len(e.pool))
	n := e.pool[idx]
	e.pool = append(e.pool[:idx], e.pool[idx+1:]...)
	e.applyCallLocked(n)
	logger.Infof("drew %d, %d remaining", n, len(e.pool))
	e.recomputeLocked()
	e.broadcastStateLocked(models.EventNumberCalled)
	e.broadcastAllCardStatesLocked()
	return e.snapshotLocked(), nil
}

func (e *Engine) CallNumber(token string, n int) (models.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return models.Snapshot{}, err
	}
	if e.callingStyle != models.CallingManual {
		return models.Snapshot{}, models.ErrNotManual
	}
	if n < 1 || n > 75 {
		return models.Snapshot{}, models.ErrInvalidNumber
	}
	for _, called := range e.called {
		if called == n {
			return models.Snapshot{}, models.ErrAlreadyCalled
		}
	}
	for i, p := range e.pool {
		if p == n {
			e.pool = append(e.pool[:i], e.pool[i+1:]...)
			break
		}
	}
	e.applyCallLocked(n)
	logger.Infof("called %d manually, %d remaining", n, len(e.pool))
	e.recomputeLocked()
	e.broadcastStateLocked(models.EventNumberCalled)
	e.broadcastAllCardStatesLocked()
	return e.snapshotLocked(), nil
}

// applyCallLocked records a freshly-called number. Any call establishes
// the game and re-arms winner detection after a keep-going.
func (e *Engine) applyCallLocked(n int) {
	e.called = append(e.called, n)
	e.callOrder = append(e.callOrder, n)
	e.current = n
	e.gameEstablished = true
	e.winnerSuppressed = false
}

func (e *Engine) Undo(token string) (models.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return models.Snapshot{}, err
	}
	if len(e.callOrder) == 0 {
		return models.Snapshot{}, models.ErrNothingToUndo
	}
	last := e.callOrder[len(e.callOrder)-1]
	e.callOrder = e.callOrder[:len(e.callOrder)-1]
	for i, n := range e.called {
		if n == last {
			e.called = append(e.called[:i], e.called[i+1:]...)
			break
		}
	}
	e.pool = append(e.pool, last)
	if len(e.callOrder) > 0 {
		e.current = e.callOrder[len(e.callOrder)-1]
	} else {
		e.current = 0
	}
	e.gameEstablished = true
	// The call being reverted may have been what a manual declaration
	// was judged on, so the declaration goes with it.
	e.manualWinner = false
	e.winnerSuppressed = false
	logger.Infof("undid %d, %d remaining", last, len(e.pool))
	e.recomputeLocked()
	e.broadcastStateLocked(models.EventNumberUndone)
	e.broadcastAllCardStatesLocked()
	return e.snapshotLocked(), nil
}

// -------------------- game configuration --------------------

func (e *Engine) SetCallingStyle(token string, style models.CallingStyle) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	if e.gameEstablished {
		return models.ErrGameEstablished
	}
	if !style.Valid() {
		return models.ErrInvalidStyle
	}
	e.callingStyle = style
	e.broadcastStateLocked(models.EventCallingStyleChanged)
	return nil
}

func (e *Engine) SetGameType(token string, gt models.GameType) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	if !gt.Valid() {
		return models.ErrInvalidGameType
	}
	e.gameType = gt
	e.patternIndex = 0
	e.recomputeLocked()
	e.broadcastStateLocked(models.EventGameTypeChanged)
	e.broadcastAllCardStatesLocked()
	return nil
}

// -------------------- winner overrides --------------------

func (e *Engine) DeclareWinner(token string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	e.winnerSuppressed = false
	e.manualWinner = true
	e.winnerEventID++
	e.recomputeLocked()
	e.broadcastStateLocked(models.EventWinnerChanged)
	e.broadcastAllCardStatesLocked()
	return nil
}

// ClearWinner is the "keep playing" action: every currently-satisfied
// pattern moves into its card's claimed mask so it cannot re-fire, and
// winner signalling stays suppressed until a new pattern is satisfied.
func (e *Engine) ClearWinner(token string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	e.manualWinner = false
	e.winnerSuppressed = true
	for _, s := range e.sessions {
		e.claimCurrentPatternsLocked(s)
	}
	e.recomputeLocked()
	e.broadcastStateLocked(models.EventWinnerChanged)
	e.broadcastAllCardStatesLocked()
	return nil
}

func (e *Engine) Reset(token string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	e.called = nil
	e.callOrder = nil
	e.pool = freshPool()
	e.current = 0
	e.gameEstablished = false
	e.manualWinner = false
	e.winnerSuppressed = false
	e.winnerDeclared = false
	e.winnerCount = 0
	e.winnerEventID = 0
	e.boardSeed = e.randomSeed()
	for _, s := range e.sessions {
		s.ResetRound()
	}
	logger.Infof("game reset, new board seed %d", e.boardSeed)
	e.broadcastStateLocked(models.EventGameReset)
	e.broadcastAllCardStatesLocked()
	return nil
}

// -------------------- display settings --------------------

func (e *Engine) SetLedTest(token string, enabled bool) (models.Snapshot, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return models.Snapshot{}, err
	}
	e.ledTestMode = enabled
	e.broadcastStateLocked(models.EventLedTestChanged)
	return e.snapshotLocked(), nil
}

func (e *Engine) SetBrightness(token string, value *int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	if value != nil {
		v := *value
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		e.brightness = v
	}
	e.broadcastStateLocked(models.EventBrightnessChanged)
	return nil
}

func (e *Engine) SetTheme(token string, theme int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	e.theme = theme
	e.colorMode = models.ColorModeTheme
	e.broadcastStateLocked(models.EventThemeChanged)
	return nil
}

func (e *Engine) SetStaticColor(token, hex string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.guard.Check(token); err != nil {
		return err
	}
	hex = strings.TrimPrefix(hex, "#")
	if len(hex) >= 6 {
		e.staticColor = "#" + strings.ToUpper(hex[:6])
		e.colorMode = models.ColorModeSolid
	}
	e.broadcastStateLocked(models.EventColorChanged)
	return nil
}

// -------------------- card operations --------------------

func (e *Engine) JoinCard(pin string, numbers []*int, cardID string) (models.CardState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if normalizePin(pin) != strconv.Itoa(e.boardSeed) {
		return models.CardState{}, models.ErrInvalidSeed
	}
	if len(numbers) != 25 {
		return models.CardState{}, models.ErrNumbersRequired
	}
	if cardID == "" {
		cardID = genCardID()
	}
	s := models.NewCardSession(cardID)
	for i, n := range numbers {
		if n != nil {
			s.Numbers[i] = *n
		}
	}
	e.sessions[cardID] = s
	e.recomputeLocked()
	logger.Infof("card %s joined (%d cards)", cardID, len(e.sessions))
	e.broadcastStateLocked(models.EventCardJoined)
	e.broadcastCardStateLocked(cardID)
	return e.cardStateLocked(s, false), nil
}

func (e *Engine) MarkCell(cardID string, cellIndex int, marked bool) (models.CardState, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	s, ok := e.sessions[cardID]
	if !ok {
		return models.CardState{}, models.ErrCardNotFound
	}
	if cellIndex < 0 || cellIndex > 24 || cellIndex == models.FreeCell {
		return models.CardState{}, models.ErrInvalidCell
	}
	s.Marks[cellIndex] = marked
	e.recomputeLocked()
	e.broadcastStateLocked(models.EventCardMarkChanged)
	e.broadcastCardStateLocked(cardID)
	return e.cardStateLocked(s, false), nil
}

func (e *Engine) LeaveCard(cardID string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, ok := e.sessions[cardID]; !ok {
		return models.ErrCardNotFound
	}
	delete(e.sessions, cardID)
	e.recomputeLocked()
	logger.Infof("card %s left (%d cards)", cardID, len(e.sessions))
	e.broadcastStateLocked(models.EventCardLeft)
	e.broadcastAllCardStatesLocked()
	return nil
}

// -------------------- subscriptions --------------------

// Subscribe sets a push connection's interest and immediately sends the
// current snapshot (plus card states) so late subscribers converge
// without waiting for the next mutation.
func (e *Engine) Subscribe(c *Client, mode, cardID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mode != models.SubBoard && mode != models.SubCard {
		mode = models.SubNone
	}
	if mode == models.SubCard {
		if _, ok := e.sessions[cardID]; !ok {
			cardID = ""
		}
	} else {
		cardID = ""
	}
	c.mode = mode
	c.cardID = cardID

	if e.canReceiveBoardLocked(c) {
		env := e.envelopeLocked(models.EventSnapshot, e.snapshotLocked())
		if payload, err := marshalEnvelope(env); err == nil {
			c.enqueue(payload)
		}
	}
	if mode == models.SubBoard {
		for id := range e.sessions {
			e.sendCardStateLocked(c, id)
		}
	} else if cardID != "" {
		e.sendCardStateLocked(c, cardID)
	}
}

func (e *Engine) sendCardStateLocked(c *Client, cardID string) {
	s, ok := e.sessions[cardID]
	if !ok {
		return
	}
	env := e.envelopeLocked(models.EventCardState, e.cardStateLocked(s, true))
	if payload, err := marshalEnvelope(env); err == nil {
		c.enqueue(payload)
	}
}

// Attach registers a new push connection and starts its pumps.
func (e *Engine) Attach(c *Client) {
	e.hub.add(c)
	go c.writePump()
	go c.readPump()
}

// -------------------- pattern cycling --------------------

// RunPatternCycler advances the display pattern index for multi-pattern
// game types until stop is closed.
func (e *Engine) RunPatternCycler(stop <-chan struct{}) {
	ticker := time.NewTicker(PatternCycleInterval)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			e.mu.Lock()
			if count := game.CycleCount(e.gameType); count > 0 {
				e.patternIndex = (e.patternIndex + 1) % count
				e.broadcastStateLocked(models.EventPatternIndexChanged)
			}
			e.mu.Unlock()
		}
	}
}
