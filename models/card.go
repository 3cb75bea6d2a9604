package models

// FreeCell is the center of the 5x5 grid; always covered, never togglable.
const FreeCell = 12

// CardSession tracks one joined card. Sessions survive game resets
// (marks and claims are cleared, numbers kept) and are only removed by
// an explicit leave.
type CardSession struct {
	CardID string
	// Numbers holds the grid in row-major order; 0 marks an empty cell
	// (the free cell joins as null).
	Numbers [25]int
	Marks   [25]bool
	// Claimed records, per game type, which winning-pattern bits have
	// already been shown to the player and dismissed via keep-going.
	Claimed map[GameType]int
	Winner  bool
}

func NewCardSession(cardID string) *CardSession {
	s := &CardSession{
		CardID:  cardID,
		Claimed: make(map[GameType]int),
	}
	s.Marks[FreeCell] = true
	return s
}

// ResetRound clears marks and claims but keeps the card's numbers, so a
// card stays joined across rounds.
func (s *CardSession) ResetRound() {
	s.Marks = [25]bool{}
	s.Marks[FreeCell] = true
	s.Winner = false
	s.Claimed = make(map[GameType]int)
}

// CardState is the per-card response and push payload. Marks is omitted
// from join responses.
type CardState struct {
	CardID        string `json:"cardId"`
	Winner        bool   `json:"winner"`
	WinnerCount   int    `json:"winnerCount"`
	WinnerEventID int    `json:"winnerEventId"`
	Marks         []bool `json:"marks,omitempty"`
}
