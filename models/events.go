package models

// Event types pushed to subscribers.
const (
	EventSnapshot            = "snapshot"
	EventNumberCalled        = "number_called"
	EventNumberUndone        = "number_undone"
	EventGameReset           = "game_reset"
	EventCallingStyleChanged = "calling_style_changed"
	EventGameTypeChanged     = "game_type_changed"
	EventWinnerChanged       = "winner_changed"
	EventCardJoined          = "card_joined"
	EventCardMarkChanged     = "card_mark_changed"
	EventCardLeft            = "card_left"
	EventCardState           = "card_state"
	EventBoardAuthChanged    = "board_auth_changed"
	EventBoardPinChanged     = "board_pin_changed"
	EventLedTestChanged      = "led_test_changed"
	EventBrightnessChanged   = "brightness_changed"
	EventThemeChanged        = "theme_changed"
	EventColorChanged        = "color_changed"
	EventPatternIndexChanged = "pattern_index_changed"
)

// Envelope wraps every pushed event. Seq is process-wide monotonic so
// clients can discard stale or duplicate deliveries.
type Envelope struct {
	Type string      `json:"type"`
	Seq  uint64      `json:"seq"`
	Seed string      `json:"seed"`
	TS   int64       `json:"ts"`
	Data interface{} `json:"data"`
}

// Subscription modes for a push connection.
const (
	SubNone  = "none"
	SubBoard = "board"
	SubCard  = "card"
)

// CommandPayload is the union of all per-action parameters.
type CommandPayload struct {
	CallingStyle CallingStyle `json:"callingStyle"`
	GameType     GameType     `json:"gameType"`
	Number       int          `json:"number"`
	Pin          string       `json:"pin"`
	Numbers      []*int       `json:"numbers"`
	CardID       string       `json:"cardId"`
	CellIndex    *int         `json:"cellIndex"`
	Marked       bool         `json:"marked"`
}

// CommandResult is the reply to a push-channel command.
type CommandResult struct {
	Type      string      `json:"type"`
	RequestID string      `json:"requestId"`
	OK        bool        `json:"ok"`
	Status    int         `json:"status"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
}

// WSMessage is the decoded form of any inbound push-channel frame:
// type "subscribe" uses Mode/CardID, type "command" uses the rest.
type WSMessage struct {
	Type      string         `json:"type"`
	Mode      string         `json:"mode"`
	CardID    string         `json:"cardId"`
	RequestID string         `json:"requestId"`
	Action    string         `json:"action"`
	Token     string         `json:"token"`
	Payload   CommandPayload `json:"payload"`
}
