package models

// GameType selects which winning-pattern family is in play.
type GameType string

const (
	GameTraditional  GameType = "traditional"
	GameFourCorners  GameType = "four_corners"
	GamePostageStamp GameType = "postage_stamp"
	GameCoverAll     GameType = "cover_all"
	GameX            GameType = "x"
	GameY            GameType = "y"
	GameFrameOutside GameType = "frame_outside"
	GameFrameInside  GameType = "frame_inside"
)

var GameTypes = []GameType{
	GameTraditional,
	GameFourCorners,
	GamePostageStamp,
	GameCoverAll,
	GameX,
	GameY,
	GameFrameOutside,
	GameFrameInside,
}

func (g GameType) Valid() bool {
	for _, t := range GameTypes {
		if g == t {
			return true
		}
	}
	return false
}

// CallingStyle is locked once the first number has been called.
type CallingStyle string

const (
	CallingAutomatic CallingStyle = "automatic"
	CallingManual    CallingStyle = "manual"
)

func (s CallingStyle) Valid() bool {
	return s == CallingAutomatic || s == CallingManual
}

type ColorMode string

const (
	ColorModeTheme ColorMode = "theme"
	ColorModeSolid ColorMode = "solid"
)

// Snapshot is the full board state as served to clients. Field names match
// the board firmware's wire format.
type Snapshot struct {
	Current              int          `json:"current"`
	Called               []int        `json:"called"`
	Remaining            int          `json:"remaining"`
	BoardSeed            int          `json:"boardSeed"`
	GameType             GameType     `json:"gameType"`
	CallingStyle         CallingStyle `json:"callingStyle"`
	GameEstablished      bool         `json:"gameEstablished"`
	WinnerDeclared       bool         `json:"winnerDeclared"`
	ManualWinnerDeclared bool         `json:"manualWinnerDeclared"`
	WinnerCount          int          `json:"winnerCount"`
	WinnerEventID        int          `json:"winnerEventId"`
	PlayerCount          int          `json:"playerCount"`
	CardCount            int          `json:"cardCount"`
	LedTestMode          bool         `json:"ledTestMode"`
	BoardAccessRequired  bool         `json:"boardAccessRequired"`
	BoardAuthValid       bool         `json:"boardAuthValid"`
	Theme                int          `json:"theme"`
	Brightness           int          `json:"brightness"`
	ColorMode            ColorMode    `json:"colorMode"`
	StaticColor          string       `json:"staticColor"`
	PatternIndex         int          `json:"patternIndex"`
}

// AuthSession is the unlock/refresh response.
type AuthSession struct {
	Token string `json:"token"`
	TTLMs int64  `json:"ttlMs"`
}
