package services

import (
	"net/http"

	"github.com/openbingo/board-server/models"
)

// HandleCommand dispatches a push-channel command to the same engine
// methods the HTTP gateway uses, so both transports have identical side
// effects and authorization semantics.
func (e *Engine) HandleCommand(c *Client, msg models.WSMessage) {
	data, err := e.dispatch(msg)
	if err != nil {
		c.reply(models.CommandResult{
			Type:      "command_result",
			RequestID: msg.RequestID,
			OK:        false,
			Status:    models.StatusOf(err),
			Error:     err.Error(),
		})
		return
	}
	if data == nil {
		data = struct{}{}
	}
	c.reply(models.CommandResult{
		Type:      "command_result",
		RequestID: msg.RequestID,
		OK:        true,
		Status:    http.StatusOK,
		Data:      data,
	})
}

func (e *Engine) dispatch(msg models.WSMessage) (interface{}, error) {
	p := msg.Payload
	switch msg.Action {
	case "get_state":
		return e.Snapshot(), nil
	case "draw":
		return e.Draw(msg.Token)
	case "reset":
		return nil, e.Reset(msg.Token)
	case "undo":
		return e.Undo(msg.Token)
	case "set_calling_style":
		return nil, e.SetCallingStyle(msg.Token, p.CallingStyle)
	case "call_number":
		return e.CallNumber(msg.Token, p.Number)
	case "set_game_type":
		return nil, e.SetGameType(msg.Token, p.GameType)
	case "declare_winner":
		return nil, e.DeclareWinner(msg.Token)
	case "clear_winner":
		return nil, e.ClearWinner(msg.Token)
	case "join_card":
		return e.JoinCard(p.Pin, p.Numbers, p.CardID)
	case "mark_card_cell":
		if p.CellIndex == nil {
			return nil, models.ErrInvalidCell
		}
		return e.MarkCell(p.CardID, *p.CellIndex, p.Marked)
	case "leave_card":
		return nil, e.LeaveCard(p.CardID)
	case "get_card_state":
		return e.CardState(p.CardID)
	default:
		return nil, models.ErrUnknownAction
	}
}
