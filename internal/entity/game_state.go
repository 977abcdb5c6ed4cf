package entity

const (
	StatusLive  = "live"
	StatusWon   = "won"
	StatusDrawn = "drawn"
)

// GameState is a read-only snapshot of a session, handed to renderers.
type GameState struct {
	Board           Board  `json:"board"`
	CurrentPlayer   Player `json:"current_player"`
	Winner          Player `json:"winner,omitempty"`
	IsDraw          bool   `json:"is_draw"`
	Status          string `json:"status"`
	HistoryLength   int    `json:"history_length"`
	ShowStoneColors bool   `json:"show_stone_colors"`
	FoulAlert       string `json:"foul_alert,omitempty"`
}

func (that GameState) IsFinished() bool {
	return that.Status == StatusWon || that.Status == StatusDrawn
}

func (that GameState) CanUndo() bool {
	return that.HistoryLength > 0
}
