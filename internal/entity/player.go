package entity

import (
	"errors"
	"fmt"
)

// Player identifies who owns a stone. The zero value NoPlayer marks an empty cell.
type Player int

const (
	NoPlayer Player = iota
	Player1
	Player2
)

var ErrUnknownPlayer = errors.New("unknown player")

// Opposite returns the other playing side. NoPlayer stays NoPlayer.
func (that Player) Opposite() Player {
	switch that {
	case Player1:
		return Player2
	case Player2:
		return Player1
	default:
		return NoPlayer
	}
}

func (that Player) IsPlaying() bool {
	return that == Player1 || that == Player2
}

// DisplayName is the label shown to people, e.g. "Player 1 (Black)".
func (that Player) DisplayName() string {
	switch that {
	case Player1:
		return "Player 1 (Black)"
	case Player2:
		return "Player 2 (White)"
	default:
		return ""
	}
}

func (that Player) String() string {
	switch that {
	case Player1:
		return "PLAYER1"
	case Player2:
		return "PLAYER2"
	default:
		return ""
	}
}

func (that Player) MarshalText() ([]byte, error) {
	return []byte(that.String()), nil
}

func (that *Player) UnmarshalText(text []byte) error {
	switch string(text) {
	case "PLAYER1":
		*that = Player1
	case "PLAYER2":
		*that = Player2
	case "":
		*that = NoPlayer
	default:
		return fmt.Errorf("%w: %q", ErrUnknownPlayer, string(text))
	}

	return nil
}
