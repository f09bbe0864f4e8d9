package main

type PlayerType int

const (
	PlayerHuman PlayerType = iota
	PlayerAgent
)

type GameSettings struct {
	BoardSize     int        `json:"board_size"`
	TurnTimeMs    int        `json:"turn_time_ms"`
	PlayerOneType PlayerType `json:"-"`
	PlayerTwoType PlayerType `json:"-"`
}

func DefaultGameSettings() GameSettings {
	config := GetConfig()
	return GameSettings{
		BoardSize:     config.BoardSize,
		TurnTimeMs:    config.TurnTimeMs,
		PlayerOneType: PlayerHuman,
		PlayerTwoType: PlayerAgent,
	}
}
