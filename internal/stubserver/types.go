package stubserver

const (
	statusOK    = "OK"
	statusError = "ERROR"
)

type stubPlayer struct {
	Secret string
	Name   string
}

type roundEntry struct {
	Prompt  string
	Drawing string
}

type stubGame struct {
	ID           string
	Name         string
	TotalRounds  int
	CurrentRound int
	Started      bool
	Ended        bool
	Players      []stubPlayer
	// Rounds[round][playerIndex]
	Rounds [][]roundEntry
	Gifs   []string
}

type playerRequest struct {
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
}

type gameRequest struct {
	GameName     string `json:"gameName"`
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
}

type createGameRequest struct {
	GameName     string    `json:"gameName"`
	PlayerName   string    `json:"playerName"`
	PlayerSecret string    `json:"playerSecret"`
	TotalRounds  flexCount `json:"totalRounds"`
}

type promptRequest struct {
	GameName     string `json:"gameName"`
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
	Prompt       string `json:"prompt"`
}

type drawingRequest struct {
	GameName     string `json:"gameName"`
	PlayerName   string `json:"playerName"`
	PlayerSecret string `json:"playerSecret"`
	Drawing      string `json:"drawing"`
}

type endedGameRequest struct {
	GameID string `json:"gameId"`
}
