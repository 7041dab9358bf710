package web

type PlayerPage struct {
	PlayerName string
	LoggedIn   bool
	LoginURL   string
	GameName   string
	OpenGames  []string
	EndedGames []string
	Message    string
	Prompt     string
	Image      string
	Phase      string
	CanPrompt  bool
	CanDraw    bool
	Status     string
	RoundLabel string
	Ended      *EndedSummary
	Errors     []string
	Flash      string
}

type EndedSummary struct {
	GameID   string
	GameName string
	Gifs     []string
}
