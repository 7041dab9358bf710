package session

import (
	"painters-telegraph/internal/api"
)

// View is an immutable copy of everything the player sees.
type View struct {
	Generation  uint64            `json:"generation"`
	Player      api.Player        `json:"-"`
	PlayerName  string            `json:"playerName"`
	LoggedIn    bool              `json:"loggedIn"`
	GameName    string            `json:"gameName"`
	OpenGames   []string          `json:"openGames"`
	EndedGames  []string          `json:"endedGames"`
	Message     string            `json:"message"`
	Prompt      string            `json:"prompt,omitempty"`
	Image       string            `json:"image,omitempty"`
	Phase       string            `json:"phase"`
	Affordances []api.Affordance  `json:"affordances"`
	Status      string            `json:"status"`
	GameID      string            `json:"gameId,omitempty"`
	Started     bool              `json:"started"`
	RoundLabel  string            `json:"roundLabel,omitempty"`
	Ended       *api.EndedGame    `json:"endedGame,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
}

// Can reports whether the view offers the affordance.
func (v View) Can(a api.Affordance) bool {
	for _, candidate := range v.Affordances {
		if candidate == a {
			return true
		}
	}
	return false
}

func buildView(generation uint64, player api.Player, gameName string, dir Directory, msg MessageSnapshot, state StateSnapshot) View {
	phase := msg.Phase()
	view := View{
		Generation:  generation,
		Player:      player,
		PlayerName:  player.DisplayName,
		LoggedIn:    player.Authenticated(),
		GameName:    gameName,
		OpenGames:   nonNil(dir.OpenGames),
		EndedGames:  nonNil(dir.EndedGames),
		Phase:       phase.String(),
		Affordances: phase.Affordances(),
		Status:      state.Status.String(),
		GameID:      state.GameID,
		RoundLabel:  state.RoundLabel(),
		Ended:       state.Ended,
	}
	if view.Affordances == nil {
		view.Affordances = []api.Affordance{}
	}
	if m := msg.Message; m != nil {
		view.Message = m.Message
		if m.Prompt != nil {
			view.Prompt = *m.Prompt
		}
		if m.Image != nil {
			view.Image = *m.Image
		}
	}
	if state.State != nil {
		view.Started = state.State.Started
	}
	errs := map[string]error{
		"directory": dir.Err,
		"message":   msg.Err,
		"state":     state.Err,
		"ended":     state.EndedErr,
	}
	for component, err := range errs {
		if err == nil {
			continue
		}
		if view.Errors == nil {
			view.Errors = make(map[string]string)
		}
		view.Errors[component] = err.Error()
	}
	return view
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
