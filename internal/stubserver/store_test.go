package stubserver

import "testing"

func TestStoreRoundFlow(t *testing.T) {
	store := NewStore()
	if _, err := store.CreateGame("foo", 2); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := store.CreateGame("foo", 2); err != errGameExists {
		t.Fatalf("expected duplicate error, got %v", err)
	}
	for _, secret := range []string{"a", "b"} {
		if err := store.JoinGame("foo", stubPlayer{Secret: secret, Name: secret}); err != nil {
			t.Fatalf("join %s: %v", secret, err)
		}
	}
	if err := store.StartGame("foo"); err != nil {
		t.Fatalf("start: %v", err)
	}
	if msg := store.PlayerMessage("a"); msg["startPrompt"] != true {
		t.Fatalf("expected start prompt, got %#v", msg)
	}
	if err := store.SubmitPrompt("foo", "a", "a cat"); err != nil {
		t.Fatalf("prompt a: %v", err)
	}
	if err := store.SubmitPrompt("foo", "a", "again"); err != errAlreadyPlayed {
		t.Fatalf("expected already played, got %v", err)
	}
	if err := store.SubmitPrompt("foo", "b", "a dog"); err != nil {
		t.Fatalf("prompt b: %v", err)
	}
	if ended, err := store.EndRound("foo"); err != nil || ended {
		t.Fatalf("end round 1: ended=%v err=%v", ended, err)
	}
	if msg := store.PlayerMessage("b"); msg["prompt"] != "a cat" {
		t.Fatalf("expected neighbour prompt, got %#v", msg)
	}
	if err := store.SubmitDrawing("foo", "b", "http://img/1"); err != nil {
		t.Fatalf("drawing: %v", err)
	}
	if ended, err := store.EndRound("foo"); err != nil || !ended {
		t.Fatalf("end round 2: ended=%v err=%v", ended, err)
	}

	state, err := store.GameState("foo")
	if err != nil {
		t.Fatalf("state: %v", err)
	}
	if state["totalRounds"] != "0" {
		t.Fatalf("expected ended state, got %#v", state)
	}
	archive, err := store.EndedGame(state["gameId"].(string))
	if err != nil {
		t.Fatalf("ended game: %v", err)
	}
	gifs := archive["gifs"].([]string)
	if len(gifs) != 1 || gifs[0] != "http://img/1" {
		t.Fatalf("unexpected gifs %#v", gifs)
	}
	if open := store.ListGames(false); len(open) != 0 {
		t.Fatalf("expected no open games, got %v", open)
	}
	if ended := store.ListGames(true); len(ended) != 1 || ended[0] != "foo" {
		t.Fatalf("unexpected ended list %v", ended)
	}
}

func TestJoinStartedGameRejected(t *testing.T) {
	store := NewStore()
	_, _ = store.CreateGame("foo", 2)
	_ = store.JoinGame("foo", stubPlayer{Secret: "a"})
	_ = store.StartGame("foo")
	if err := store.JoinGame("foo", stubPlayer{Secret: "b"}); err != errGameStarted {
		t.Fatalf("expected started error, got %v", err)
	}
	if err := store.JoinGame("foo", stubPlayer{Secret: "a"}); err != nil {
		t.Fatalf("expected rejoin to succeed, got %v", err)
	}
}
