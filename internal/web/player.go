package web

import (
	"context"
	"io"

	"github.com/a-h/templ"
)

func Player(page PlayerPage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		w.raw(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="utf-8"/>
    <meta name="viewport" content="width=device-width, initial-scale=1"/>
    <title>Painter's Telegraph</title>
  </head>
  <body>
    <main class="shell">
      <header>
        <h1>Painter's Telegraph</h1>
        <p id="player">Playing as <strong>`)
		w.text(page.PlayerName)
		w.raw(`</strong>`)
		if page.LoggedIn {
			w.raw(` <a href="/logout">Log out</a>`)
		} else {
			w.raw(` <a href="/login">Log in</a>`)
		}
		w.raw(`</p>
      </header>
`)
		if page.Flash != "" {
			w.raw(`      <p class="flash">`)
			w.text(page.Flash)
			w.raw("</p>\n")
		}
		for _, msg := range page.Errors {
			w.raw(`      <p class="error">`)
			w.text(msg)
			w.raw("</p>\n")
		}
		writeIdentity(w, page)
		writeGame(w, page)
		writeTurn(w, page)
		writeEnded(w, page)
		writeListings(w, page)
		w.raw(`    </main>
    <script>
      const post = async (path, body) => {
        const res = await fetch(path, {
          method: "POST",
          headers: { "Content-Type": "application/json" },
          body: JSON.stringify(body || {})
        });
        const data = await res.json().catch(() => ({}));
        if (!res.ok) {
          alert(data.error || "Request failed.");
        }
      };
      const gameName = () => document.getElementById("gameName").value.trim();
      document.querySelectorAll("[data-action]").forEach((button) => {
        button.addEventListener("click", () => post("/api/games/" + button.dataset.action, { gameName: gameName() }));
      });
      document.getElementById("gameForm").addEventListener("submit", (event) => {
        event.preventDefault();
        post("/api/game", { gameName: gameName() });
      });
      document.getElementById("nameForm").addEventListener("submit", (event) => {
        event.preventDefault();
        post("/api/name", { displayName: event.target.elements.displayName.value });
      });
      document.getElementById("refresh").addEventListener("click", () => post("/api/refresh"));
      document.getElementById("fetchEnded").addEventListener("click", () => post("/api/ended-game"));
      const promptForm = document.getElementById("promptForm");
      if (promptForm) {
        promptForm.addEventListener("submit", (event) => {
          event.preventDefault();
          post("/api/prompt", { prompt: promptForm.elements.prompt.value });
        });
      }
      const drawingForm = document.getElementById("drawingForm");
      if (drawingForm) {
        drawingForm.addEventListener("submit", async (event) => {
          event.preventDefault();
          const res = await fetch("/api/drawing", { method: "POST", body: new FormData(drawingForm) });
          const data = await res.json().catch(() => ({}));
          if (!res.ok) {
            alert(data.error || "Upload failed.");
          }
        });
      }
      const connect = () => {
        const ws = new WebSocket((location.protocol === "https:" ? "wss://" : "ws://") + location.host + "/ws");
        let first = true;
        ws.onmessage = () => {
          // The first message is the view this page was rendered from.
          if (!first) {
            location.reload();
          }
          first = false;
        };
        ws.onclose = () => setTimeout(connect, 2000);
      };
      connect();
    </script>
  </body>
</html>
`)
		return w.err
	})
}

func writeIdentity(w *writer, page PlayerPage) {
	w.raw(`      <section class="panel">
        <form id="nameForm">
          <input name="displayName" placeholder="Display name" autocomplete="name" value="`)
	if !page.LoggedIn {
		w.text(page.PlayerName)
	}
	w.raw(`"/>
          <button type="submit">Set name</button>
        </form>
      </section>
`)
}

func writeGame(w *writer, page PlayerPage) {
	w.raw(`      <section class="panel">
        <form id="gameForm">
          <input id="gameName" name="gameName" placeholder="Game name" autocomplete="off" value="`)
	w.text(page.GameName)
	w.raw(`"/>
          <button type="submit">Watch game</button>
        </form>
        <div class="actions">
          <button data-action="create">Create</button>
          <button data-action="join">Join</button>
          <button data-action="start">Start</button>
          <button data-action="end-round">End round</button>
          <button data-action="end-game">End game</button>
          <button id="refresh">Refresh</button>
        </div>
        <p id="status">Status: `)
	w.text(page.Status)
	if page.RoundLabel != "" {
		w.raw(` &middot; <span id="roundLabel">`)
		w.text(page.RoundLabel)
		w.raw(`</span>`)
	}
	w.raw(`</p>
`)
	if page.GameName != "" {
		w.raw(`        <img class="invite" alt="Invite QR code" src="`)
		w.text(inviteLink(page.GameName))
		w.raw(`"/>
`)
	}
	w.raw(`      </section>
`)
}

func writeTurn(w *writer, page PlayerPage) {
	w.raw(`      <section class="panel">
        <p id="message">`)
	w.text(page.Message)
	w.raw(`</p>
`)
	if page.Prompt != "" {
		w.raw(`        <p class="prompt">`)
		w.text(page.Prompt)
		w.raw("</p>\n")
	}
	if src := safeImage(page.Image); src != "" {
		w.raw(`        <img class="drawing" alt="Drawing to describe" src="`)
		w.text(src)
		w.raw(`"/>
`)
	}
	if page.CanPrompt {
		w.raw(`        <form id="promptForm">
          <input name="prompt" placeholder="Your prompt" maxlength="280" autocomplete="off" required/>
          <button type="submit">Submit prompt</button>
        </form>
`)
	}
	if page.CanDraw {
		w.raw(`        <form id="drawingForm" enctype="multipart/form-data">
          <input type="file" name="file" accept="image/*" required/>
          <button type="submit">Upload drawing</button>
        </form>
`)
	}
	w.raw(`      </section>
`)
}

func writeEnded(w *writer, page PlayerPage) {
	w.raw(`      <section class="panel">
        <button id="fetchEnded">Fetch ended game</button>
`)
	if page.Ended != nil {
		w.raw(`        <h2>`)
		name := page.Ended.GameName
		if name == "" {
			name = page.Ended.GameID
		}
		w.text(name)
		w.raw("</h2>\n")
		for _, gif := range page.Ended.Gifs {
			if src := safeImage(gif); src != "" {
				w.raw(`        <img class="gif" alt="Round result" src="`)
				w.text(src)
				w.raw(`"/>
`)
			}
		}
	}
	w.raw(`      </section>
`)
}

func writeListings(w *writer, page PlayerPage) {
	lists := []struct {
		title string
		games []string
	}{
		{title: "Open games", games: page.OpenGames},
		{title: "Ended games", games: page.EndedGames},
	}
	for _, list := range lists {
		w.raw(`      <section class="panel">
        <h2>`)
		w.text(list.title)
		w.raw("</h2>\n        <ul>\n")
		if len(list.games) == 0 {
			w.raw("          <li>None</li>\n")
		}
		for _, name := range list.games {
			w.raw(`          <li><a href="`)
			w.text(gameLink(name))
			w.raw(`">`)
			w.text(name)
			w.raw("</a></li>\n")
		}
		w.raw("        </ul>\n      </section>\n")
	}
}
