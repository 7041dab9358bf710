package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"
	"time"

	"painters-telegraph/internal/session"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// withApp wires a session for the duration of one command.
func withApp(opts *options, run func(ctx context.Context, a *app, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		a, err := newApp(opts.config())
		if err != nil {
			return err
		}
		defer a.Close()
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return run(ctx, a, args)
	}
}

func newGamesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "games",
		Short: "List open and ended games",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, _ []string) error {
			view := a.sync(ctx, "")
			if opts.asJSON {
				return printJSON(os.Stdout, map[string]any{
					"openGames":  view.OpenGames,
					"endedGames": view.EndedGames,
				})
			}
			fmt.Printf("open:  %s\n", joinOrDash(view.OpenGames))
			fmt.Printf("ended: %s\n", joinOrDash(view.EndedGames))
			if msg, ok := view.Errors["directory"]; ok {
				return errors.New(msg)
			}
			return nil
		}),
	}
}

func newStatusCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the player's turn and the target game",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, _ []string) error {
			view := a.sync(ctx, opts.gameName)
			if opts.asJSON {
				return printJSON(os.Stdout, view)
			}
			printView(view)
			return nil
		}),
	}
}

func newWatchCmd(opts *options) *cobra.Command {
	var interval time.Duration
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the view every time it changes",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, _ []string) error {
			if opts.gameName != "" {
				a.engine.SetGameName(opts.gameName)
			}
			changes, unsubscribe := a.engine.Watch()
			defer unsubscribe()

			done := make(chan error, 1)
			go func() {
				done <- a.engine.Run(ctx)
			}()
			if interval > 0 {
				go func() {
					ticker := time.NewTicker(interval)
					defer ticker.Stop()
					for {
						select {
						case <-ctx.Done():
							return
						case <-ticker.C:
							a.engine.Refresh()
						}
					}
				}()
			}

			var last uint64
			for {
				select {
				case err := <-done:
					if errors.Is(err, context.Canceled) {
						return nil
					}
					return err
				case _, ok := <-changes:
					if !ok {
						return nil
					}
					view := a.engine.View()
					if view.Generation == last && last != 0 {
						continue
					}
					last = view.Generation
					if opts.asJSON {
						_ = printJSON(os.Stdout, view)
						continue
					}
					printView(view)
					fmt.Println()
				}
			}
		}),
	}
	cmd.Flags().DurationVar(&interval, "interval", 5*time.Second, "manual refresh interval, 0 to only follow local actions")
	return cmd
}

func newCreateCmd(opts *options) *cobra.Command {
	var rounds int
	cmd := &cobra.Command{
		Use:   "create [game]",
		Short: "Create a game",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, args []string) error {
			name := targetGame(opts, args)
			if err := a.engine.CreateGame(ctx, name, rounds); err != nil {
				return err
			}
			fmt.Printf("created %s\n", a.engine.GameName())
			return nil
		}),
	}
	cmd.Flags().IntVar(&rounds, "rounds", 0, "total rounds, 0 uses --default-total-rounds")
	return cmd
}

func newLifecycleCmd(opts *options, use, short string) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [game]",
		Short: short,
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, args []string) error {
			name := targetGame(opts, args)
			a.sync(ctx, name)
			var err error
			switch use {
			case "join":
				err = a.engine.JoinGame(ctx, name)
			case "start":
				err = a.engine.StartGame(ctx, name)
			case "end-round":
				err = a.engine.EndRound(ctx, name)
			case "end-game":
				err = a.engine.EndGame(ctx, name)
			}
			if err != nil {
				return err
			}
			fmt.Printf("%s %s ok\n", use, a.engine.GameName())
			return nil
		}),
	}
}

func newPromptCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "prompt TEXT...",
		Short: "Submit a prompt or caption",
		Args:  cobra.MinimumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, args []string) error {
			a.sync(ctx, opts.gameName)
			if err := a.engine.SubmitPrompt(ctx, strings.Join(args, " ")); err != nil {
				return err
			}
			fmt.Println("prompt submitted")
			return nil
		}),
	}
}

func newDrawCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "draw FILE",
		Short: "Upload a drawing and submit it",
		Args:  cobra.ExactArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, args []string) error {
			drawing, err := session.SelectDrawing(afero.NewOsFs(), args[0])
			if err != nil {
				return err
			}
			a.sync(ctx, opts.gameName)
			url, err := a.engine.SubmitDrawing(ctx, drawing)
			if url != "" {
				fmt.Printf("uploaded %s\n", url)
			}
			if err != nil {
				return err
			}
			fmt.Println("drawing submitted")
			return nil
		}),
	}
}

func newEndedCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "ended [game]",
		Short: "Show the archive of an ended game",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, args []string) error {
			view := a.sync(ctx, targetGame(opts, args))
			if view.Ended == nil {
				if err := a.engine.FetchEndedGame(ctx); err != nil {
					return err
				}
				view = a.engine.View()
			}
			if opts.asJSON {
				return printJSON(os.Stdout, view.Ended)
			}
			fmt.Printf("%s (%s)\n", view.Ended.GameName, view.Ended.GameID)
			for _, gif := range view.Ended.Gifs {
				fmt.Printf("  %s\n", gif)
			}
			return nil
		}),
	}
}

func newLoginCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "login [credential]",
		Short: "Store a user_id credential, or print the login url",
		Args:  cobra.MaximumNArgs(1),
		RunE: withApp(opts, func(ctx context.Context, a *app, args []string) error {
			if len(args) == 0 {
				fmt.Printf("Open %s and run `telegraph login <user_id cookie>`\n", a.client.LoginURL())
				return nil
			}
			if err := a.store.Set(ctx, strings.TrimSpace(args[0])); err != nil {
				return err
			}
			view := a.sync(ctx, "")
			if !view.LoggedIn {
				return errors.New("credential stored but could not be resolved")
			}
			fmt.Printf("logged in as %s\n", view.PlayerName)
			return nil
		}),
	}
}

func newLogoutCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored credential",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, _ []string) error {
			if err := a.store.Clear(ctx); err != nil {
				return err
			}
			fmt.Println("logged out")
			return nil
		}),
	}
}

func newWhoamiCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the resolved player",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, _ []string) error {
			player := a.resolver.Resolve(ctx)
			if !player.Authenticated() {
				fmt.Println(player.DisplayName)
				return nil
			}
			fmt.Printf("%s (%s)\n", player.DisplayName, player.ID)
			return nil
		}),
	}
}

func newHistoryCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded actions from the journal",
		Args:  cobra.NoArgs,
		RunE: withApp(opts, func(ctx context.Context, a *app, _ []string) error {
			if !a.journal.Enabled() {
				return errors.New("history needs --database-url")
			}
			events, err := a.journal.Recent(ctx, limit)
			if err != nil {
				return err
			}
			if opts.asJSON {
				return printJSON(os.Stdout, events)
			}
			for _, event := range events {
				fmt.Printf("%s %-14s %-8s game=%s player=%s\n",
					event.CreatedAt.Format(time.RFC3339), event.Type, event.Outcome, event.GameName, event.PlayerName)
			}
			return nil
		}),
	}
	cmd.Flags().IntVar(&limit, "limit", 50, "number of entries to show")
	return cmd
}

func targetGame(opts *options, args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return opts.gameName
}

func printView(view session.View) {
	fmt.Printf("player:  %s\n", view.PlayerName)
	if view.GameName != "" {
		line := fmt.Sprintf("game:    %s (%s)", view.GameName, view.Status)
		if view.RoundLabel != "" {
			line += " " + view.RoundLabel
		}
		fmt.Println(line)
	}
	fmt.Printf("message: %s\n", view.Message)
	if view.Prompt != "" {
		fmt.Printf("prompt:  %s\n", view.Prompt)
	}
	if view.Image != "" {
		fmt.Printf("image:   %s\n", view.Image)
	}
	if view.Ended != nil {
		fmt.Printf("ended:   %d gifs\n", len(view.Ended.Gifs))
	}
	keys := make([]string, 0, len(view.Errors))
	for key := range view.Errors {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Printf("error:   %s: %s\n", key, view.Errors[key])
	}
}

func printJSON(w *os.File, value any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(value)
}

func joinOrDash(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
