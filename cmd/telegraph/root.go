package main

import (
	"log"
	"strings"

	"painters-telegraph/internal/config"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type options struct {
	v        *viper.Viper
	gameName string
	asJSON   bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:           "telegraph",
		Short:         "Client for the Painter's Telegraph drawing game.",
		SilenceErrors: true,
		SilenceUsage:  true,
		Version:       releaseVersion,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.LoadDotEnv(".env"); err != nil {
				log.Printf("failed to load .env: %v", err)
			}
			opts.v = config.NewViper()
			bindFlags(opts.v, cmd.Root().PersistentFlags())
			return nil
		},
	}

	fs := cmd.PersistentFlags()
	fs.SetNormalizeFunc(func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		return pflag.NormalizedName(strings.ReplaceAll(name, "_", "-"))
	})

	defaults := config.Default()
	fs.String("server-url", defaults.ServerURL, "game server base url (env: TELEGRAPH_SERVER_URL)")
	fs.String("auth-url", defaults.AuthURL, "auth host base url (env: TELEGRAPH_AUTH_URL)")
	fs.Int("default-total-rounds", defaults.DefaultTotalRounds, "rounds sent with createGame (env: TELEGRAPH_DEFAULT_TOTAL_ROUNDS)")
	fs.Duration("request-timeout", defaults.RequestTimeout, "per-request timeout (env: TELEGRAPH_REQUEST_TIMEOUT)")
	fs.Bool("pin-legacy-ended-game", false, "always fetch the legacy archived game (env: TELEGRAPH_PIN_LEGACY_ENDED_GAME)")
	fs.String("credential-store", defaults.CredentialStore, "memory, file, postgres or redis (env: TELEGRAPH_CREDENTIAL_STORE)")
	fs.String("credential-file", defaults.CredentialFile, "credential path for the file store (env: TELEGRAPH_CREDENTIAL_FILE)")
	fs.String("profile", defaults.Profile, "credential profile for shared stores (env: TELEGRAPH_PROFILE)")
	fs.String("database-url", "", "postgres dsn for the journal and credential store (env: DATABASE_URL)")
	fs.String("redis-addr", defaults.RedisAddr, "redis address for the redis store (env: REDIS_ADDR)")
	fs.String("redis-password", "", "redis password (env: REDIS_PASSWORD)")
	fs.BoolP("verbose", "v", false, "display additional output (env: TELEGRAPH_VERBOSE)")
	fs.StringVarP(&opts.gameName, "game", "g", "", "target game name")
	fs.BoolVar(&opts.asJSON, "json", false, "print views as json")

	cmd.AddCommand(
		newServeCmd(opts),
		newGamesCmd(opts),
		newStatusCmd(opts),
		newWatchCmd(opts),
		newCreateCmd(opts),
		newLifecycleCmd(opts, "join", "Join a game"),
		newLifecycleCmd(opts, "start", "Start a game"),
		newLifecycleCmd(opts, "end-round", "End the current round"),
		newLifecycleCmd(opts, "end-game", "End a game"),
		newPromptCmd(opts),
		newDrawCmd(opts),
		newEndedCmd(opts),
		newLoginCmd(opts),
		newLogoutCmd(opts),
		newWhoamiCmd(opts),
		newHistoryCmd(opts),
	)

	cmd.CompletionOptions.HiddenDefaultCmd = true
	cmd.SetHelpCommand(&cobra.Command{Hidden: true})
	cmd.SetVersionTemplate("telegraph v{{.Version}}\n")

	return cmd
}

// bindFlags lets explicitly set flags win over environment and config file
// values read by config.Load.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) {
	fs.VisitAll(func(f *pflag.Flag) {
		switch f.Name {
		case "game", "json":
			return
		}
		if f.Changed {
			v.Set(f.Name, f.Value.String())
		}
	})
}

func (o *options) config() config.Config {
	return config.Load(o.v)
}
