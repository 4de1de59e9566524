package command

// root.go defines the root command for the notifyhub console: global
// flags, configuration loading, and the shared plumbing (logger, session
// store, API façade) every subcommand builds on.

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/anas-cht/notifications-project/internal/api"
	"github.com/anas-cht/notifications-project/internal/config"
	"github.com/anas-cht/notifications-project/internal/console"
	"github.com/anas-cht/notifications-project/internal/logger"
	"github.com/anas-cht/notifications-project/internal/session"
)

var (
	apiURL   string // global flag, overrides API_BASE_URL
	stateDir string // global flag, overrides STATE_DIR
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "notifyhub",
	Short: "notifyhub - notification platform admin console",
	Long: `notifyhub is the command line admin console for the notification
platform. Administrators use it to:
- Manage collaborators and the modules they belong to
- Compose and send template-based notifications
- Review platform activity from the dashboard

Use "notifyhub [command] --help" to see all available commands.`,
	SilenceUsage: true,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "API server URL (overrides API_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "session state directory (overrides STATE_DIR)")
}

// app bundles the plumbing a subcommand needs: validated configuration,
// the logger, the session store, and the API façade reading its bearer
// token from that store.
type app struct {
	cfg    *config.Config
	log    *zap.Logger
	store  *session.Store
	client *api.Client
}

func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	if apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if stateDir != "" {
		cfg.StateDir = stateDir
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)
	store := session.NewStore(cfg.StateDir)
	client := api.NewClient(cfg.APIBaseURL, store,
		api.WithTimeout(cfg.HTTPTimeout),
		api.WithRequestRate(cfg.RequestRate),
		api.WithLogger(log),
	)

	return &app{cfg: cfg, log: log, store: store, client: client}, nil
}

// requireSession gates every authenticated command: without a stored
// admin profile and token the command fails before any API call.
func (a *app) requireSession() (*session.Admin, error) {
	return console.RequireSession(a.store)
}
