package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/apiclient"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/audit"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/export"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/core/session"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/endpoints"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/modules/dashboard/services"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/shared/config"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/shared/database"
	"github.com/troika-tech/Troika-Chat-Agent-Admin-Dashboard-sub000/internal/shared/utils"
)

var version = "0.1.0"

// app holds everything a command needs; built once per invocation
type app struct {
	cfg     *config.Config
	db      *database.DB
	store   *session.Store
	session *session.Manager
	client  *apiclient.Client
	api     *endpoints.Endpoints
	audit   *audit.Service
	logger  zerolog.Logger

	auth        *services.AuthService
	overview    *services.OverviewService
	companies   *services.CompanyService
	credits     *services.CreditService
	chatbots    *services.ChatbotService
	configs     *services.ConfigService
	subs        *services.SubResourceService
	messages    *services.MessageService
	zoho        *services.ZohoService
	unsubscribe func()
}

var (
	a          *app
	jsonOutput bool
	timeNow    = time.Now
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	teardown()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", apiclient.MessageOr(err, err.Error()))
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "troika-admin",
	Short: "Troika chatbot platform admin console",
	Long: `troika-admin manages companies, chatbots, credits and chatbot
configuration on the Troika chatbot platform.

Examples:
  troika-admin login --email ops@troika.example
  troika-admin company list
  troika-admin credits add <company-id> --amount 500 --reason "monthly top-up"
  troika-admin messages export <chatbot-id> --format xlsx -o history.xlsx
  troika-admin zoho link <chatbot-id> --client-id ... --client-secret ... --save`,
	Version:           version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(*cobra.Command, []string) { teardown() },
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Print raw JSON instead of tables")
	rootCmd.PersistentFlags().String("env", "", "Backend environment (local or production)")
}

func setup(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	if env, _ := cmd.Flags().GetString("env"); env != "" {
		u, ok := config.BaseURLFor(env)
		if !ok {
			return fmt.Errorf("unknown environment %q", env)
		}
		cfg.Env, cfg.APIBaseURL = env, u
	}
	utils.InitLogger(cfg.LogLevel, cfg.LogFormat)

	db, err := database.NewDB(cfg.StateDatabaseURL)
	if err != nil {
		return err
	}

	store := session.NewStore(db.GORM)
	nav := session.NewTerminalNavigator(store, cmd.ErrOrStderr(), utils.Component("navigator"))
	manager := session.NewManager(store, nav, utils.Component("session"))

	client := apiclient.New(apiclient.Options{
		BaseURL:         cfg.APIBaseURL,
		Timeout:         cfg.APITimeout,
		WithCredentials: cfg.WithCredentials,
		UserAgent:       "troika-admin/" + version,
	}, store, nil, utils.Component("api"))

	api := endpoints.New(client)
	auditLog := audit.NewService(db.GORM, utils.Component("audit"))
	authSvc := services.NewAuthService(api, manager, auditLog, utils.Component("auth"))
	actor := services.ActorFunc(authSvc.Actor)
	logger := log.Logger

	a = &app{
		cfg:         cfg,
		db:          db,
		store:       store,
		session:     manager,
		client:      client,
		api:         api,
		audit:       auditLog,
		logger:      logger,
		auth:        authSvc,
		overview:    services.NewOverviewService(api, utils.Component("overview")),
		companies:   services.NewCompanyService(api, auditLog, actor, utils.Component("company")),
		credits:     services.NewCreditService(api, auditLog, actor, utils.Component("credits")),
		chatbots:    services.NewChatbotService(api, auditLog, actor, utils.Component("chatbot")),
		configs:     services.NewConfigService(api, auditLog, actor, utils.Component("config")),
		subs:        services.NewSubResourceService(api, auditLog, actor, utils.Component("subresource")),
		messages:    services.NewMessageService(api, export.NewService(), utils.Component("messages")),
		zoho:        services.NewZohoService(api, auditLog, actor, utils.Component("zoho")),
		unsubscribe: manager.Attach(client.Events()),
	}
	return nil
}

func teardown() {
	if a == nil {
		return
	}
	a.unsubscribe()
	if err := a.db.Close(); err != nil {
		a.logger.Warn().Err(err).Msg("failed to close state database")
	}
	a = nil
}

func newTable(cmd *cobra.Command) *tabwriter.Writer {
	return tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}
