package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/albertyip/dsedrill/internal/exam"
	"github.com/albertyip/dsedrill/internal/handler"
	appI18n "github.com/albertyip/dsedrill/internal/i18n"
	"github.com/albertyip/dsedrill/internal/llm"
	"github.com/albertyip/dsedrill/internal/qgen"
	"github.com/albertyip/dsedrill/internal/session"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "dsedrill",
		Short: "HKDSE math practice question generator powered by LLMs",
	}

	serve := serveCmd()
	root.AddCommand(serve)

	// Make "serve" the default when no subcommand is given.
	root.RunE = serve.RunE

	// Register serve flags on root so bare `dsedrill --addr ...` still works.
	root.Flags().AddFlagSet(serve.Flags())

	return root
}

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP practice server",
		RunE:  runServe,
	}
	f := cmd.Flags()
	f.StringP("addr", "a", ":8080", "HTTP listen address")
	f.StringP("lang", "l", appI18n.DefaultLang, "UI language (zh-Hant, en)")
	f.String("llm-provider", "gemini", "Generation backend (gemini, openai, mock)")
	f.String("gemini-api-key", "", "Gemini API key (or set DSEDRILL_GEMINI_API_KEY / GEMINI_API_KEY)")
	f.String("gemini-model", "gemini-flash", "Gemini model name")
	f.String("openai-api-key", "", "API key for OpenAI-compatible endpoints")
	f.String("openai-model", "gpt-4o-mini", "Model name for OpenAI-compatible endpoints")
	f.String("openai-base-url", "", "Base URL override for OpenAI-compatible endpoints")
	f.Duration("llm-timeout", 60*time.Second, "Upper bound on a single generation call (0 = unbounded)")
	f.Int("max-tokens", 2048, "Token budget for a generated question")
	f.Duration("session-ttl", session.DefaultTTL, "How long idle sessions are kept")
	f.Bool("secure-cookies", true, "Set Secure flag on session cookies")
	f.String("log-level", "info", "Log level (debug, info, warn, error)")
	f.String("log-format", "text", "Log format (text, json)")
	return cmd
}

func setupLogging(cmd *cobra.Command) {
	v := viperForCmd(cmd)

	var logLevel slog.Level
	switch strings.ToLower(v.GetString("log-level")) {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}
	handlerOpts := &slog.HandlerOptions{Level: logLevel}
	var logHandler slog.Handler
	switch strings.ToLower(v.GetString("log-format")) {
	case "json":
		logHandler = slog.NewJSONHandler(os.Stderr, handlerOpts)
	default:
		logHandler = slog.NewTextHandler(os.Stderr, handlerOpts)
	}
	slog.SetDefault(slog.New(logHandler))
}

// viperForCmd binds a command's flags and environment to a fresh viper instance.
func viperForCmd(cmd *cobra.Command) *viper.Viper {
	v := viper.New()
	_ = v.BindPFlags(cmd.Flags())

	v.SetEnvPrefix("DSEDRILL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName("dsedrill")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/dsedrill")
	v.AddConfigPath("/etc/dsedrill")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Warn("error reading config file", "error", err)
		}
	} else {
		slog.Info("loaded config file", "path", v.ConfigFileUsed())
	}

	return v
}

func runServe(cmd *cobra.Command, _ []string) error {
	setupLogging(cmd)
	v := viperForCmd(cmd)

	llmCfg := llmConfig(v)

	// A missing API key is the single fatal startup condition: stop here,
	// before any interaction is possible.
	if err := llmCfg.Validate(); err != nil {
		slog.Error("generation service credential missing", "error", err)
		return err
	}

	lang := v.GetString("lang")
	if err := appI18n.Init(lang); err != nil {
		return fmt.Errorf("init i18n: %w", err)
	}

	provider, err := llm.NewProvider(cmd.Context(), llmCfg)
	if err != nil {
		return fmt.Errorf("create LLM provider: %w", err)
	}

	genCfg := qgen.DefaultConfig()
	genCfg.MaxTokens = v.GetInt("max-tokens")
	generator := qgen.New(provider, genCfg)

	controller := exam.New(generator, llmCfg.Timeout)
	sessions := session.NewStore(v.GetDuration("session-ttl"))

	h := handler.New(sessions, controller, handler.Config{
		SecureCookies: v.GetBool("secure-cookies"),
	})

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(appI18n.Middleware(lang))
	h.Routes(r)

	addr := v.GetString("addr")
	slog.Info("starting server",
		"addr", addr,
		"provider", llmCfg.Provider,
		"model", provider.ModelID(),
		"lang", lang,
		"llm_timeout", llmCfg.Timeout,
	)
	return http.ListenAndServe(addr, r)
}

func llmConfig(v *viper.Viper) llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = v.GetString("llm-provider")
	cfg.Gemini.APIKey = v.GetString("gemini-api-key")
	cfg.Gemini.Model = v.GetString("gemini-model")
	cfg.OpenAI.APIKey = v.GetString("openai-api-key")
	cfg.OpenAI.Model = v.GetString("openai-model")
	cfg.OpenAI.BaseURL = v.GetString("openai-base-url")
	cfg.Timeout = v.GetDuration("llm-timeout")

	// Bare GEMINI_API_KEY also works, the usual name for this secret.
	if cfg.Gemini.APIKey == "" {
		cfg.Gemini.APIKey = os.Getenv("GEMINI_API_KEY")
	}

	return cfg
}
