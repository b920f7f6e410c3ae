package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stock-sentiment-analyzer/internal/analyzer"
	"stock-sentiment-analyzer/internal/finnhub"
	"stock-sentiment-analyzer/internal/interfaces"
	"stock-sentiment-analyzer/internal/keys"
	"stock-sentiment-analyzer/internal/llm"
	"stock-sentiment-analyzer/internal/news"
	"stock-sentiment-analyzer/internal/runlog"
	"stock-sentiment-analyzer/internal/store"
)

// NewRootCmd wires the whole pipeline and exposes it as subcommands.
func NewRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "analyzer",
		Short: "Stock Sentiment Analyzer - AI-powered trading signals",
		Long: `Collects news and financial sentiment data about a stock ticker and asks
DeepSeek for a trading signal with confidence, rationale and risk factors.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "Configuration file path")

	rootCmd.AddCommand(newAnalyzeCmd(&configPath))
	rootCmd.AddCommand(newKeysCmd(&configPath))
	rootCmd.AddCommand(newTestAPICmd(&configPath))
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

// buildDeps constructs the registry, engine and service from config.
// overrides runs after load but before wiring, so flag values reach the
// collectors.
func buildDeps(configPath string, overrides func(*store.Config)) (*store.Config, *keys.Registry, interfaces.Engine, *analyzer.Service, error) {
	cfg, err := store.LoadConfig(configPath)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	if overrides != nil {
		overrides(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, nil, err
	}

	reg := keys.NewRegistry()
	deepseekKey := reg.GetOrCreate(keys.DeepSeekKeyName, "DeepSeek API")
	newsKey := reg.GetOrCreate(keys.NewsAPIKeyName, "NewsAPI")
	finnhubKey := reg.GetOrCreate(keys.FinnhubKeyName, "Finnhub API")

	var engine interfaces.Engine
	if cfg.LLM.Provider == "DEEPSEEK" {
		engine = llm.NewDeepSeek(cfg, deepseekKey)
	} else {
		engine = llm.NewNoop()
	}

	collectors := []interfaces.NewsCollector{
		news.NewAPIClient(cfg, newsKey),
		news.NewFinVizScraper(cfg),
		news.NewYahooScraper(cfg),
	}
	sentiment := finnhub.NewClient(cfg, finnhubKey)
	runLog := runlog.New(cfg.Log.Dir, nil)
	if cfg.Log.RetentionDays > 0 {
		_ = runLog.CompressOlder(cfg.Log.RetentionDays)
	}

	svc := analyzer.NewService(cfg, engine, collectors, sentiment, runLog)
	return cfg, reg, engine, svc, nil
}

func newAnalyzeCmd(configPath *string) *cobra.Command {
	var days, maxArticles int

	cmd := &cobra.Command{
		Use:   "analyze [SYMBOL]",
		Short: "Run sentiment analysis for a stock symbol",
		Long: `Fetch recent news and sentiment data for a ticker and produce a trading
signal. Example: analyzer analyze AAPL --days=7`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, _, svc, err := buildDeps(*configPath, func(cfg *store.Config) {
				if days > 0 {
					cfg.News.Days = days
				}
				if maxArticles > 0 {
					cfg.News.MaxArticles = maxArticles
				}
			})
			if err != nil {
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), RenderKeyStatus(reg.Keys()))

			analysis, err := svc.Analyze(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderAnalysis(analysis))
			return nil
		},
	}

	cmd.Flags().IntVar(&days, "days", 0, "News analysis period in days (1-30)")
	cmd.Flags().IntVar(&maxArticles, "max-articles", 0, "Maximum articles per source")
	return cmd
}

func newKeysCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Show API key status with redacted values",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, reg, _, _, err := buildDeps(*configPath, nil)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), RenderKeyStatus(reg.Keys()))
			return nil
		},
	}
}

func newTestAPICmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "test-api",
		Short: "Send a connectivity probe to the configured AI engine",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, engine, _, err := buildDeps(*configPath, nil)
			if err != nil {
				return err
			}
			if !engine.Configured() {
				return analyzer.ErrEngineNotConfigured
			}
			reply, err := engine.TestConnection(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render("✓ DeepSeek API is working"))
			fmt.Fprintln(cmd.OutOrStdout(), dimStyle.Render(reply))
			return nil
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), "stock-sentiment-analyzer v1.0.0")
		},
	}
}
