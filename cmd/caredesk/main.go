// caredesk is a rule-based customer-service response generator. It
// classifies intent and emotion from free text, extracts entities, runs the
// deterministic action rules, and composes a reply with an optional Gemini
// tone polish.
package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"caredesk/internal/articulation"
	"caredesk/internal/config"
	"caredesk/internal/orchestration"
	"caredesk/internal/perception"
	"caredesk/internal/store"
)

var (
	// Global flags
	verbose    bool
	noPolish   bool
	configPath string

	// Logger
	logger *zap.Logger
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	inputStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	ruleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// rootCmd represents the base command.
var rootCmd = &cobra.Command{
	Use:   "caredesk",
	Short: "caredesk - rule-based customer service response engine",
	Long: `caredesk classifies customer messages (intent, emotion, entities),
executes deterministic business actions (refunds, replacements, credits,
escalations, callbacks), and composes a reply: a prose summary plus the
bullet fact list, optionally tone-polished via Gemini.

Run "caredesk demo" to see the canned sample conversations.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// processCmd handles a single customer message.
var processCmd = &cobra.Command{
	Use:   "process [message]",
	Short: "Process one customer message and print the reply",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProcess,
}

// demoCmd prints the canned sample conversations.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Run the six canned sample messages through the pipeline",
	RunE:  runDemo,
}

// demoSamples covers every major intent path.
var demoSamples = []string{
	// Angry complaint with carrier damage
	"Your 'AeroBlend' blender (order ORD-7842-CA, bought on Sep 30, 2025) arrived with a cracked jar and the carrier shows 'delayed, damaged in transit.' I've emailed twice and got nothing. This is ridiculous. Either refund me or I'm filing a claim with my bank.",
	// Confused inquiry, possible duplicate charge
	"I don't understand my bill. I was charged $19.99 twice on Oct 1 for the 'Pro Notes' subscription. I chatted last week, ticket TCK-2025-10-06-C8, but I still don't get what happened. Can someone explain in plain English?",
	// Missing part, polite
	"Hello! My CityLite Laptop Stand arrived (order US-55291) but there's no hex key in the box. Everything else seems fine. Could you send the tool or advise? Thank you!",
	// Cancellation threat
	"I'm done. The StreamGo+ app keeps buffering. I pay for Premium and can't even watch soccer. If this isn't fixed today, I'm canceling and switching to a competitor.",
	// Product defect
	"My CleanTrail Cordless Vacuum (order CA-993144) runs 5 minutes and dies, even after a full charge overnight. I bought it 3 weeks ago. Serial CT-V11-9F2. What can we do? I can send a video.",
	// Praise
	"Just wanted to say thank you. Janelle from support fixed my shipping address mess yesterday and got my Aurora Desk Lamp delivered this morning. Perfect service!",
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noPolish, "no-polish", false, "skip the Gemini tone polish")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a caredesk.yaml config file")

	rootCmd.AddCommand(processCmd)
	rootCmd.AddCommand(demoCmd)
}

// buildHandler wires the pipeline from configuration.
func buildHandler(ctx context.Context) (*articulation.Handler, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	perceiveOpts := []perception.Option{perception.WithLogger(logger)}
	if cfg.Sentiment.Enabled {
		perceiveOpts = append(perceiveOpts, perception.WithSentiment(perception.NewVaderScorer()))
	}
	perceiver := perception.NewEngine(perceiveOpts...)

	records := store.NewSeeded(cfg.Policy.RefundWindowDays)
	engine := orchestration.New(perceiver, records, cfg.Policy, orchestration.WithLogger(logger))

	opts := []articulation.HandlerOption{articulation.WithLogger(logger)}
	if cfg.LLM.Polish && !noPolish {
		if cfg.LLM.APIKey == "" {
			logger.Info("GEMINI_API_KEY not set, skipping tone polish")
		} else {
			polisher, err := articulation.NewGeminiPolisher(ctx, cfg.LLM.APIKey, cfg.LLM.Model, logger)
			if err != nil {
				logger.Warn("gemini polisher unavailable, continuing without polish", zap.Error(err))
			} else {
				opts = append(opts, articulation.WithPolisher(polisher, cfg.PolishTimeout()))
			}
		}
	}

	return articulation.NewHandler(engine, opts...), nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	handler, err := buildHandler(ctx)
	if err != nil {
		return err
	}

	reply := handler.Handle(ctx, strings.Join(args, " "))
	printReply(reply)
	return nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	handler, err := buildHandler(ctx)
	if err != nil {
		return err
	}

	for i, sample := range demoSamples {
		fmt.Println(headerStyle.Render(fmt.Sprintf("=== Example %d ===", i+1)))
		fmt.Println(inputStyle.Render("INPUT: " + sample))
		reply := handler.Handle(ctx, sample)
		printReply(reply)
		fmt.Println(ruleStyle.Render(strings.Repeat("-", 60)))
	}
	return nil
}

func printReply(reply *articulation.Reply) {
	p := reply.Result.Perception
	fmt.Println(ruleStyle.Render(fmt.Sprintf("[intent=%s emotion=%s urgency=%s churn_risk=%v]",
		p.Intent, p.Emotion, p.Urgency, p.ChurnRisk)))
	fmt.Println(reply.Text)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
