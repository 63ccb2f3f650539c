package main

import (
	"bufio"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"feedwatch/analysis"
	"feedwatch/batch"
	"feedwatch/contract"
	"feedwatch/domain"
	"feedwatch/feed"
	"feedwatch/governor"
	"feedwatch/internal"
	"feedwatch/media"
	"feedwatch/rules"
	"feedwatch/services"
	"feedwatch/toxicity"

	"github.com/Netflix/go-env"
	"github.com/gookit/color"
	"github.com/joho/godotenv"
	"github.com/mama165/sdk-go/logs"
	"github.com/olekukonko/tablewriter"
)

// Exit codes to provide meaningful status to the operating system or service
// manager.
const (
	exitOK      = 0
	exitRuntime = 1
	exitConfig  = 2
)

func main() {
	code, err := run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Sentinel terminated with error: %v\n", err)
	}
	os.Exit(code)
}

// run initializes all components and centralizes error reporting, keeping
// defer-based cleanup out of main and the wiring testable.
func run() (int, error) {
	keywords := flag.String("keywords", "", "comma-separated keywords to search the feed for")
	hashtags := flag.String("hashtags", "", "comma-separated hashtags to search the feed for")
	lang := flag.String("lang", "", "ISO 639-1 language filter for the feed search")
	count := flag.Int("count", 50, "number of feed posts to fetch")
	file := flag.String("file", "", "path to a local file to analyze instead of searching the feed")
	findingsPath := flag.String("findings", "", "path to a JSON vision-findings report accompanying -file")
	flag.Parse()

	// .env is optional; real deployments configure through the environment.
	_ = godotenv.Load()

	var config internal.Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return exitConfig, fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return exitConfig, err
	}

	logger := logs.GetLoggerFromString(config.LogLevel)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := rules.NewEngine(rules.DefaultCorpus())
	if err != nil {
		return exitConfig, err
	}

	var model contract.Producer
	if config.ModelEndpoint != "" {
		classifier := toxicity.NewHTTPClassifier(
			config.ModelEndpoint,
			config.ModelAPIKey,
			config.ModelTimeout,
			config.ModelBackoff,
			uint64(config.ModelMaxRetries),
			logger,
		)
		model = toxicity.NewAdapter(classifier, config.ModelTimeout, logger)
	} else {
		logger.Warn("No model endpoint set, running rule-only analysis")
	}

	gov, err := governor.New(config.RateLimit, config.RateBufferFraction, config.RateWindow)
	if err != nil {
		return exitConfig, err
	}

	service := services.NewAnalyzerService(engine, model, gov, analysis.NewAggregator(config.MaxEvidence), logger)

	if *file != "" {
		return runFile(ctx, service, *file, *findingsPath)
	}

	if *keywords == "" && *hashtags == "" {
		return runInteractive(ctx, service)
	}

	if config.FeedEndpoint == "" {
		return exitConfig, fmt.Errorf("feed search requested but FEED_ENDPOINT is not set")
	}

	source := feed.NewClient(
		config.FeedEndpoint,
		config.FeedBearerToken,
		config.FeedTimeout,
		config.ModelBackoff,
		uint64(config.ModelMaxRetries),
		logger,
	)
	query := feed.Query{
		Keywords: splitList(*keywords),
		Hashtags: splitList(*hashtags),
		Lang:     *lang,
		Count:    min(*count, config.MaxFeedResults),
	}
	items, err := source.Fetch(ctx, query)
	if err != nil {
		return exitRuntime, err
	}

	ranker := batch.NewRanker(service, config.NumberOfWorkers, logger)
	summary := ranker.Rank(ctx, items)
	renderSummary(summary)
	return exitOK, nil
}

// runFile analyzes a single local file. The modality is sniffed from the
// bytes; images carry their text through the optional findings report rather
// than the raw payload.
func runFile(ctx context.Context, analyzer contract.ItemAnalyzer, path, findingsPath string) (int, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return exitRuntime, err
	}
	modality := media.DetectModality(raw)

	var text string
	if modality == domain.TextModality {
		text = string(raw)
	}
	item := domain.NewContentItem(text, modality)

	var findings *domain.VisionFindings
	if findingsPath != "" {
		report, err := os.ReadFile(findingsPath)
		if err != nil {
			return exitRuntime, err
		}
		var f domain.VisionFindings
		if err := json.Unmarshal(report, &f); err != nil {
			return exitRuntime, fmt.Errorf("findings report: %w", err)
		}
		findings = &f
	}

	verdict := analyzer.Analyze(ctx, item, findings)
	fmt.Printf("%s (%s)  score=%d  %s\n", colorize(verdict.Label), modality, verdict.Score, verdict.Explanation)
	for _, w := range verdict.Warnings {
		fmt.Printf("warning: %s\n", w)
	}
	return exitOK, nil
}

// runInteractive analyzes one line of text per stdin line, for corpus tuning
// and quick checks.
func runInteractive(ctx context.Context, analyzer contract.ItemAnalyzer) (int, error) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return exitOK, nil
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		verdict := analyzer.Analyze(ctx, domain.NewContentItem(line, domain.TextModality), nil)
		fmt.Printf("%s  score=%d  %s\n", colorize(verdict.Label), verdict.Score, verdict.Explanation)
	}
	return exitOK, scanner.Err()
}

func renderSummary(summary domain.BatchSummary) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Rank", "Label", "Score", "Author", "Text"})
	for i, ranked := range summary.Ranked {
		table.Append([]string{
			fmt.Sprintf("%d", i+1),
			colorize(ranked.Verdict.Label),
			fmt.Sprintf("%d", ranked.Verdict.Score),
			ranked.Item.Author,
			truncate(ranked.Item.Text, 60),
		})
	}
	table.Render()

	fmt.Printf("analyzed=%d partially_analyzed=%d\n", summary.Total, summary.PartiallyAnalyzed)
	for _, label := range []domain.Label{domain.Flagged, domain.Suspicious, domain.Safe} {
		fmt.Printf("%s: %d (%.2f%%)\n", colorize(label), summary.Counts[label], summary.Percentages[label])
	}
}

func colorize(label domain.Label) string {
	switch label {
	case domain.Flagged:
		return color.Red.Sprint(label)
	case domain.Suspicious:
		return color.Yellow.Sprint(label)
	default:
		return color.Green.Sprint(label)
	}
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "…"
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
