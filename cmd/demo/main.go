package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"tradewire/config"
	"tradewire/pipeline"
	"tradewire/sources"
	"tradewire/types"
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginTop(1).
			MarginBottom(1)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#874BFD")).
			Padding(1, 2)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)
)

func main() {
	_ = godotenv.Load()
	log.SetOutput(os.Stderr)

	query := flag.String("query", "markets", "search query to aggregate")
	srcList := flag.String("sources", "", "comma-separated source kinds (empty = all)")
	limit := flag.Int("limit", 10, "number of top items to display")
	lang := flag.String("lang", "", "translate results to this language, e.g. es")
	flag.Parse()

	enabled, err := parseSources(*srcList)
	if err != nil {
		fmt.Println(errorStyle.Render(err.Error()))
		os.Exit(1)
	}

	cfg := config.Load()
	p := pipeline.New(pipeline.Options{
		Adapters:     buildAdapters(cfg),
		Heuristics:   cfg.Heuristics,
		FetchTimeout: cfg.FetchTimeout,
	})

	fmt.Println(titleStyle.Render("TradeWire Aggregation Demo"))
	fmt.Println(infoStyle.Render(fmt.Sprintf("query=%q sources=%v", *query, enabled)))

	start := time.Now()
	items, err := p.Aggregate(context.Background(), *query, enabled)
	if err != nil {
		fmt.Println(errorStyle.Render("aggregation failed: " + err.Error()))
		os.Exit(1)
	}

	if *lang != "" {
		items = p.Translate(context.Background(), items, *lang)
	}

	fmt.Println(statusStyle.Render(fmt.Sprintf("%d items in %s", len(items), time.Since(start).Round(time.Millisecond))))

	if len(items) > *limit {
		items = items[:*limit]
	}
	for i, item := range items {
		fmt.Println(boxStyle.Render(renderItem(i+1, item)))
	}
}

func renderItem(rank int, item *types.EnrichedItem) string {
	title := item.Title
	if item.IsTranslated && item.TranslatedTitle != "" {
		title = item.TranslatedTitle
	}

	var b strings.Builder
	b.WriteString(highlightStyle.Render(fmt.Sprintf("#%d", rank)))
	b.WriteString(" " + title + "\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("%s | %s | cluster %s", item.SourceKind, item.SourceName, item.ClusterID)))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("sentiment %s (%.2f)  quality %.0f  relevance %.0f",
		item.Sentiment, item.SentimentScore, item.QualityScore, item.RelevanceScore))
	if len(item.Entities.Tickers) > 0 {
		b.WriteString("\n" + statusStyle.Render("tickers: "+strings.Join(item.Entities.Tickers, ", ")))
	}
	return b.String()
}

func parseSources(csv string) ([]types.SourceKind, error) {
	if strings.TrimSpace(csv) == "" {
		return types.AllSourceKinds, nil
	}
	var kinds []types.SourceKind
	for _, name := range strings.Split(csv, ",") {
		kind, ok := types.ParseSourceKind(strings.TrimSpace(name))
		if !ok {
			return nil, fmt.Errorf("unknown source kind %q", name)
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func buildAdapters(cfg config.Config) []sources.Adapter {
	adapters := []sources.Adapter{
		sources.NewReddit("", cfg.AdapterTimeout),
		sources.NewRSS(nil, false, cfg.AdapterTimeout),
		sources.NewSocial("", os.Getenv("MASTODON_TOKEN"), cfg.AdapterTimeout),
	}
	if key := os.Getenv("NEWSAPI_KEY"); key != "" {
		adapters = append(adapters, sources.NewNewsAPI("", key, cfg.AdapterTimeout))
	}
	if key := os.Getenv("CRYPTOPANIC_KEY"); key != "" {
		adapters = append(adapters, sources.NewCryptoPanic("", key, cfg.AdapterTimeout))
	}
	return adapters
}
