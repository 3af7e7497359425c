package config

// Heuristics collects every tunable table and constant used by the scoring
// pipeline. Values live here as data rather than inline logic so they can be
// tuned and tested independently of control flow. The defaults below are the
// calibrated production values; an optional YAML file may override any of them.
type Heuristics struct {
	Sentiment SentimentConfig   `yaml:"sentiment"`
	Entities  EntityConfig      `yaml:"entities"`
	Quality   QualityConfig     `yaml:"quality"`
	Dedup     DedupConfig       `yaml:"dedup"`
	Cluster   ClusterConfig     `yaml:"cluster"`
	Rank      RankConfig        `yaml:"rank"`
	Glossary  map[string]string `yaml:"glossary"`
}

// SentimentConfig holds the bullish/bearish cue words and the decision margin.
type SentimentConfig struct {
	BullishWords []string `yaml:"bullishWords"`
	BearishWords []string `yaml:"bearishWords"`
	// Margin is the hysteresis: a label is assigned only when one side's count
	// exceeds the other by more than Margin.
	Margin int `yaml:"margin"`
}

// EntityConfig holds the whitelists used for entity extraction. Ticker
// candidates are all-caps tokens, but only whitelisted symbols survive, which
// keeps acronyms like CEO or IPO out of the ticker list.
type EntityConfig struct {
	Tickers   []string `yaml:"tickers"`
	Companies []string `yaml:"companies"`
	People    []string `yaml:"people"`
	Locations []string `yaml:"locations"`
}

// QualityConfig holds the additive quality-score model.
type QualityConfig struct {
	Base                float64 `yaml:"base"`
	ReputableBonus      float64 `yaml:"reputableBonus"`
	ClickbaitPenalty    float64 `yaml:"clickbaitPenalty"`
	LongContentBonus    float64 `yaml:"longContentBonus"`
	LongContentMinChars int     `yaml:"longContentMinChars"`
	UpvoteThreshold     int     `yaml:"upvoteThreshold"`
	UpvoteLogMultiplier float64 `yaml:"upvoteLogMultiplier"`
	UpvoteBonusCap      float64 `yaml:"upvoteBonusCap"`

	// Recency bonuses are tiered by item age: under one hour, under six
	// hours, under one day. Older items earn nothing.
	RecencyHourBonus    float64 `yaml:"recencyHourBonus"`
	RecencySixHourBonus float64 `yaml:"recencySixHourBonus"`
	RecencyDayBonus     float64 `yaml:"recencyDayBonus"`

	ReputableSources []string `yaml:"reputableSources"`
	ClickbaitPhrases []string `yaml:"clickbaitPhrases"`
}

// DedupConfig holds the near-duplicate detection parameters.
type DedupConfig struct {
	// SimilarityThreshold is the word-set Jaccard similarity above which an
	// item is dropped as a duplicate of an already accepted one.
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	// SignatureLength is the number of leading characters of the normalized
	// title+content used as the comparison signature.
	SignatureLength int `yaml:"signatureLength"`
}

// ClusterConfig holds the greedy topic-clustering parameters.
type ClusterConfig struct {
	SimilarityThreshold float64 `yaml:"similarityThreshold"`
	TickerWeight        float64 `yaml:"tickerWeight"`
	CompanyWeight       float64 `yaml:"companyWeight"`
	TitleWeight         float64 `yaml:"titleWeight"`
	MaxSimilarItems     int     `yaml:"maxSimilarItems"`
}

// RankConfig holds the relevance bonuses and the composite score weights.
// The four weights sum to 1.0.
type RankConfig struct {
	PhraseBonus      float64 `yaml:"phraseBonus"`
	TitleWordBonus   float64 `yaml:"titleWordBonus"`
	ContentWordBonus float64 `yaml:"contentWordBonus"`
	TickerBonus      float64 `yaml:"tickerBonus"`
	CompanyBonus     float64 `yaml:"companyBonus"`

	RelevanceWeight float64 `yaml:"relevanceWeight"`
	QualityWeight   float64 `yaml:"qualityWeight"`
	SentimentWeight float64 `yaml:"sentimentWeight"`
	RecencyWeight   float64 `yaml:"recencyWeight"`
}

// DefaultHeuristics returns the calibrated default tables.
func DefaultHeuristics() Heuristics {
	return Heuristics{
		Sentiment: SentimentConfig{
			BullishWords: []string{
				"surge", "rally", "soar", "gain", "bullish", "breakout", "record high",
				"outperform", "upgrade", "beat", "growth", "boom", "jump", "climb",
				"strong", "optimism", "recovery", "rebound", "all-time high", "moon",
			},
			BearishWords: []string{
				"crash", "plunge", "slump", "drop", "bearish", "selloff", "record low",
				"underperform", "downgrade", "miss", "decline", "bust", "fall", "sink",
				"weak", "fear", "recession", "collapse", "correction", "capitulation",
			},
			Margin: 2,
		},
		Entities: EntityConfig{
			Tickers: []string{
				"AAPL", "MSFT", "GOOGL", "AMZN", "NVDA", "META", "TSLA", "AMD", "INTC",
				"JPM", "GS", "BAC", "WFC", "XOM", "CVX", "BA", "DIS", "NFLX", "PLTR",
				"COIN", "SPY", "QQQ", "DIA", "VIX", "GLD", "SLV", "USO",
				"BTC", "ETH", "SOL", "XRP", "ADA", "DOGE", "DOT", "AVAX", "LINK",
			},
			Companies: []string{
				"Apple", "Microsoft", "Google", "Alphabet", "Amazon", "Nvidia", "Meta",
				"Tesla", "Intel", "JPMorgan", "Goldman Sachs", "Bank of America",
				"Wells Fargo", "Exxon", "Chevron", "Boeing", "Disney", "Netflix",
				"Palantir", "Coinbase", "Binance", "BlackRock", "Berkshire Hathaway",
			},
			People: []string{
				"Jerome Powell", "Janet Yellen", "Elon Musk", "Warren Buffett",
				"Jamie Dimon", "Cathie Wood", "Christine Lagarde", "Gary Gensler",
				"Jensen Huang", "Tim Cook", "Satya Nadella", "Larry Fink",
			},
			Locations: []string{
				"Wall Street", "New York", "London", "Tokyo", "Hong Kong", "Frankfurt",
				"Shanghai", "Singapore", "Washington", "Brussels", "Zurich", "Dubai",
			},
		},
		Quality: QualityConfig{
			Base:                50,
			ReputableBonus:      20,
			ClickbaitPenalty:    30,
			LongContentBonus:    15,
			LongContentMinChars: 500,
			UpvoteThreshold:     100,
			UpvoteLogMultiplier: 5,
			UpvoteBonusCap:      20,
			RecencyHourBonus:    15,
			RecencySixHourBonus: 10,
			RecencyDayBonus:     5,
			ReputableSources: []string{
				"reuters", "bloomberg", "financial times", "wall street journal",
				"wsj", "cnbc", "marketwatch", "the economist", "associated press",
				"ap news", "barron's", "forbes", "coindesk",
			},
			ClickbaitPhrases: []string{
				"you won't believe", "shocking", "this one trick", "what happens next",
				"goes viral", "will blow your mind", "number one reason", "top 10",
				"must see", "insane", "unbelievable", "secret that",
			},
		},
		Dedup: DedupConfig{
			SimilarityThreshold: 0.8,
			SignatureLength:     150,
		},
		Cluster: ClusterConfig{
			SimilarityThreshold: 0.6,
			TickerWeight:        0.3,
			CompanyWeight:       0.3,
			TitleWeight:         0.4,
			MaxSimilarItems:     3,
		},
		Rank: RankConfig{
			PhraseBonus:      50,
			TitleWordBonus:   10,
			ContentWordBonus: 5,
			TickerBonus:      20,
			CompanyBonus:     15,

			RelevanceWeight: 0.35,
			QualityWeight:   0.30,
			SentimentWeight: 0.15,
			RecencyWeight:   0.20,
		},
		Glossary: map[string]string{
			"bull market":   "mercado alcista",
			"bear market":   "mercado bajista",
			"interest rate": "tasa de interés",
			"stock":         "acción",
			"share":         "participación",
			"earnings":      "ganancias",
			"inflation":     "inflación",
			"recession":     "recesión",
			"rally":         "repunte",
			"selloff":       "ola de ventas",
		},
	}
}
