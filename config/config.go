package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const configPathEnv = "TRADEWIRE_CONFIG"

// Config holds high-level settings required across the application.
// Heuristic tables can be overridden from a YAML file pointed to by
// TRADEWIRE_CONFIG; connection settings come from the environment.
type Config struct {
	// Addr is the HTTP listen address, e.g. ":8080".
	Addr string

	// FetchTimeout bounds the whole adapter fan-out for one aggregate call.
	FetchTimeout time.Duration
	// AdapterTimeout bounds each individual source fetch.
	AdapterTimeout time.Duration
	// CacheTTL is how long a query's ranked result stays cached.
	CacheTTL time.Duration

	Redis RedisConfig
	Kafka KafkaConfig
	S3    S3Config

	Heuristics Heuristics
}

// RedisConfig describes the optional Redis connection used for the
// cross-run signature store and the query result cache.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether Redis was configured at all.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

// KafkaConfig describes the optional publisher of accepted items.
type KafkaConfig struct {
	Brokers []string
	Topic   string
}

// Enabled reports whether Kafka publishing was configured.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 && k.Topic != "" }

// S3Config describes the optional result archive target.
type S3Config struct {
	Bucket       string
	Region       string
	Profile      string
	Prefix       string
	UsePathStyle bool
}

// Enabled reports whether S3 archiving was configured.
func (s S3Config) Enabled() bool { return s.Bucket != "" }

// Load reads environment variables and the optional YAML heuristics file.
// Missing or unparsable files fall back to defaults with a logged warning.
func Load() Config {
	cfg := Config{
		Addr:           ":" + GetEnvOrDefault("PORT", "8080"),
		FetchTimeout:   envDuration("FETCH_TIMEOUT_SECONDS", 15*time.Second),
		AdapterTimeout: envDuration("ADAPTER_TIMEOUT_SECONDS", 10*time.Second),
		CacheTTL:       envDuration("CACHE_TTL_SECONDS", 5*time.Minute),
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASS"),
			DB:       envInt("REDIS_DB", 0),
		},
		Kafka: KafkaConfig{
			Brokers: splitNonEmpty(os.Getenv("KAFKA_BROKERS")),
			Topic:   os.Getenv("KAFKA_TOPIC"),
		},
		S3: S3Config{
			Bucket:       os.Getenv("S3_BUCKET"),
			Region:       os.Getenv("S3_REGION"),
			Profile:      os.Getenv("S3_PROFILE"),
			Prefix:       os.Getenv("S3_PREFIX"),
			UsePathStyle: os.Getenv("S3_USE_PATH_STYLE") == "true",
		},
		Heuristics: DefaultHeuristics(),
	}

	if path := os.Getenv(configPathEnv); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			log.Printf("config: cannot read %s: %v (using default heuristics)", path, err)
			return cfg
		}
		var fileHeuristics Heuristics
		if err := yaml.Unmarshal(raw, &fileHeuristics); err != nil {
			log.Printf("config: cannot parse %s: %v (using default heuristics)", path, err)
			return cfg
		}
		cfg.Heuristics = mergeHeuristics(cfg.Heuristics, fileHeuristics)
	}

	return cfg
}

// GetEnvOrDefault returns the environment variable value or a fallback.
func GetEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return fallback
}

func splitNonEmpty(csv string) []string {
	var out []string
	start := 0
	for i := 0; i <= len(csv); i++ {
		if i == len(csv) || csv[i] == ',' {
			if i > start {
				out = append(out, csv[start:i])
			}
			start = i + 1
		}
	}
	return out
}

// mergeHeuristics overlays non-zero fields of override onto base. Lists and
// maps replace wholesale when provided; scalar zero values keep defaults.
func mergeHeuristics(base, override Heuristics) Heuristics {
	if len(override.Sentiment.BullishWords) > 0 {
		base.Sentiment.BullishWords = override.Sentiment.BullishWords
	}
	if len(override.Sentiment.BearishWords) > 0 {
		base.Sentiment.BearishWords = override.Sentiment.BearishWords
	}
	if override.Sentiment.Margin != 0 {
		base.Sentiment.Margin = override.Sentiment.Margin
	}

	if len(override.Entities.Tickers) > 0 {
		base.Entities.Tickers = override.Entities.Tickers
	}
	if len(override.Entities.Companies) > 0 {
		base.Entities.Companies = override.Entities.Companies
	}
	if len(override.Entities.People) > 0 {
		base.Entities.People = override.Entities.People
	}
	if len(override.Entities.Locations) > 0 {
		base.Entities.Locations = override.Entities.Locations
	}

	if override.Quality.Base != 0 {
		base.Quality.Base = override.Quality.Base
	}
	if override.Quality.ReputableBonus != 0 {
		base.Quality.ReputableBonus = override.Quality.ReputableBonus
	}
	if override.Quality.ClickbaitPenalty != 0 {
		base.Quality.ClickbaitPenalty = override.Quality.ClickbaitPenalty
	}
	if override.Quality.LongContentBonus != 0 {
		base.Quality.LongContentBonus = override.Quality.LongContentBonus
	}
	if override.Quality.LongContentMinChars != 0 {
		base.Quality.LongContentMinChars = override.Quality.LongContentMinChars
	}
	if override.Quality.UpvoteThreshold != 0 {
		base.Quality.UpvoteThreshold = override.Quality.UpvoteThreshold
	}
	if override.Quality.UpvoteLogMultiplier != 0 {
		base.Quality.UpvoteLogMultiplier = override.Quality.UpvoteLogMultiplier
	}
	if override.Quality.UpvoteBonusCap != 0 {
		base.Quality.UpvoteBonusCap = override.Quality.UpvoteBonusCap
	}
	if override.Quality.RecencyHourBonus != 0 {
		base.Quality.RecencyHourBonus = override.Quality.RecencyHourBonus
	}
	if override.Quality.RecencySixHourBonus != 0 {
		base.Quality.RecencySixHourBonus = override.Quality.RecencySixHourBonus
	}
	if override.Quality.RecencyDayBonus != 0 {
		base.Quality.RecencyDayBonus = override.Quality.RecencyDayBonus
	}
	if len(override.Quality.ReputableSources) > 0 {
		base.Quality.ReputableSources = override.Quality.ReputableSources
	}
	if len(override.Quality.ClickbaitPhrases) > 0 {
		base.Quality.ClickbaitPhrases = override.Quality.ClickbaitPhrases
	}

	if override.Dedup.SimilarityThreshold != 0 {
		base.Dedup.SimilarityThreshold = override.Dedup.SimilarityThreshold
	}
	if override.Dedup.SignatureLength != 0 {
		base.Dedup.SignatureLength = override.Dedup.SignatureLength
	}

	if override.Cluster.SimilarityThreshold != 0 {
		base.Cluster.SimilarityThreshold = override.Cluster.SimilarityThreshold
	}
	if override.Cluster.TickerWeight != 0 {
		base.Cluster.TickerWeight = override.Cluster.TickerWeight
	}
	if override.Cluster.CompanyWeight != 0 {
		base.Cluster.CompanyWeight = override.Cluster.CompanyWeight
	}
	if override.Cluster.TitleWeight != 0 {
		base.Cluster.TitleWeight = override.Cluster.TitleWeight
	}
	if override.Cluster.MaxSimilarItems != 0 {
		base.Cluster.MaxSimilarItems = override.Cluster.MaxSimilarItems
	}

	if override.Rank.PhraseBonus != 0 {
		base.Rank.PhraseBonus = override.Rank.PhraseBonus
	}
	if override.Rank.TitleWordBonus != 0 {
		base.Rank.TitleWordBonus = override.Rank.TitleWordBonus
	}
	if override.Rank.ContentWordBonus != 0 {
		base.Rank.ContentWordBonus = override.Rank.ContentWordBonus
	}
	if override.Rank.TickerBonus != 0 {
		base.Rank.TickerBonus = override.Rank.TickerBonus
	}
	if override.Rank.CompanyBonus != 0 {
		base.Rank.CompanyBonus = override.Rank.CompanyBonus
	}
	if override.Rank.RelevanceWeight != 0 {
		base.Rank.RelevanceWeight = override.Rank.RelevanceWeight
	}
	if override.Rank.QualityWeight != 0 {
		base.Rank.QualityWeight = override.Rank.QualityWeight
	}
	if override.Rank.SentimentWeight != 0 {
		base.Rank.SentimentWeight = override.Rank.SentimentWeight
	}
	if override.Rank.RecencyWeight != 0 {
		base.Rank.RecencyWeight = override.Rank.RecencyWeight
	}

	if len(override.Glossary) > 0 {
		base.Glossary = override.Glossary
	}

	return base
}
