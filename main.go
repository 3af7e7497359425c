package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"tradewire/api"
	"tradewire/archive"
	"tradewire/config"
	"tradewire/dedup"
	"tradewire/kafka"
	"tradewire/pipeline"
	"tradewire/sources"
	"tradewire/translate"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfg := config.Load()

	opts := pipeline.Options{
		Adapters:     buildAdapters(cfg),
		Heuristics:   cfg.Heuristics,
		FetchTimeout: cfg.FetchTimeout,
	}

	components := api.Components{}

	if cfg.Redis.Enabled() {
		store, err := dedup.NewRedisStore(dedup.RedisStoreConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Printf("Warning: redis signature store unavailable: %v", err)
		} else {
			defer store.Close()
			opts.Signatures = store
			components.Redis = true
		}

		cache, err := pipeline.NewRedisCache(pipeline.RedisCacheConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.CacheTTL,
		})
		if err != nil {
			log.Printf("Warning: redis result cache unavailable: %v (using in-memory cache)", err)
			opts.Cache = pipeline.NewMemoryCache(cfg.CacheTTL)
		} else {
			defer cache.Close()
			opts.Cache = cache
		}
	} else {
		opts.Cache = pipeline.NewMemoryCache(cfg.CacheTTL)
	}

	if cfg.Kafka.Enabled() {
		publisher, err := kafka.NewPublisher(kafka.PublisherConfig{
			Brokers: cfg.Kafka.Brokers,
			Topic:   cfg.Kafka.Topic,
		})
		if err != nil {
			log.Printf("Warning: kafka publisher unavailable: %v", err)
		} else {
			defer publisher.Close()
			opts.Publisher = publisher
			components.Kafka = true
		}
	}

	if cfg.S3.Enabled() {
		archiver, err := archive.NewS3Archiver(context.Background(), archive.S3Config{
			Bucket:       cfg.S3.Bucket,
			Region:       cfg.S3.Region,
			Profile:      cfg.S3.Profile,
			Prefix:       cfg.S3.Prefix,
			UsePathStyle: cfg.S3.UsePathStyle,
		})
		if err != nil {
			log.Printf("Warning: s3 archiver unavailable: %v", err)
		} else {
			opts.Archiver = archiver
			components.S3 = true
		}
	}

	opts.MachineTranslator = translate.NewDefaultMachineTranslator()

	p := pipeline.New(opts)

	r := api.NewRouter(p, components)
	log.Printf("Starting API server on %s", cfg.Addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  POST /api/aggregate")
	log.Println("  POST /api/translate")

	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// buildAdapters wires every source adapter. API-key-gated sources are
// skipped with a log line when their key is absent.
func buildAdapters(cfg config.Config) []sources.Adapter {
	extractContent := os.Getenv("RSS_EXTRACT_CONTENT") == "true"

	adapters := []sources.Adapter{
		sources.NewReddit("", cfg.AdapterTimeout),
		sources.NewRSS(nil, extractContent, cfg.AdapterTimeout),
		sources.NewSocial("", os.Getenv("MASTODON_TOKEN"), cfg.AdapterTimeout),
	}

	if key := os.Getenv("NEWSAPI_KEY"); key != "" {
		adapters = append(adapters, sources.NewNewsAPI("", key, cfg.AdapterTimeout))
	} else {
		log.Println("NEWSAPI_KEY not set; news API source disabled")
	}

	if key := os.Getenv("CRYPTOPANIC_KEY"); key != "" {
		adapters = append(adapters, sources.NewCryptoPanic("", key, cfg.AdapterTimeout))
	} else {
		log.Println("CRYPTOPANIC_KEY not set; crypto source disabled")
	}

	return adapters
}
