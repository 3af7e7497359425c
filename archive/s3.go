// Package archive stores ranked result sets in S3 for later analysis.
package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"tradewire/types"
)

const uploadTimeout = 30 * time.Second

// S3Config contains minimal configuration for the result archive.
// Values fall back to the standard AWS config/credential chain.
type S3Config struct {
	Bucket string
	// Region to use for requests, e.g. "us-east-1". If empty, AWS defaults apply.
	Region string
	// Profile selects a named shared config/credentials profile.
	Profile string
	// Prefix is prepended to every object key, e.g. "tradewire/".
	Prefix string
	// UsePathStyle forces path-style addressing (S3-compatible providers).
	UsePathStyle bool
}

// S3Archiver writes one JSON object per aggregation run.
type S3Archiver struct {
	client *s3.Client
	bucket string
	prefix string
}

// NewS3Archiver creates the archiver using the default AWS configuration
// chain with optional overrides.
func NewS3Archiver(ctx context.Context, cfg S3Config) (*S3Archiver, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.UsePathStyle = cfg.UsePathStyle
	})

	prefix := strings.Trim(cfg.Prefix, "/")
	if prefix != "" {
		prefix += "/"
	}
	return &S3Archiver{client: client, bucket: cfg.Bucket, prefix: prefix}, nil
}

// Archive uploads the ranked result set under
// <prefix>results/<query-hash>/<timestamp>.json.
func (a *S3Archiver) Archive(ctx context.Context, query string, items []*types.EnrichedItem) error {
	now := time.Now().UTC()

	payload := types.AggregateResult{
		Query:     query,
		FetchedAt: now,
		ItemCount: len(items),
		Items:     items,
	}
	body, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	key := a.prefix + "results/" + types.GenerateID(query) + "/" + now.Format("20060102T150405Z") + ".json"

	uctx, cancel := context.WithTimeout(ctx, uploadTimeout)
	defer cancel()

	_, err = a.client.PutObject(uctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	return err
}
