package labapp

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/cockroachdb/errors"
	"go.opentelemetry.io/contrib/instrumentation/github.com/aws/aws-sdk-go-v2/otelaws"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

// AWSConfigFunc loads the AWS configuration on first use.
type AWSConfigFunc func(ctx context.Context) (aws.Config, error)

// NewAWSConfigFunc returns a loader for the default AWS SDK v2 configuration, instrumented
// with OpenTelemetry. Nothing is loaded unless a catalog source needs AWS, and a failed load
// is retried on the next call.
func NewAWSConfigFunc(tp trace.TracerProvider, prop propagation.TextMapPropagator) AWSConfigFunc {
	var (
		mu     sync.Mutex
		loaded *aws.Config
	)

	return func(ctx context.Context) (aws.Config, error) {
		mu.Lock()
		defer mu.Unlock()

		if loaded != nil {
			return *loaded, nil
		}

		ctx, cancel := context.WithTimeout(ctx, awsConfigTimeout)
		defer cancel()

		cfg, err := awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return cfg, errors.Wrap(err, "failed to load aws config")
		}

		otelaws.AppendMiddlewares(&cfg.APIOptions,
			otelaws.WithTracerProvider(tp),
			otelaws.WithTextMapPropagator(prop),
		)

		loaded = &cfg
		return cfg, nil
	}
}
