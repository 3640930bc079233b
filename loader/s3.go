package loader

import (
	"context"
	"io"

	"github.com/advdv/labhttp/catalog"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// ObjectGetter is the part of the S3 client the s3 source uses.
type ObjectGetter interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type s3Source struct {
	bucket   string
	key      string
	jsonPath string
	cfg      func(context.Context) (aws.Config, error)
	client   ObjectGetter
}

// NewS3Source reads the catalog document stored under key in bucket.
func NewS3Source(client ObjectGetter, bucket, key, jsonPath string) Source {
	if jsonPath == "" {
		jsonPath = DefaultJSONPath
	}

	return &s3Source{bucket: bucket, key: key, jsonPath: jsonPath, client: client}
}

func (s *s3Source) String() string { return "s3://" + s.bucket + "/" + s.key }

func (s *s3Source) Load(ctx context.Context) ([]*catalog.Equipment, error) {
	client := s.client
	if client == nil {
		cfg, err := awsConfig(ctx, s.String(), s.cfg)
		if err != nil {
			return nil, err
		}

		client = s3.NewFromConfig(cfg)
	}

	out, err := client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key),
	})
	if err != nil {
		return nil, &LoadError{Source: s.String(), Message: "get object", Cause: err}
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, &LoadError{Source: s.String(), Message: "read object", Cause: err}
	}

	return Decode(s.String(), data, FormatOf(s.key), s.jsonPath)
}
