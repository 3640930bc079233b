package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/advdv/labhttp/catalog"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/cockroachdb/errors"
)

// DefaultJSONPath is the gjson path of the record array in catalog documents.
const DefaultJSONPath = "equipment"

// Source produces the records of the catalog, in document order.
type Source interface {
	Load(ctx context.Context) ([]*catalog.Equipment, error)
	fmt.Stringer
}

// Deps are the collaborators that some sources need.
type Deps struct {
	// JSONPath locates the record array in a document. Defaults to [DefaultJSONPath].
	JSONPath string
	// AWSConfig is called lazily by the s3 and dynamodb sources.
	AWSConfig func(ctx context.Context) (aws.Config, error)
	// HTTPClient is used by the http(s) source, http.DefaultClient when nil.
	HTTPClient *http.Client
}

// LoadError describes why a source could not produce a valid catalog.
type LoadError struct {
	Source  string
	Message string
	Cause   error
}

func (e *LoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("catalog source %s: %s: %v", e.Source, e.Message, e.Cause)
	}
	return fmt.Sprintf("catalog source %s: %s", e.Source, e.Message)
}

func (e *LoadError) Unwrap() error { return e.Cause }

// Open resolves a source URI:
//
//	builtin:                 the factory catalog
//	file:///catalog.json     a JSON or YAML document on disk
//	sqlite:///catalog.db     the equipment table of a SQLite database
//	s3://bucket/key.json     a document stored in S3
//	dynamodb://table         the items of a DynamoDB table
//	https://host/path.json   a document fetched over HTTP
func Open(uri string, deps Deps) (Source, error) {
	if deps.JSONPath == "" {
		deps.JSONPath = DefaultJSONPath
	}

	if uri == "" || uri == "builtin" || uri == "builtin:" {
		return Builtin(), nil
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, &LoadError{Source: uri, Message: "invalid source uri", Cause: err}
	}

	path := u.Path
	if path == "" {
		path = u.Opaque
	}

	switch u.Scheme {
	case "file":
		if path == "" {
			return nil, &LoadError{Source: uri, Message: "missing file path"}
		}
		return &fileSource{path: path, jsonPath: deps.JSONPath}, nil
	case "sqlite":
		if path == "" {
			return nil, &LoadError{Source: uri, Message: "missing database path"}
		}
		return &sqliteSource{path: path}, nil
	case "s3":
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, &LoadError{Source: uri, Message: "expected s3://bucket/key"}
		}
		return &s3Source{bucket: u.Host, key: key, jsonPath: deps.JSONPath, cfg: deps.AWSConfig}, nil
	case "dynamodb":
		if u.Host == "" {
			return nil, &LoadError{Source: uri, Message: "expected dynamodb://table"}
		}
		return &dynamoSource{table: u.Host, cfg: deps.AWSConfig}, nil
	case "http", "https":
		return &httpSource{url: uri, format: FormatOf(u.Path), jsonPath: deps.JSONPath, client: deps.HTTPClient}, nil
	default:
		return nil, &LoadError{Source: uri, Message: fmt.Sprintf("unsupported scheme %q", u.Scheme)}
	}
}

// Populate loads src and inserts the records into reg in document order. It returns the
// number of records added and the ids that were skipped because they were already present.
func Populate(ctx context.Context, src Source, reg *catalog.Registry) (int, []string, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return 0, nil, errors.Wrapf(err, "load %s", src)
	}

	var (
		added   int
		skipped []string
	)

	for _, e := range items {
		if reg.Insert(e) {
			added++
			continue
		}

		skipped = append(skipped, e.ID)
	}

	return added, skipped, nil
}

func awsConfig(ctx context.Context, source string, cfg func(context.Context) (aws.Config, error)) (aws.Config, error) {
	if cfg == nil {
		return aws.Config{}, &LoadError{Source: source, Message: "no aws configuration available"}
	}

	c, err := cfg(ctx)
	if err != nil {
		return aws.Config{}, &LoadError{Source: source, Message: "load aws configuration", Cause: err}
	}

	return c, nil
}
