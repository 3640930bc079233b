package labapp

import (
	"fmt"
	"time"

	intervals "github.com/MawKKe/integer-interval-expressions-go"
	"github.com/caarlos0/env/v11"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap/zapcore"
)

// DefaultWarnStatusCodes is the recommended value of LABHTTP_WARN_STATUS_CODES.
const DefaultWarnStatusCodes = "404,405,500-599"

// DefaultRequiredWarnStatusCodes must always be logged at warn level.
var DefaultRequiredWarnStatusCodes = []int{500}

// Env holds the configuration read from the environment.
type Env struct {
	Addr            string        `env:"LABHTTP_ADDR" envDefault:":8080"`
	Workers         int           `env:"LABHTTP_WORKERS" envDefault:"10"`
	ReadTimeout     time.Duration `env:"LABHTTP_READ_TIMEOUT" envDefault:"30s"`
	WriteTimeout    time.Duration `env:"LABHTTP_WRITE_TIMEOUT" envDefault:"30s"`
	ServiceName     string        `env:"LABHTTP_SERVICE_NAME" envDefault:"labhttp"`
	LogLevel        zapcore.Level `env:"LABHTTP_LOG_LEVEL" envDefault:"info"`
	OtelExporter    string        `env:"LABHTTP_OTEL_EXPORTER" envDefault:"none"`
	CatalogSource   string        `env:"LABHTTP_CATALOG_SOURCE" envDefault:"builtin:"`
	CatalogJSONPath string        `env:"LABHTTP_CATALOG_JSON_PATH" envDefault:"equipment"`
	// WarnStatusCodes is an interval expression such as "404,500-599". Requests answered with a
	// matching status are logged at warn instead of debug.
	WarnStatusCodes string `env:"LABHTTP_WARN_STATUS_CODES" envDefault:"404,405,500-599"`
}

// ParseEnv parses and validates the environment.
func ParseEnv() (e Env, err error) {
	if err := env.Parse(&e); err != nil {
		return e, errors.Wrap(err, "failed to parse environment")
	}

	if e.Workers < 1 {
		return e, errors.Newf("LABHTTP_WORKERS must be at least 1, got %d", e.Workers)
	}

	if err := ValidateWarnStatusCodes(e.WarnStatusCodes, DefaultRequiredWarnStatusCodes...); err != nil {
		return e, err
	}

	return e, nil
}

// ValidateWarnStatusCodes checks that expr parses and covers every required status code.
func ValidateWarnStatusCodes(expr string, required ...int) error {
	parsed, err := intervals.ParseExpression(expr)
	if err != nil {
		return errors.Wrapf(err, "failed to parse LABHTTP_WARN_STATUS_CODES %q", expr)
	}

	var missing []int
	for _, code := range required {
		if !parsed.Matches(code) {
			missing = append(missing, code)
		}
	}

	if len(missing) > 0 {
		return errors.Newf("LABHTTP_WARN_STATUS_CODES %q does not cover required codes, missing: %s; recommended value: %q",
			expr, fmt.Sprint(missing), DefaultWarnStatusCodes)
	}

	return nil
}
