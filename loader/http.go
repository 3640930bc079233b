package loader

import (
	"bytes"
	"context"
	"net/http"

	"github.com/advdv/labhttp/catalog"
	"github.com/carlmjohnson/requests"
)

type httpSource struct {
	url      string
	format   Format
	jsonPath string
	client   *http.Client
}

func (s *httpSource) String() string { return s.url }

func (s *httpSource) Load(ctx context.Context) ([]*catalog.Equipment, error) {
	var buf bytes.Buffer

	req := requests.URL(s.url).ToBytesBuffer(&buf)
	if s.client != nil {
		req = req.Client(s.client)
	}

	if err := req.Fetch(ctx); err != nil {
		return nil, &LoadError{Source: s.url, Message: "fetch document", Cause: err}
	}

	return Decode(s.url, buf.Bytes(), s.format, s.jsonPath)
}
