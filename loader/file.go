package loader

import (
	"context"
	"os"

	"github.com/advdv/labhttp/catalog"
)

type fileSource struct {
	path     string
	jsonPath string
}

func (s *fileSource) String() string { return "file://" + s.path }

func (s *fileSource) Load(context.Context) ([]*catalog.Equipment, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, &LoadError{Source: s.String(), Message: "read document", Cause: err}
	}

	return Decode(s.String(), data, FormatOf(s.path), s.jsonPath)
}
