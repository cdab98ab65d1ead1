package localdisk

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/williamscesar21/RikoApi/config"
	"github.com/williamscesar21/RikoApi/pkg/apperror"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Store implements ports.FileStore on the local filesystem. Uploaded bytes
// land under a single directory and are served under BaseURL by the HTTP
// layer's static route.
type Store struct {
	dir     string
	baseURL string
	log     zerolog.Logger
}

// New creates a Store and ensures the upload directory exists.
func New(cfg config.UploadsConfig, log zerolog.Logger) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir:     cfg.Dir,
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		log:     log,
	}, nil
}

// Store writes data under a collision-free name and returns its public URL.
// The original name contributes only its sanitized base; the extension is
// taken from the declared content type when the name has none.
func (s *Store) Store(ctx context.Context, name string, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperror.Validation("file is empty")
	}

	ext := filepath.Ext(name)
	if ext == "" {
		if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
			ext = exts[0]
		}
	}

	filename := uuid.New().String() + ext
	path := filepath.Join(s.dir, filename)

	if err := os.WriteFile(path, data, 0o644); err != nil {
		s.log.Error().Err(err).Str("path", path).Msg("File write failed")
		return "", apperror.ErrStorageFailure(err)
	}

	s.log.Debug().
		Str("file", filename).
		Int("bytes", len(data)).
		Msg("File stored")

	return s.baseURL + "/" + filename, nil
}
