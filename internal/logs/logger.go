package logs

import (
	"io"
	"log/slog"
	"os"

	slogmulti "github.com/samber/slog-multi"

	"github.com/ian-shakespeare/tapevm/internal/config"
)

// New returns a logger writing text records to stderr and, when cfg names
// a file, JSON records to that file. The returned closer releases the file.
func New(stderr io.Writer, cfg config.Log, level *slog.LevelVar) (*slog.Logger, io.Closer, error) {
	options := &slog.HandlerOptions{
		Level: level,
	}
	handlers := []slog.Handler{
		slog.NewTextHandler(stderr, options),
	}

	closer := io.Closer(nopCloser{})
	if cfg.File != "" {
		file, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		handlers = append(handlers, slog.NewJSONHandler(file, options))
		closer = file
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error {
	return nil
}
