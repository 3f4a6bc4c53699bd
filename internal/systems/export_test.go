package systems

import (
	"context"
	"io"
	"log/slog"

	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/pkg/repository"
)

// ClassifySaved runs the classify step Create and Update perform inside their
// transaction, against tx.
func ClassifySaved(ctx context.Context, c *risk.Classifier, tx repository.Executor, s *AISystem) error {
	r := &repo{
		classifier: c,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	return r.classify(ctx, tx, s)
}
