package classifications

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/aicomply/pkg/pagination"
	"github.com/JaimeStill/aicomply/pkg/storage"
)

// System defines the public contract for classification operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[Classification], error)

	Find(ctx context.Context, id uuid.UUID) (*Classification, error)
	FindBySystem(ctx context.Context, systemID uuid.UUID) (*Classification, error)

	// Classify runs the risk engine over a system and stores the outcome.
	Classify(ctx context.Context, systemID uuid.UUID) (*Classification, error)
	// ReclassifyAll classifies every registered system and returns how many
	// succeeded before the first failure, if any.
	ReclassifyAll(ctx context.Context) (int, error)
	Summary(ctx context.Context) (*Summary, error)

	Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*Classification, error)
	Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Classification, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// Snapshot opens the archived JSON snapshot of a classification.
	Snapshot(ctx context.Context, id uuid.UUID) (*storage.BlobContent, error)
}
