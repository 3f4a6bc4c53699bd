package systems

import (
	"context"

	"github.com/google/uuid"

	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/pkg/pagination"
	"github.com/JaimeStill/aicomply/pkg/repository"
)

// System defines the public contract for AI system registry operations.
type System interface {
	Handler(maxBodySize int64) *Handler

	List(
		ctx context.Context,
		page pagination.PageRequest,
		filters Filters,
	) (*pagination.PageResult[AISystem], error)

	Find(ctx context.Context, id uuid.UUID) (*AISystem, error)
	Create(ctx context.Context, cmd Command) (*AISystem, error)
	Update(ctx context.Context, id uuid.UUID, cmd Command) (*AISystem, error)
	Delete(ctx context.Context, id uuid.UUID) error

	// IDs returns the id of every registered system, oldest first.
	IDs(ctx context.Context) ([]uuid.UUID, error)
	// CountByCategory returns the number of systems per stored risk category.
	CountByCategory(ctx context.Context) (map[risk.Category]int, error)
	// ApplyResult writes a classification outcome onto the system using the
	// caller's transaction.
	ApplyResult(ctx context.Context, tx repository.Executor, id uuid.UUID, result risk.Result) error
}
