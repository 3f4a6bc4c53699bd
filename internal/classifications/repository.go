package classifications

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/internal/systems"
	"github.com/JaimeStill/aicomply/pkg/pagination"
	"github.com/JaimeStill/aicomply/pkg/query"
	"github.com/JaimeStill/aicomply/pkg/repository"
	"github.com/JaimeStill/aicomply/pkg/storage"
)

type repo struct {
	db          *sql.DB
	storage     storage.System
	systems     systems.System
	classifier  *risk.Classifier
	concurrency int
	logger      *slog.Logger
	pagination  pagination.Config
}

// New creates a classification repository implementing the System interface.
// concurrency bounds the number of systems ReclassifyAll classifies at once.
func New(
	db *sql.DB,
	store storage.System,
	sys systems.System,
	classifier *risk.Classifier,
	concurrency int,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:          db,
		storage:     store,
		systems:     sys,
		classifier:  classifier,
		concurrency: max(concurrency, 1),
		logger:      logger.With("system", "classifications"),
		pagination:  pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Classification], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "override_reason", "validated_by")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count classifications: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanClassification)
	if err != nil {
		return nil, fmt.Errorf("query classifications: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Classification, error) {
	return r.findBy(ctx, "id", id)
}

func (r *repo) FindBySystem(ctx context.Context, systemID uuid.UUID) (*Classification, error) {
	return r.findBy(ctx, "system_id", systemID)
}

func (r *repo) findBy(ctx context.Context, field string, id uuid.UUID) (*Classification, error) {
	q, args := query.NewBuilder(projection).BuildSingle(field, id)

	c, err := repository.QueryOne(ctx, r.db, q, args, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &c, nil
}

func (r *repo) Classify(ctx context.Context, systemID uuid.UUID) (*Classification, error) {
	sys, err := r.systems.Find(ctx, systemID)
	if err != nil {
		return nil, err
	}

	snap := Snapshot{
		SystemID:     systemID,
		Input:        sys.Input(),
		ClassifiedAt: time.Now().UTC(),
	}
	snap.Result = r.classifier.Classify(snap.Input)

	data, err := json.Marshal(snap)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}

	key := snapshotKey(systemID, snap.ClassifiedAt)
	if err := r.storage.Upload(ctx, key, bytes.NewReader(data), "application/json"); err != nil {
		return nil, fmt.Errorf("upload snapshot: %w", err)
	}

	upsertQ := `
		INSERT INTO classifications AS c (
			system_id, category, confidence, reasoning, actions,
			completeness_score, missing_fields, snapshot_key, classified_at
		)
		VALUES ($1, $2, $3, $4::jsonb, $5::jsonb, $6, $7::jsonb, $8, $9)
		ON CONFLICT (system_id) DO UPDATE SET
			category = EXCLUDED.category,
			confidence = EXCLUDED.confidence,
			reasoning = EXCLUDED.reasoning,
			actions = EXCLUDED.actions,
			completeness_score = EXCLUDED.completeness_score,
			missing_fields = EXCLUDED.missing_fields,
			snapshot_key = EXCLUDED.snapshot_key,
			classified_at = EXCLUDED.classified_at,
			override_reason = NULL,
			validated_by = NULL,
			validated_at = NULL
		RETURNING ` + projection.Columns()

	res := snap.Result
	upsertArgs := []any{
		systemID,
		string(res.Category),
		string(res.Confidence),
		marshalList(res.Reasoning),
		marshalList(res.Actions),
		res.CompletenessScore,
		marshalList(res.MissingFields),
		key,
		snap.ClassifiedAt,
	}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Classification, error) {
		cl, err := repository.QueryOne(ctx, tx, upsertQ, upsertArgs, scanClassification)
		if err != nil {
			return Classification{}, fmt.Errorf("upsert classification: %w", err)
		}
		if err := r.systems.ApplyResult(ctx, tx, systemID, res); err != nil {
			return Classification{}, fmt.Errorf("apply result: %w", err)
		}
		return cl, nil
	})

	if err != nil {
		if delErr := r.storage.Delete(context.WithoutCancel(ctx), key); delErr != nil {
			r.logger.Warn("compensating snapshot delete failed", "key", key, "error", delErr)
		}
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("system classified",
		"id", c.ID,
		"system_id", systemID,
		"category", c.Category,
		"confidence", c.Confidence,
	)
	return &c, nil
}

func (r *repo) ReclassifyAll(ctx context.Context) (int, error) {
	ids, err := r.systems.IDs(ctx)
	if err != nil {
		return 0, err
	}

	n, err := reclassify(ctx, ids, r.concurrency, func(ctx context.Context, id uuid.UUID) error {
		_, err := r.Classify(ctx, id)
		return err
	})

	r.logger.Info("reclassification finished", "systems", len(ids), "reclassified", n, "error", err)
	return n, err
}

// reclassify runs fn over ids with at most limit calls in flight. The first
// failure cancels the context handed to the remaining calls.
func reclassify(
	ctx context.Context,
	ids []uuid.UUID,
	limit int,
	fn func(context.Context, uuid.UUID) error,
) (int, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(limit, 1))

	var done atomic.Int64
	for _, id := range ids {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if err := fn(gctx, id); err != nil {
				return fmt.Errorf("reclassify %s: %w", id, err)
			}
			done.Add(1)
			return nil
		})
	}

	err := g.Wait()
	return int(done.Load()), err
}

func (r *repo) Summary(ctx context.Context) (*Summary, error) {
	counts, err := r.systems.CountByCategory(ctx)
	if err != nil {
		return nil, err
	}
	return summarize(counts), nil
}

func summarize(counts map[risk.Category]int) *Summary {
	s := &Summary{Counts: make(map[risk.Category]int, len(risk.Categories))}
	for _, c := range risk.Categories {
		s.Counts[c] = counts[c]
	}
	for _, n := range counts {
		s.Total += n
	}
	return s
}

func (r *repo) Validate(ctx context.Context, id uuid.UUID, cmd ValidateCommand) (*Classification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE classifications c
		SET validated_by = $2, validated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + projection.Columns()

	c, err := repository.QueryOne(ctx, r.db, q, []any{id, cmd.ValidatedBy}, scanClassification)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification validated", "id", c.ID, "validated_by", cmd.ValidatedBy)
	return &c, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd UpdateCommand) (*Classification, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE classifications c
		SET category = $2, confidence = $3, override_reason = NULLIF($4, ''),
			validated_by = $5, validated_at = NOW()
		WHERE c.id = $1
		RETURNING ` + projection.Columns()

	args := []any{id, cmd.Category, cmd.Confidence, cmd.Reason, cmd.UpdatedBy}

	c, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Classification, error) {
		cl, err := repository.QueryOne(ctx, tx, q, args, scanClassification)
		if err != nil {
			return Classification{}, err
		}

		err = r.systems.ApplyResult(ctx, tx, cl.SystemID, risk.Result{
			Category:   cl.Category,
			Confidence: cl.Confidence,
			Reasoning:  cl.Reasoning,
			Actions:    cl.Actions,
		})
		return cl, err
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification overridden",
		"id", c.ID,
		"category", c.Category,
		"updated_by", cmd.UpdatedBy,
	)
	return &c, nil
}

// Delete removes the classification and returns its system to unknown.
// Archived snapshots are kept.
func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		var systemID uuid.UUID
		err := tx.QueryRowContext(ctx,
			"DELETE FROM classifications WHERE id = $1 RETURNING system_id", id,
		).Scan(&systemID)
		if err != nil {
			return struct{}{}, err
		}

		return struct{}{}, r.systems.ApplyResult(ctx, tx, systemID, risk.Result{
			Category: risk.CategoryUnknown,
		})
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("classification deleted", "id", id)
	return nil
}

func (r *repo) Snapshot(ctx context.Context, id uuid.UUID) (*storage.BlobContent, error) {
	c, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.storage.Download(ctx, c.SnapshotKey)
}
