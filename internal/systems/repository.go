package systems

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/pkg/pagination"
	"github.com/JaimeStill/aicomply/pkg/query"
	"github.com/JaimeStill/aicomply/pkg/repository"
)

type repo struct {
	db         *sql.DB
	classifier *risk.Classifier
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a system repository implementing the System interface.
// Create and Update classify the saved system with classifier and store the
// verdict in the same transaction.
func New(db *sql.DB, classifier *risk.Classifier, logger *slog.Logger, pagination pagination.Config) System {
	return &repo{
		db:         db,
		classifier: classifier,
		logger:     logger.With("system", "systems"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxBodySize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxBodySize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[AISystem], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "name", "description", "owner")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count systems: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanSystem)
	if err != nil {
		return nil, fmt.Errorf("query systems: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*AISystem, error) {
	q, args := query.NewBuilder(projection).BuildSingle("id", id)

	s, err := repository.QueryOne(ctx, r.db, q, args, scanSystem)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return &s, nil
}

func (r *repo) Create(ctx context.Context, cmd Command) (*AISystem, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		INSERT INTO ai_systems AS s (
			id, name, description, owner, department, vendor, model, provider,
			deployment_type, data_categories, affected_users, use_cases, domains,
			human_oversight, human_oversight_description, transparency_provided,
			biometric_identification, emotion_inference, status
		)
		VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10::jsonb, $11::jsonb, $12::jsonb, $13::jsonb,
			$14, $15, $16, $17, $18, $19
		)
		RETURNING ` + projection.Columns()

	args := append([]any{uuid.New()}, commandArgs(cmd)...)

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AISystem, error) {
		s, err := repository.QueryOne(ctx, tx, q, args, scanSystem)
		if err != nil {
			return s, err
		}
		return s, r.classify(ctx, tx, &s)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("system created", "id", s.ID, "name", s.Name, "category", s.RiskCategory)
	return &s, nil
}

func (r *repo) Update(ctx context.Context, id uuid.UUID, cmd Command) (*AISystem, error) {
	cmd.Normalize()
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	q := `
		UPDATE ai_systems s SET
			name = $2, description = $3, owner = $4, department = $5, vendor = $6,
			model = $7, provider = $8, deployment_type = $9,
			data_categories = $10::jsonb, affected_users = $11::jsonb,
			use_cases = $12::jsonb, domains = $13::jsonb,
			human_oversight = $14, human_oversight_description = $15,
			transparency_provided = $16, biometric_identification = $17,
			emotion_inference = $18, status = $19, updated_at = NOW()
		WHERE s.id = $1
		RETURNING ` + projection.Columns()

	args := append([]any{id}, commandArgs(cmd)...)

	s, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (AISystem, error) {
		s, err := repository.QueryOne(ctx, tx, q, args, scanSystem)
		if err != nil {
			return s, err
		}
		return s, r.classify(ctx, tx, &s)
	})
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("system updated", "id", s.ID, "category", s.RiskCategory)
	return &s, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(ctx, tx, "DELETE FROM ai_systems WHERE id = $1", id)
	})
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("system deleted", "id", id)
	return nil
}

func (r *repo) IDs(ctx context.Context) ([]uuid.UUID, error) {
	ids, err := repository.QueryMany(ctx, r.db,
		"SELECT id FROM ai_systems ORDER BY created_at, id", nil,
		func(s repository.Scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := s.Scan(&id)
			return id, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("query system ids: %w", err)
	}
	return ids, nil
}

func (r *repo) CountByCategory(ctx context.Context) (map[risk.Category]int, error) {
	type row struct {
		category risk.Category
		count    int
	}

	rows, err := repository.QueryMany(ctx, r.db,
		"SELECT risk_category, COUNT(*) FROM ai_systems GROUP BY risk_category", nil,
		func(s repository.Scanner) (row, error) {
			var rw row
			err := s.Scan(&rw.category, &rw.count)
			return rw, err
		},
	)
	if err != nil {
		return nil, fmt.Errorf("count systems by category: %w", err)
	}

	counts := make(map[risk.Category]int, len(rows))
	for _, rw := range rows {
		counts[rw.category] += rw.count
	}
	return counts, nil
}

func (r *repo) ApplyResult(ctx context.Context, tx repository.Executor, id uuid.UUID, result risk.Result) error {
	err := repository.ExecExpectOne(ctx, tx, `
		UPDATE ai_systems SET
			risk_category = $2, risk_confidence = $3,
			risk_reasoning = $4::jsonb, risk_actions = $5::jsonb,
			updated_at = NOW()
		WHERE id = $1`,
		id,
		string(result.Category),
		string(result.Confidence),
		marshalTags(result.Reasoning),
		marshalTags(result.Actions),
	)
	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}
	return nil
}

func (r *repo) classify(ctx context.Context, tx repository.Executor, s *AISystem) error {
	result := r.classifier.Classify(s.Input())
	if err := r.ApplyResult(ctx, tx, s.ID, result); err != nil {
		return err
	}
	s.Apply(result)
	return nil
}

func commandArgs(cmd Command) []any {
	return []any{
		cmd.Name,
		cmd.Description,
		cmd.Owner,
		cmd.Department,
		cmd.Vendor,
		cmd.Model,
		cmd.Provider,
		cmd.DeploymentType,
		marshalTags(cmd.DataCategories),
		marshalTags(cmd.AffectedUsers),
		marshalTags(cmd.UseCases),
		marshalTags(cmd.Domains),
		cmd.HumanOversight,
		cmd.HumanOversightDescription,
		cmd.TransparencyProvided,
		cmd.BiometricIdentification,
		cmd.EmotionInference,
		cmd.Status,
	}
}
