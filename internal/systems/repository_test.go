package systems_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/JaimeStill/aicomply/internal/risk"
	"github.com/JaimeStill/aicomply/internal/systems"
)

type rowsAffected int64

func (n rowsAffected) LastInsertId() (int64, error) { return 0, nil }
func (n rowsAffected) RowsAffected() (int64, error) { return int64(n), nil }

type recordingExec struct {
	affected int64
	args     []any
}

func (e *recordingExec) ExecContext(_ context.Context, _ string, args ...any) (sql.Result, error) {
	e.args = args
	return rowsAffected(e.affected), nil
}

func savedSystem() *systems.AISystem {
	return &systems.AISystem{
		ID:                      uuid.New(),
		Name:                    "Mood Gate",
		DataCategories:          []string{"personal"},
		AffectedUsers:           []string{"employees"},
		Domains:                 []string{"employment"},
		BiometricIdentification: true,
		EmotionInference:        true,
		RiskCategory:            risk.CategoryUnknown,
		RiskReasoning:           []string{},
		RiskActions:             []string{},
	}
}

func TestClassifySavedWritesVerdict(t *testing.T) {
	c := risk.New()
	s := savedSystem()
	want := c.Classify(s.Input())
	tx := &recordingExec{affected: 1}

	if err := systems.ClassifySaved(context.Background(), c, tx, s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want.Category != risk.CategoryProhibited {
		t.Fatalf("fixture category: got %s, want prohibited", want.Category)
	}
	if len(tx.args) != 5 {
		t.Fatalf("exec args: got %d, want 5", len(tx.args))
	}
	if tx.args[0] != s.ID {
		t.Errorf("id arg: got %v, want %v", tx.args[0], s.ID)
	}
	if tx.args[1] != string(want.Category) || tx.args[2] != string(want.Confidence) {
		t.Errorf("category/confidence args: got %v/%v, want %s/%s",
			tx.args[1], tx.args[2], want.Category, want.Confidence)
	}

	if s.RiskCategory != want.Category {
		t.Errorf("RiskCategory: got %s, want %s", s.RiskCategory, want.Category)
	}
	if s.RiskConfidence != want.Confidence {
		t.Errorf("RiskConfidence: got %s, want %s", s.RiskConfidence, want.Confidence)
	}
	if len(s.RiskReasoning) != len(want.Reasoning) || len(s.RiskActions) != len(want.Actions) {
		t.Errorf("reasoning/actions not applied: %v / %v", s.RiskReasoning, s.RiskActions)
	}
}

func TestClassifySavedMissingRow(t *testing.T) {
	s := savedSystem()

	err := systems.ClassifySaved(context.Background(), risk.New(), &recordingExec{}, s)
	if !errors.Is(err, systems.ErrNotFound) {
		t.Fatalf("error: got %v, want ErrNotFound", err)
	}
	if s.RiskCategory != risk.CategoryUnknown {
		t.Errorf("RiskCategory changed on failure: %s", s.RiskCategory)
	}
}
