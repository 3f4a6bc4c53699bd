package risk_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/JaimeStill/aicomply/internal/risk"
)

func TestComputeCompleteness(t *testing.T) {
	tests := []struct {
		name        string
		sys         risk.System
		wantScore   float64
		wantMissing []string
	}{
		{
			name:        "fully populated",
			sys:         fullSystem(nil),
			wantScore:   1,
			wantMissing: []string{},
		},
		{
			name: "name and description cleared",
			sys: fullSystem(func(s *risk.System) {
				s.Name = ""
				s.Description = ""
			}),
			wantScore:   7.0 / 9.0,
			wantMissing: []string{"Name", "Description"},
		},
		{
			name: "whitespace counts as missing",
			sys: fullSystem(func(s *risk.System) {
				s.Owner = "   "
				s.Vendor = "\t\n"
			}),
			wantScore:   7.0 / 9.0,
			wantMissing: []string{"Owner", "Vendor"},
		},
		{
			name: "empty tags",
			sys: fullSystem(func(s *risk.System) {
				s.Domains = []string{}
				s.UseCases = nil
			}),
			wantScore:   7.0 / 9.0,
			wantMissing: []string{"Use Cases", "Domains"},
		},
		{
			name:      "empty system",
			sys:       risk.System{},
			wantScore: 0,
			wantMissing: []string{
				"Name", "Description", "Owner", "Department", "Vendor",
				"Data Categories", "Affected Users", "Use Cases", "Domains",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := risk.ComputeCompleteness(tt.sys)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantMissing, got.MissingFields)
		})
	}
}

func TestComputeCompletenessFullIsExact(t *testing.T) {
	got := risk.ComputeCompleteness(fullSystem(nil))

	assert.True(t, got.Score == 1, "score must be exactly 1, got %v", got.Score)
	assert.NotNil(t, got.MissingFields)
	assert.Empty(t, got.MissingFields)
}

func TestCompletenessPercent(t *testing.T) {
	tests := []struct {
		score float64
		want  int
	}{
		{0, 0},
		{4.0 / 9.0, 44},
		{5.0 / 9.0, 56},
		{1, 100},
	}

	for _, tt := range tests {
		r := risk.Result{CompletenessScore: tt.score}
		assert.Equal(t, tt.want, r.CompletenessPercent())
	}
}

func TestCompletenessBadgeClass(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{1, "badge-green"},
		{0.8, "badge-green"},
		{7.0 / 9.0, "badge-yellow"},
		{0.5, "badge-yellow"},
		{4.0 / 9.0, "badge-red"},
		{0, "badge-red"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, risk.CompletenessBadgeClass(tt.score), "score %v", tt.score)
	}
}
