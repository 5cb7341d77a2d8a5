package usecase_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"

	"github.com/citadelgrad/shiftit-release/pkg/domain/model"
	"github.com/citadelgrad/shiftit-release/pkg/domain/types"
	"github.com/citadelgrad/shiftit-release/pkg/usecase"
)

func TestResolveMilestone(t *testing.T) {
	tests := []struct {
		name       string
		version    string
		milestones []model.Milestone
		want       string
		wantErr    bool
	}{
		{
			name:    "first prefix match wins",
			version: "2.1.3",
			milestones: []model.Milestone{
				{Number: 1, Title: "2.0"},
				{Number: 2, Title: "2.1"},
			},
			want: "2.1",
		},
		{
			name:    "exact title match",
			version: "2.1",
			milestones: []model.Milestone{
				{Number: 2, Title: "2.1"},
			},
			want: "2.1",
		},
		{
			name:    "no match is fatal",
			version: "3.0.0",
			milestones: []model.Milestone{
				{Number: 1, Title: "2.0"},
				{Number: 2, Title: "2.1"},
			},
			wantErr: true,
		},
		{
			name:       "empty milestone list is fatal",
			version:    "2.1.3",
			milestones: nil,
			wantErr:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := usecase.ResolveMilestone(tt.version, tt.milestones)
			if tt.wantErr {
				gt.Error(t, err)
				gt.Value(t, errors.Is(err, types.ErrMilestoneNotFound)).Equal(true)
				return
			}
			gt.NoError(t, err)
			gt.Value(t, got.Title).Equal(tt.want)
		})
	}
}

// Matching is a plain string prefix with no delimiter awareness, so a "2.1"
// milestone also captures version "2.10.0" when listed first. This pins the
// known coarseness of the scheme rather than endorsing it.
func TestResolveMilestone_PrefixAmbiguity(t *testing.T) {
	got, err := usecase.ResolveMilestone("2.10.0", []model.Milestone{
		{Number: 2, Title: "2.1"},
		{Number: 3, Title: "2.10"},
	})
	gt.NoError(t, err)
	gt.Value(t, got.Title).Equal("2.1")
}

func TestSortIssuesByClosedAt(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	issues := []model.Issue{
		{Number: 12, ClosedAt: base.Add(2 * time.Hour)},
		{Number: 10, ClosedAt: base},
		{Number: 11, ClosedAt: base.Add(time.Hour)},
	}

	usecase.SortIssuesByClosedAt(issues)

	gt.Value(t, issues[0].Number).Equal(10)
	gt.Value(t, issues[1].Number).Equal(11)
	gt.Value(t, issues[2].Number).Equal(12)

	for i := 1; i < len(issues); i++ {
		gt.Value(t, issues[i].ClosedAt.Before(issues[i-1].ClosedAt)).Equal(false)
	}
}

func TestSortIssuesByClosedAt_StableOnTies(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	issues := []model.Issue{
		{Number: 30, ClosedAt: base},
		{Number: 10, ClosedAt: base},
		{Number: 20, ClosedAt: base},
	}

	usecase.SortIssuesByClosedAt(issues)

	// Equal timestamps keep fetch order.
	gt.Value(t, issues[0].Number).Equal(30)
	gt.Value(t, issues[1].Number).Equal(10)
	gt.Value(t, issues[2].Number).Equal(20)
}
