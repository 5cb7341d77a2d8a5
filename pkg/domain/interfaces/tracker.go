package interfaces

import (
	"context"

	"github.com/citadelgrad/shiftit-release/pkg/domain/model"
)

// TrackerClient defines the issue tracker operations used by the pipeline.
// Milestones and issues are fetched fresh on every call; no caching happens
// behind this interface.
type TrackerClient interface {
	// Milestones lists all milestones of the repository in API order.
	Milestones(ctx context.Context) ([]model.Milestone, error)

	// IssuesByMilestone lists issues attached to the milestone, filtered by
	// state ("open" or "closed"), in API order.
	IssuesByMilestone(ctx context.Context, milestone int, state string) ([]model.Issue, error)
}
