package usecase

import (
	"sort"
	"strings"

	"github.com/m-mizutani/goerr/v2"

	"github.com/citadelgrad/shiftit-release/pkg/domain/model"
	"github.com/citadelgrad/shiftit-release/pkg/domain/types"
)

// ResolveMilestone returns the first milestone whose title is a string prefix
// of version. Milestone titles are coarser than full versions (a "2.1"
// milestone covers version "2.1.3"), so exact equality is deliberately not
// used. No milestone matching is fatal.
func ResolveMilestone(version string, milestones []model.Milestone) (model.Milestone, error) {
	for _, m := range milestones {
		if strings.HasPrefix(version, m.Title) {
			return m, nil
		}
	}

	return model.Milestone{}, goerr.Wrap(types.ErrMilestoneNotFound,
		"unable to find milestone for version", goerr.V("version", version))
}

// SortIssuesByClosedAt orders issues ascending by close time. The sort is
// stable: issues closed at the same instant keep their fetch order.
func SortIssuesByClosedAt(issues []model.Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		return issues[i].ClosedAt.Before(issues[j].ClosedAt)
	})
}
