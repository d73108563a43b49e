package pgdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tender-marketplace-api/internal/entity"
)

func TestEvaluateDecisions(t *testing.T) {
	testCases := []struct {
		name         string
		rejected     int
		approved     int
		responsibles int
		want         entity.DecisionOutcome
	}{
		{
			name:         "first approval of a large organization is pending",
			approved:     1,
			responsibles: 5,
			want:         entity.DecisionPending,
		},
		{
			name:         "two approvals below the cap are pending",
			approved:     2,
			responsibles: 5,
			want:         entity.DecisionPending,
		},
		{
			name:         "three approvals close regardless of organization size",
			approved:     3,
			responsibles: 10,
			want:         entity.TenderClosed,
		},
		{
			name:         "single responsible closes with one approval",
			approved:     1,
			responsibles: 1,
			want:         entity.TenderClosed,
		},
		{
			name:         "two responsibles close with two approvals",
			approved:     2,
			responsibles: 2,
			want:         entity.TenderClosed,
		},
		{
			name:         "repeated approvals by one voter still count",
			approved:     3,
			responsibles: 3,
			want:         entity.TenderClosed,
		},
		{
			name:         "one rejection cancels despite enough approvals",
			rejected:     1,
			approved:     3,
			responsibles: 3,
			want:         entity.BidCanceled,
		},
		{
			name:         "rejection alone cancels immediately",
			rejected:     1,
			responsibles: 5,
			want:         entity.BidCanceled,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := evaluateDecisions(tc.rejected, tc.approved, tc.responsibles)
			require.Equal(t, tc.want, got)
		})
	}
}
