package schedule

import (
	"context"
	"fmt"
)

// Decision is the outcome of a load-cap check. Message is the explanation
// surfaced verbatim in rejection responses.
type Decision struct {
	Allowed     bool    `json:"allowed"`
	CurrentLoad float64 `json:"currentLoad"`
	NewLoad     float64 `json:"newLoad"`
	Cap         float64 `json:"cap"`
	Message     string  `json:"message"`
}

// CanAssign decides whether a teacher can take additionalHours more per
// week under the weekly cap. The cap is inclusive: landing exactly on it
// is allowed. This is a pure decision with no side effects and may be
// called as a dry run before committing a mutation.
func (s *service) CanAssign(ctx context.Context, teacherID int32, additionalHours float64) (*Decision, error) {
	summary, err := s.AggregateLoad(ctx, teacherID)
	if err != nil {
		return nil, err
	}

	decision := &Decision{
		CurrentLoad: summary.WeeklyHours,
		NewLoad:     round2(summary.WeeklyHours + additionalHours),
		Cap:         s.cap,
	}
	decision.Allowed = decision.NewLoad <= decision.Cap
	if decision.Allowed {
		decision.Message = fmt.Sprintf("weekly load would be %g of %g hours", decision.NewLoad, decision.Cap)
	} else {
		decision.Message = fmt.Sprintf("weekly load would rise from %g to %g hours, exceeding the %g hour cap", decision.CurrentLoad, decision.NewLoad, decision.Cap)
	}
	return decision, nil
}
