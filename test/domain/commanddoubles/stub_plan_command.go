//go:build integration || unit || test

package commanddoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"

	"github.com/rios0rios0/lockstep/internal/domain/commands"
	"github.com/rios0rios0/lockstep/internal/domain/entities"
)

// StubPlanCommand is a stub implementation of commands.Plan.
type StubPlanCommand struct {
	ExecuteCallCount int
	ExecuteErr       error
	Plan             *commands.ReleasePlan
	LastSettings     *entities.Settings
}

var _ commands.Plan = (*StubPlanCommand)(nil)

func (s *StubPlanCommand) Execute(
	_ context.Context,
	settings *entities.Settings,
) (*commands.ReleasePlan, error) {
	s.ExecuteCallCount++
	s.LastSettings = settings
	if s.ExecuteErr != nil {
		return nil, s.ExecuteErr
	}
	return s.Plan, nil
}
