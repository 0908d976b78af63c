package entities

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"

	logger "github.com/sirupsen/logrus"
)

// Operation is one step of a release. It receives the working set produced by
// the previous step and returns the working set for the next one.
type Operation interface {
	Name() string
	Execute(ctx context.Context, libraries Libraries) (Libraries, error)
}

// PipelineStatus is the state of a pipeline run.
type PipelineStatus int

const (
	PipelineRunning PipelineStatus = iota
	PipelineSucceeded
	PipelineFailed
)

func (s PipelineStatus) String() string {
	switch s {
	case PipelineRunning:
		return "running"
	case PipelineSucceeded:
		return "succeeded"
	case PipelineFailed:
		return "failed"
	default:
		return fmt.Sprintf("PipelineStatus(%d)", int(s))
	}
}

// PipelineState is a snapshot of the pipeline state machine.
//
//   - Running: Index is the next operation, Libraries its input.
//   - Succeeded: Libraries is the output of the last operation.
//   - Failed: Failure describes the operation that stopped the run.
type PipelineState struct {
	Status    PipelineStatus
	Index     int
	Libraries Libraries
	Failure   *OperationError
}

// Pipeline runs operations in order and stops at the first failure. Effects
// of operations that already ran are not rolled back.
type Pipeline struct {
	operations []Operation
}

// NewPipeline creates a pipeline over the given operations.
func NewPipeline(operations ...Operation) *Pipeline {
	ops := make([]Operation, len(operations))
	copy(ops, operations)
	return &Pipeline{operations: ops}
}

// Operations returns the names of the pipeline operations in order.
func (p *Pipeline) Operations() []string {
	names := make([]string, 0, len(p.operations))
	for _, op := range p.operations {
		names = append(names, op.Name())
	}
	return names
}

// Run drives the state machine from Running(0, initial) to a terminal state.
func (p *Pipeline) Run(ctx context.Context, initial Libraries) PipelineState {
	state := PipelineState{Status: PipelineRunning, Libraries: initial}
	for state.Status == PipelineRunning {
		state = p.Step(ctx, state)
	}
	return state
}

// Step performs a single transition. Terminal states are returned unchanged.
func (p *Pipeline) Step(ctx context.Context, state PipelineState) PipelineState {
	if state.Status != PipelineRunning {
		return state
	}
	if state.Index >= len(p.operations) {
		return PipelineState{Status: PipelineSucceeded, Index: state.Index, Libraries: state.Libraries}
	}

	op := p.operations[state.Index]
	logger.Infof("[%s] Starting step %d/%d", op.Name(), state.Index+1, len(p.operations))

	next, err := runOperation(ctx, op, state.Libraries)
	if err != nil {
		failure := asOperationError(op, err)
		logger.Errorf("[%s] %v", op.Name(), failure)
		return PipelineState{Status: PipelineFailed, Index: state.Index, Failure: failure}
	}

	return PipelineState{Status: PipelineRunning, Index: state.Index + 1, Libraries: next}
}

// runOperation converts a panic inside op into an UnexpectedFaultError.
func runOperation(ctx context.Context, op Operation, libraries Libraries) (result Libraries, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			result = nil
			err = &OperationError{
				Operation:   op.Name(),
				Description: fmt.Sprintf("operation %q faulted", op.Name()),
				Cause:       &UnexpectedFaultError{Value: recovered, Stack: string(debug.Stack())},
			}
		}
	}()
	return op.Execute(ctx, libraries)
}

func asOperationError(op Operation, err error) *OperationError {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		if opErr.Operation == "" {
			opErr.Operation = op.Name()
		}
		return opErr
	}
	return &OperationError{
		Operation:   op.Name(),
		Description: fmt.Sprintf("operation %q failed", op.Name()),
		Cause:       err,
	}
}
