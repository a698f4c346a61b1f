package allocation

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/still-asking/sapn-generator/internal/core/identifier"
	"github.com/still-asking/sapn-generator/internal/core/partition"
)

// Status is the result class of an allocation request.
type Status string

const (
	StatusAssigned Status = "assigned"
	StatusSkipped  Status = "skipped"
	StatusFailed   Status = "failed"
)

// Request carries everything the service needs about one part.
type Request struct {
	PartID            int64
	CurrentIdentifier string
	Category          string
	Subcategory       string
	Overwrite         bool
}

// Outcome describes what happened to a Request. Err is set for skipped
// validation failures and for every failed outcome.
type Outcome struct {
	Status     Status                `json:"status"`
	Identifier identifier.Identifier `json:"identifier,omitempty"`
	Reason     string                `json:"reason,omitempty"`
	Err        error                 `json:"-"`
}

// Trigger is what event sources depend on to request an identifier.
type Trigger interface {
	AssignIdentifier(ctx context.Context, req Request) Outcome
}

var _ Trigger = (*Service)(nil)

// Service validates requests and delegates allocation.
type Service struct {
	allocator *Allocator
	metrics   *Metrics
}

func NewService(allocator *Allocator, metrics *Metrics) *Service {
	if allocator == nil {
		panic("allocation: allocator is required")
	}
	return &Service{allocator: allocator, metrics: metrics}
}

// AssignIdentifier validates the partition key, skips parts that already
// hold an identifier unless Overwrite is set, and otherwise allocates.
func (s *Service) AssignIdentifier(ctx context.Context, req Request) Outcome {
	out := s.assign(ctx, req)
	s.metrics.observeOutcome(out.Status)
	return out
}

func (s *Service) assign(ctx context.Context, req Request) Outcome {
	key, err := partition.Validate(req.Category, req.Subcategory)
	if err != nil {
		return Outcome{Status: StatusSkipped, Reason: err.Error(), Err: err}
	}

	if strings.TrimSpace(req.CurrentIdentifier) != "" && !req.Overwrite {
		return Outcome{
			Status: StatusSkipped,
			Reason: fmt.Sprintf("part already has identifier %s", req.CurrentIdentifier),
		}
	}

	id, err := s.allocator.Allocate(ctx, req.PartID, key, req.Overwrite)
	switch {
	case err == nil:
		return Outcome{Status: StatusAssigned, Identifier: id}
	case errors.Is(err, ErrAlreadyAssigned):
		return Outcome{Status: StatusSkipped, Reason: err.Error()}
	default:
		return Outcome{Status: StatusFailed, Reason: err.Error(), Err: err}
	}
}

// Inspect reports the status of the partition named by category/subcategory.
func (s *Service) Inspect(ctx context.Context, category, subcategory string) (PartitionStatus, error) {
	key, err := partition.Validate(category, subcategory)
	if err != nil {
		return PartitionStatus{}, err
	}
	return s.allocator.Inspect(ctx, key)
}
