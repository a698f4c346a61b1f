// Package parts serves the part records that identifiers are assigned to.
package parts

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/still-asking/sapn-generator/internal/allocation"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	"github.com/still-asking/sapn-generator/internal/core/storage"
	"github.com/still-asking/sapn-generator/internal/trigger"
)

// EventDispatcher receives the lifecycle events the part routes emit.
type EventDispatcher interface {
	ProcessEvent(ctx context.Context, evt v1.Event) (trigger.Result, error)
}

// PartitionInspector reports the state of one partition's sequence space.
type PartitionInspector interface {
	Inspect(ctx context.Context, category, subcategory string) (allocation.PartitionStatus, error)
}

type Service struct {
	store      storage.PartStore
	dispatcher EventDispatcher
	assigner   allocation.Trigger
	inspector  PartitionInspector
}

func NewService(store storage.PartStore, dispatcher EventDispatcher, assigner allocation.Trigger, inspector PartitionInspector) *Service {
	if store == nil {
		panic("parts: store must not be nil")
	}
	if dispatcher == nil {
		panic("parts: dispatcher must not be nil")
	}
	if assigner == nil {
		panic("parts: assigner must not be nil")
	}
	if inspector == nil {
		panic("parts: inspector must not be nil")
	}
	return &Service{
		store:      store,
		dispatcher: dispatcher,
		assigner:   assigner,
		inspector:  inspector,
	}
}

// RegisterRoutes registers the part and partition routes.
func (s *Service) RegisterRoutes(r gin.IRouter) {
	r.POST("/v1/parts", s.CreateHandler)
	r.GET("/v1/parts/:id", s.GetHandler)
	r.PATCH("/v1/parts/:id", s.UpdateHandler)
	r.POST("/v1/parts/:id/identifier", s.AssignHandler)
	r.GET("/v1/partitions/:category/:subcategory", s.PartitionHandler)
}
