// Package trigger turns part lifecycle events into allocation requests.
package trigger

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/still-asking/sapn-generator/internal/allocation"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	"github.com/still-asking/sapn-generator/internal/core/partition"
	"github.com/still-asking/sapn-generator/internal/core/storage"
	"golang.org/x/sync/singleflight"
)

// Settings are the runtime toggles that decide which events allocate.
type Settings struct {
	Active   bool `json:"active" yaml:"active"`
	OnCreate bool `json:"on_create" yaml:"on_create"`
	OnChange bool `json:"on_change" yaml:"on_change"`
}

// Result reports how one event delivery was handled. Outcome is nil when the
// event was ignored before reaching the allocation service.
type Result struct {
	DeliveryID string              `json:"delivery_id"`
	Event      string              `json:"event"`
	PartID     int64               `json:"part_id"`
	Dispatched bool                `json:"dispatched"`
	Reason     string              `json:"reason,omitempty"`
	Outcome    *allocation.Outcome `json:"outcome,omitempty"`
}

// Dispatcher filters events by the current Settings, resolves the part and
// forwards it to an allocation.Trigger. Concurrent deliveries for the same
// part share one allocation call.
type Dispatcher struct {
	parts   storage.PartStore
	trigger allocation.Trigger

	mu       sync.RWMutex
	settings Settings

	inflight singleflight.Group
}

func NewDispatcher(parts storage.PartStore, trigger allocation.Trigger, settings Settings) *Dispatcher {
	if parts == nil {
		panic("trigger: part store must not be nil")
	}
	if trigger == nil {
		panic("trigger: allocation trigger must not be nil")
	}
	return &Dispatcher{parts: parts, trigger: trigger, settings: settings}
}

func (d *Dispatcher) Settings() Settings {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.settings
}

func (d *Dispatcher) SetSettings(s Settings) {
	d.mu.Lock()
	d.settings = s
	d.mu.Unlock()
	slog.Info("[Trigger] Settings updated", "active", s.Active, "on_create", s.OnCreate, "on_change", s.OnChange)
}

// WantsEvent reports whether an event with the given name would be acted on
// under the current settings.
func (d *Dispatcher) WantsEvent(name string) bool {
	s := d.Settings()
	if !s.Active {
		return false
	}
	switch name {
	case v1.EventPartCreated:
		return s.OnCreate
	case v1.EventPartSaved:
		return s.OnChange
	default:
		return false
	}
}

// ProcessEvent handles one delivery. Events for other models, events the
// settings reject, and unknown parts are ignored and reported in the Result.
// Only store failures other than a missing part are returned as errors.
func (d *Dispatcher) ProcessEvent(ctx context.Context, evt v1.Event) (Result, error) {
	if evt.DeliveryID == "" {
		evt.DeliveryID = uuid.NewString()
	}
	res := Result{DeliveryID: evt.DeliveryID, Event: evt.Name, PartID: evt.ID}

	if evt.Model != v1.ModelPart {
		res.Reason = fmt.Sprintf("model %q is not handled", evt.Model)
		return res, nil
	}
	if !d.WantsEvent(evt.Name) {
		res.Reason = fmt.Sprintf("event %q is disabled", evt.Name)
		slog.Debug("[Trigger] Event ignored", "delivery_id", evt.DeliveryID, "event", evt.Name, "part_id", evt.ID)
		return res, nil
	}

	v, err, shared := d.inflight.Do(strconv.FormatInt(evt.ID, 10), func() (interface{}, error) {
		return d.dispatch(ctx, evt.ID)
	})
	if err != nil {
		if errors.Is(err, storage.ErrPartNotFound) {
			slog.Warn("[Trigger] Event references unknown part", "delivery_id", evt.DeliveryID, "part_id", evt.ID)
			res.Reason = err.Error()
			return res, nil
		}
		return res, err
	}

	out := v.(allocation.Outcome)
	res.Dispatched = true
	res.Outcome = &out
	if shared {
		slog.Debug("[Trigger] Shared in-flight allocation", "delivery_id", evt.DeliveryID, "part_id", evt.ID)
	}
	return res, nil
}

func (d *Dispatcher) dispatch(ctx context.Context, partID int64) (allocation.Outcome, error) {
	part, err := d.parts.GetPart(ctx, partID)
	if err != nil {
		return allocation.Outcome{}, fmt.Errorf("load part %d: %w", partID, err)
	}

	out := d.trigger.AssignIdentifier(ctx, NewRequest(part, false))
	LogOutcome(part.ID, out)
	return out, nil
}

// NewRequest builds an allocation request from a part's resolved parameters.
func NewRequest(part *v1.Part, overwrite bool) allocation.Request {
	return allocation.Request{
		PartID:            part.ID,
		CurrentIdentifier: part.IPN,
		Category:          part.Parameter(partition.CategoryParam),
		Subcategory:       part.Parameter(partition.SubcategoryParam),
		Overwrite:         overwrite,
	}
}

// LogOutcome logs out at the level its status calls for: validation skips
// warn, failures error, everything else info.
func LogOutcome(partID int64, out allocation.Outcome) {
	switch out.Status {
	case allocation.StatusAssigned:
		slog.Info("[Trigger] Identifier assigned", "part_id", partID, "ipn", out.Identifier)
	case allocation.StatusSkipped:
		var verr *partition.ValidationError
		if errors.As(out.Err, &verr) {
			slog.Warn("[Trigger] Skipped part with invalid partition key", "part_id", partID, "reason", out.Reason)
			return
		}
		slog.Info("[Trigger] Skipped part", "part_id", partID, "reason", out.Reason)
	case allocation.StatusFailed:
		slog.Error("[Trigger] Identifier allocation failed", "part_id", partID, "error", out.Err)
	}
}
