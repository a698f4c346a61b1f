package parts

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/still-asking/sapn-generator/internal/allocation"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	httperr "github.com/still-asking/sapn-generator/internal/core/errors"
	"github.com/still-asking/sapn-generator/internal/core/partition"
	"github.com/still-asking/sapn-generator/internal/core/storage"
	"github.com/still-asking/sapn-generator/internal/trigger"
)

const (
	msgInvalidJSON     = "Invalid JSON body"
	msgInvalidID       = "Part id must be a positive integer"
	msgPartNotFound    = "Part not found"
	msgIdentifierTaken = "Identifier already belongs to another part"
	msgPersistFailed   = "Failed to persist part"
	msgLoadFailed      = "Failed to load part"
	msgAllocateFailed  = "Failed to assign identifier"
	msgInspectFailed   = "Failed to inspect partition"
)

// apiError carries the HTTP error shape from a helper back to the handler.
type apiError struct {
	statusCode int
	errorType  string
	message    string
	details    interface{}
}

func (e *apiError) Error() string {
	return e.message
}

// PartResponse is returned by every route that creates or changes a part.
type PartResponse struct {
	Part    *v1.Part            `json:"part"`
	Trigger *trigger.Result     `json:"trigger,omitempty"`
	Outcome *allocation.Outcome `json:"outcome,omitempty"`
}

type createRequest struct {
	Name        string            `json:"name"`
	Description string            `json:"description"`
	IPN         string            `json:"ipn"`
	Parameters  map[string]string `json:"parameters"`
}

// updateRequest fields are optional. A parameter set to "" is removed.
type updateRequest struct {
	Name        *string           `json:"name"`
	Description *string           `json:"description"`
	Parameters  map[string]string `json:"parameters"`
}

type assignRequest struct {
	Overwrite bool `json:"overwrite"`
}

// CreateHandler stores a new part and emits part_part.created.
func (s *Service) CreateHandler(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("Invalid JSON body received", "error", err)
		writeError(c, &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidJsonError, message: msgInvalidJSON})
		return
	}

	part := &v1.Part{
		Name:        req.Name,
		Description: req.Description,
		IPN:         req.IPN,
		Parameters:  req.Parameters,
	}
	if err := part.Validate(); err != nil {
		writeError(c, &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidRequestError, message: err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := s.store.CreatePart(ctx, part); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			writeError(c, &apiError{statusCode: http.StatusConflict, errorType: httperr.HttpIdentifierTakenError, message: msgIdentifierTaken})
			return
		}
		slog.Error("Failed to create part", "error", err)
		writeError(c, &apiError{statusCode: http.StatusInternalServerError, errorType: httperr.HttpInternalError, message: msgPersistFailed})
		return
	}
	slog.Info("Part created", "part_id", part.ID, "ipn", part.IPN)

	resp, apiErr := s.emit(ctx, v1.EventPartCreated, part.ID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (s *Service) GetHandler(c *gin.Context) {
	id, apiErr := parseID(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	part, apiErr := s.loadPart(c.Request.Context(), id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, part)
}

// UpdateHandler changes name, description or parameters and emits
// part_part.saved. The identifier cannot be changed here.
func (s *Service) UpdateHandler(c *gin.Context) {
	id, apiErr := parseID(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidJsonError, message: msgInvalidJSON})
		return
	}

	ctx := c.Request.Context()
	part, apiErr := s.loadPart(ctx, id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	applyUpdate(part, &req)
	if err := part.Validate(); err != nil {
		writeError(c, &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidRequestError, message: err.Error()})
		return
	}

	if err := s.store.UpdatePart(ctx, part); err != nil {
		if errors.Is(err, storage.ErrPartNotFound) {
			writeError(c, &apiError{statusCode: http.StatusNotFound, errorType: httperr.HttpPartNotFoundError, message: msgPartNotFound})
			return
		}
		slog.Error("Failed to update part", "part_id", id, "error", err)
		writeError(c, &apiError{statusCode: http.StatusInternalServerError, errorType: httperr.HttpInternalError, message: msgPersistFailed})
		return
	}

	resp, apiErr := s.emit(ctx, v1.EventPartSaved, part.ID)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AssignHandler assigns an identifier on demand, regardless of the trigger
// settings. Validation, the ceiling and the retry bound still apply.
func (s *Service) AssignHandler(c *gin.Context) {
	id, apiErr := parseID(c)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	var req assignRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			writeError(c, &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidJsonError, message: msgInvalidJSON})
			return
		}
	}

	ctx := c.Request.Context()
	part, apiErr := s.loadPart(ctx, id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}

	out := s.assigner.AssignIdentifier(ctx, trigger.NewRequest(part, req.Overwrite))
	trigger.LogOutcome(part.ID, out)
	if apiErr := outcomeError(part, out); apiErr != nil {
		writeError(c, apiErr)
		return
	}

	part, apiErr = s.loadPart(ctx, id)
	if apiErr != nil {
		writeError(c, apiErr)
		return
	}
	c.JSON(http.StatusOK, PartResponse{Part: part, Outcome: &out})
}

func (s *Service) PartitionHandler(c *gin.Context) {
	status, err := s.inspector.Inspect(c.Request.Context(), c.Param("category"), c.Param("subcategory"))
	if err != nil {
		var verr *partition.ValidationError
		if errors.As(err, &verr) {
			writeError(c, &apiError{
				statusCode: http.StatusBadRequest,
				errorType:  httperr.HttpValidationError,
				message:    verr.Error(),
				details:    verr.Details(),
			})
			return
		}
		slog.Error("Failed to inspect partition", "category", c.Param("category"), "subcategory", c.Param("subcategory"), "error", err)
		writeError(c, &apiError{statusCode: http.StatusInternalServerError, errorType: httperr.HttpInternalError, message: msgInspectFailed})
		return
	}
	c.JSON(http.StatusOK, status)
}

// emit dispatches a lifecycle event and reloads the part so the response
// carries any identifier the event assigned.
func (s *Service) emit(ctx context.Context, event string, partID int64) (*PartResponse, *apiError) {
	res, err := s.dispatcher.ProcessEvent(ctx, v1.Event{Name: event, Model: v1.ModelPart, ID: partID})
	if err != nil {
		slog.Error("Failed to dispatch part event", "event", event, "part_id", partID, "error", err)
		return nil, &apiError{statusCode: http.StatusInternalServerError, errorType: httperr.HttpInternalError, message: msgAllocateFailed}
	}

	part, apiErr := s.loadPart(ctx, partID)
	if apiErr != nil {
		return nil, apiErr
	}
	return &PartResponse{Part: part, Trigger: &res}, nil
}

func (s *Service) loadPart(ctx context.Context, id int64) (*v1.Part, *apiError) {
	part, err := s.store.GetPart(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrPartNotFound) {
			return nil, &apiError{statusCode: http.StatusNotFound, errorType: httperr.HttpPartNotFoundError, message: msgPartNotFound}
		}
		slog.Error("Failed to load part", "part_id", id, "error", err)
		return nil, &apiError{statusCode: http.StatusInternalServerError, errorType: httperr.HttpInternalError, message: msgLoadFailed}
	}
	return part, nil
}

// outcomeError maps a non-assigned outcome onto an HTTP error.
func outcomeError(part *v1.Part, out allocation.Outcome) *apiError {
	switch out.Status {
	case allocation.StatusAssigned:
		return nil
	case allocation.StatusSkipped:
		var verr *partition.ValidationError
		if errors.As(out.Err, &verr) {
			return &apiError{
				statusCode: http.StatusUnprocessableEntity,
				errorType:  httperr.HttpValidationError,
				message:    verr.Error(),
				details:    verr.Details(),
			}
		}
		return &apiError{
			statusCode: http.StatusConflict,
			errorType:  httperr.HttpAlreadyAssignedError,
			message:    out.Reason,
			details:    map[string]interface{}{"part_id": part.ID},
		}
	}

	apiErr := &apiError{statusCode: http.StatusInternalServerError, errorType: httperr.HttpInternalError, message: msgAllocateFailed}
	switch {
	case errors.Is(out.Err, allocation.ErrSequenceOverflow):
		apiErr.statusCode = http.StatusConflict
		apiErr.errorType = httperr.HttpSequenceOverflowError
		apiErr.message = out.Reason
	case errors.Is(out.Err, allocation.ErrConflictExhausted):
		apiErr.statusCode = http.StatusServiceUnavailable
		apiErr.errorType = httperr.HttpConflictExhaustedError
		apiErr.message = out.Reason
	}
	var d httperr.Detailer
	if errors.As(out.Err, &d) {
		apiErr.details = d.Details()
	}
	return apiErr
}

func applyUpdate(part *v1.Part, req *updateRequest) {
	if req.Name != nil {
		part.Name = *req.Name
	}
	if req.Description != nil {
		part.Description = *req.Description
	}
	if len(req.Parameters) == 0 {
		return
	}
	if part.Parameters == nil {
		part.Parameters = make(map[string]string, len(req.Parameters))
	}
	for k, v := range req.Parameters {
		if v == "" {
			delete(part.Parameters, k)
			continue
		}
		part.Parameters[k] = v
	}
}

func parseID(c *gin.Context) (int64, *apiError) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, &apiError{statusCode: http.StatusBadRequest, errorType: httperr.HttpInvalidRequestError, message: msgInvalidID}
	}
	return id, nil
}

// writeError serializes an apiError as the JSON HTTP response.
func writeError(c *gin.Context, err *apiError) {
	c.JSON(err.statusCode, httperr.ErrorResponse{
		ErrorType: err.errorType,
		Message:   err.message,
		Details:   err.details,
	})
}
