package trigger

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/still-asking/sapn-generator/internal/allocation"
	v1 "github.com/still-asking/sapn-generator/internal/api/v1"
	httperr "github.com/still-asking/sapn-generator/internal/core/errors"
	allocationmocks "github.com/still-asking/sapn-generator/internal/mocks/allocation"
	storagemocks "github.com/still-asking/sapn-generator/internal/mocks/storage"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRouter(d *Dispatcher) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	NewHandler(d).RegisterRoutes(r)
	return r
}

func doJSON(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestEventHandler(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		configure      func(parts *storagemocks.PartStore, trig *allocationmocks.Trigger)
		expectedStatus int
		expectedType   string
	}{
		{
			name: "assigns on created event",
			body: `{"event":"part_part.created","model":"Part","id":5}`,
			configure: func(parts *storagemocks.PartStore, trig *allocationmocks.Trigger) {
				parts.EXPECT().GetPart(mock.Anything, int64(5)).
					Return(&v1.Part{ID: 5, Parameters: map[string]string{"SA_CCC": "ELC", "SA_SS": "11"}}, nil).
					Once()
				trig.EXPECT().AssignIdentifier(mock.Anything, mock.Anything).
					Return(allocation.Outcome{Status: allocation.StatusAssigned, Identifier: "SAPN-ELC-11-00001"}).
					Once()
			},
			expectedStatus: http.StatusAccepted,
		},
		{
			name:           "malformed json",
			body:           `{"event":`,
			configure:      func(*storagemocks.PartStore, *allocationmocks.Trigger) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidJsonError,
		},
		{
			name:           "missing id",
			body:           `{"event":"part_part.created","model":"Part"}`,
			configure:      func(*storagemocks.PartStore, *allocationmocks.Trigger) {},
			expectedStatus: http.StatusBadRequest,
			expectedType:   httperr.HttpInvalidRequestError,
		},
		{
			name:           "ignored model still accepted",
			body:           `{"event":"part_part.created","model":"Company","id":5}`,
			configure:      func(*storagemocks.PartStore, *allocationmocks.Trigger) {},
			expectedStatus: http.StatusAccepted,
		},
		{
			name: "store failure",
			body: `{"event":"part_part.created","model":"Part","id":5}`,
			configure: func(parts *storagemocks.PartStore, _ *allocationmocks.Trigger) {
				parts.EXPECT().GetPart(mock.Anything, int64(5)).Return(nil, errors.New("db down")).Once()
			},
			expectedStatus: http.StatusInternalServerError,
			expectedType:   httperr.HttpInternalError,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			parts := storagemocks.NewPartStore(t)
			trig := allocationmocks.NewTrigger(t)
			tc.configure(parts, trig)

			r := newTestRouter(NewDispatcher(parts, trig, defaultSettings))
			resp := doJSON(r, http.MethodPost, "/v1/events", tc.body)

			if resp.Code != tc.expectedStatus {
				t.Logf("unexpected response body: %s", resp.Body.String())
			}
			require.Equal(t, tc.expectedStatus, resp.Code)

			if tc.expectedType != "" {
				var body httperr.ErrorResponse
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &body))
				require.Equal(t, tc.expectedType, body.ErrorType)
			}
		})
	}
}

func TestEventHandler_ReturnsResult(t *testing.T) {
	parts := storagemocks.NewPartStore(t)
	parts.EXPECT().GetPart(mock.Anything, int64(5)).
		Return(&v1.Part{ID: 5, Parameters: map[string]string{"SA_CCC": "elc", "SA_SS": "11"}}, nil).
		Once()
	trig := allocationmocks.NewTrigger(t)
	trig.EXPECT().AssignIdentifier(mock.Anything, mock.Anything).
		Return(allocation.Outcome{Status: allocation.StatusSkipped, Reason: "invalid partition key"}).
		Once()

	r := newTestRouter(NewDispatcher(parts, trig, defaultSettings))
	resp := doJSON(r, http.MethodPost, "/v1/events", `{"delivery_id":"d-1","event":"part_part.created","model":"Part","id":5}`)
	require.Equal(t, http.StatusAccepted, resp.Code)

	var res Result
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &res))
	require.Equal(t, "d-1", res.DeliveryID)
	require.True(t, res.Dispatched)
	require.Equal(t, allocation.StatusSkipped, res.Outcome.Status)
	require.Equal(t, "invalid partition key", res.Outcome.Reason)
}

func TestSettingsHandlers(t *testing.T) {
	d := NewDispatcher(storagemocks.NewPartStore(t), allocationmocks.NewTrigger(t), defaultSettings)
	r := newTestRouter(d)

	resp := doJSON(r, http.MethodGet, "/v1/settings", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.JSONEq(t, `{"active":true,"on_create":true,"on_change":false}`, resp.Body.String())

	resp = doJSON(r, http.MethodPut, "/v1/settings", `{"on_change":true}`)
	require.Equal(t, http.StatusOK, resp.Code)
	require.Equal(t, Settings{Active: true, OnCreate: true, OnChange: true}, d.Settings())

	resp = doJSON(r, http.MethodPut, "/v1/settings", `{"active":"yes"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)
	require.True(t, d.Settings().Active)
}
