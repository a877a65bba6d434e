package leave_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/skylift/workforce/internal/leave"
	leaveerrors "github.com/skylift/workforce/internal/leave/errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *apiError       `json:"error"`
}

func decodeEnvelope(t *testing.T, body []byte) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	err := json.Unmarshal(body, &env)
	assert.NoError(t, err)
	return env
}

type fakeLeaveService struct {
	submitFn          func(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error)
	updateFn          func(ctx context.Context, employeeID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error)
	cancelFn          func(ctx context.Context, employeeID, id string) (leave.CancelResult, error)
	listForEmployeeFn func(ctx context.Context, employeeID string, filter leave.ListFilter) (leave.WorkerLeaveListResponse, error)
	listTeamFn        func(ctx context.Context, filter leave.ListFilter) (leave.TeamLeaveListResponse, error)
	decideFn          func(ctx context.Context, approverID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error)
}

func (f *fakeLeaveService) Submit(ctx context.Context, employeeID string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
	return f.submitFn(ctx, employeeID, req)
}
func (f *fakeLeaveService) Update(ctx context.Context, employeeID, id string, req leave.UpdateLeaveRequest) (leave.LeaveResponse, error) {
	return f.updateFn(ctx, employeeID, id, req)
}
func (f *fakeLeaveService) Cancel(ctx context.Context, employeeID, id string) (leave.CancelResult, error) {
	return f.cancelFn(ctx, employeeID, id)
}
func (f *fakeLeaveService) ListForEmployee(ctx context.Context, employeeID string, filter leave.ListFilter) (leave.WorkerLeaveListResponse, error) {
	return f.listForEmployeeFn(ctx, employeeID, filter)
}
func (f *fakeLeaveService) ListTeam(ctx context.Context, filter leave.ListFilter) (leave.TeamLeaveListResponse, error) {
	return f.listTeamFn(ctx, filter)
}
func (f *fakeLeaveService) Decide(ctx context.Context, approverID, id string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
	return f.decideFn(ctx, approverID, id, req)
}

func TestLeaveHandler_Submit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, "VACATION", req.Type)
				return leave.LeaveResponse{
					ID:         uuid.New().String(),
					EmployeeID: eid,
					Type:       req.Type,
					StartDate:  req.StartDate,
					EndDate:    req.EndDate,
					TotalDays:  "5",
					Status:     leave.StatusPending,
				}, nil
			},
		}

		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"VACATION","start_date":"2026-07-06","end_date":"2026-07-10","reason":"Summer"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)

		h.Submit(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		var got leave.LeaveResponse
		assert.NoError(t, json.Unmarshal(env.Data, &got))
		assert.Equal(t, employeeID, got.EmployeeID)
		assert.Equal(t, "VACATION", got.Type)
		assert.Equal(t, "5", got.TotalDays)
		assert.Equal(t, leave.StatusPending, got.Status)
	})

	t.Run("negative missing fields", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/leave", strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)

		h.Submit(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "INVALID_INPUT", env.Error.Code)
	})

	t.Run("negative overlap returns conflict", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, leaveerrors.ErrLeaveOverlap
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"VACATION","start_date":"2026-07-06","end_date":"2026-07-10"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)

		h.Submit(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.False(t, env.Ok)
		assert.Equal(t, "CONFLICT", env.Error.Code)
	})

	t.Run("negative service failure is opaque", func(t *testing.T) {
		svc := &fakeLeaveService{
			submitFn: func(ctx context.Context, eid string, req leave.CreateLeaveRequest) (leave.LeaveResponse, error) {
				return leave.LeaveResponse{}, errors.New("pq: connection refused")
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"type":"VACATION","start_date":"2026-07-06","end_date":"2026-07-10"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/leave", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("employee_id", employeeID)

		h.Submit(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.Equal(t, "INTERNAL_ERROR", env.Error.Code)
		assert.NotContains(t, env.Error.Message, "connection refused")
	})
}

func TestLeaveHandler_Cancel(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()
	id := uuid.New().String()

	t.Run("pending cancellation", func(t *testing.T) {
		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, eid, targetID string) (leave.CancelResult, error) {
				assert.Equal(t, employeeID, eid)
				assert.Equal(t, id, targetID)
				return leave.CancelResult{Cancelled: true}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/leave/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("employee_id", employeeID)

		h.Cancel(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"cancelled":true`)
	})

	t.Run("approved cancellation is accepted for review", func(t *testing.T) {
		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, eid, targetID string) (leave.CancelResult, error) {
				return leave.CancelResult{RequiresApproval: true}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/leave/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("employee_id", employeeID)

		h.Cancel(c)

		assert.Equal(t, http.StatusAccepted, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), `"requires_approval":true`)
	})

	t.Run("negative not owner", func(t *testing.T) {
		svc := &fakeLeaveService{
			cancelFn: func(ctx context.Context, eid, targetID string) (leave.CancelResult, error) {
				return leave.CancelResult{}, leaveerrors.ErrNotOwner
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodDelete, "/leave/"+id, nil)
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("employee_id", employeeID)

		h.Cancel(c)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}

func TestLeaveHandler_Decide(t *testing.T) {
	gin.SetMode(gin.TestMode)
	approverID := uuid.New().String()
	id := uuid.New().String()

	t.Run("approve", func(t *testing.T) {
		svc := &fakeLeaveService{
			decideFn: func(ctx context.Context, aid, targetID string, req leave.DecideLeaveRequest) (leave.LeaveResponse, error) {
				assert.Equal(t, approverID, aid)
				assert.Equal(t, "approve", req.Action)
				return leave.LeaveResponse{ID: targetID, Status: leave.StatusApproved}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/manager/leave/"+id, strings.NewReader(`{"action":"approve"}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("employee_id", approverID)

		h.Decide(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decodeEnvelope(t, w.Body.Bytes())
		assert.True(t, env.Ok)
	})

	t.Run("negative missing action", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPut, "/manager/leave/"+id, strings.NewReader(`{}`))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Params = gin.Params{{Key: "id", Value: id}}
		c.Set("employee_id", approverID)

		h.Decide(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLeaveHandler_List(t *testing.T) {
	gin.SetMode(gin.TestMode)
	employeeID := uuid.New().String()

	t.Run("passes filters through", func(t *testing.T) {
		svc := &fakeLeaveService{
			listForEmployeeFn: func(ctx context.Context, eid string, filter leave.ListFilter) (leave.WorkerLeaveListResponse, error) {
				assert.Equal(t, employeeID, eid)
				assert.NotNil(t, filter.Year)
				assert.Equal(t, 2026, *filter.Year)
				assert.Equal(t, 2, filter.Page)
				return leave.WorkerLeaveListResponse{Total: 0}, nil
			},
		}
		h := leave.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave?year=2026&page=2", nil)
		c.Set("employee_id", employeeID)

		h.List(c)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("negative bad year", func(t *testing.T) {
		h := leave.NewHandler(&fakeLeaveService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodGet, "/leave?year=twenty", nil)
		c.Set("employee_id", employeeID)

		h.List(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
