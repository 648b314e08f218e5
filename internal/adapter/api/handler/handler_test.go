package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"complainhub/internal/adapter/api"
	"complainhub/internal/adapter/repository"
	"complainhub/internal/domain/entity"
	"complainhub/internal/usecase"
	"complainhub/pkg/errors"
)

type stubUserRepo struct {
	users map[string]*entity.User
}

func (r *stubUserRepo) Create(ctx context.Context, user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *stubUserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, errors.NotFound("User", nil)
	}
	return user, nil
}

func (r *stubUserRepo) List(ctx context.Context) ([]*entity.User, error) {
	result := []*entity.User{}
	for _, u := range r.users {
		result = append(result, u)
	}
	return result, nil
}

func (r *stubUserRepo) Update(ctx context.Context, id string, fields map[string]interface{}) error {
	return nil
}

func (r *stubUserRepo) SetAccountStatus(ctx context.Context, id string, status entity.AccountStatus, blockReason string) error {
	return nil
}

type stubClassifier struct{}

func (stubClassifier) Classify(ctx context.Context, text string) (entity.Priority, error) {
	return entity.PriorityHigh, nil
}

func newTestHandler(t *testing.T) (*ComplaintHandler, *echo.Echo) {
	t.Helper()

	complaintRepo := repository.NewMemoryComplaintRepository()
	t.Cleanup(complaintRepo.Close)

	userRepo := &stubUserRepo{users: map[string]*entity.User{
		"student-1": {ID: "student-1", Name: "Asha Verma", Role: entity.RoleStudent, StudentID: "CS2021045", Status: entity.AccountActive},
		"admin-1":   {ID: "admin-1", Name: "Dean Office", Role: entity.RoleAdmin, Status: entity.AccountActive},
	}}

	uc := usecase.NewComplaintUseCase(complaintRepo, userRepo, nil, stubClassifier{}, nil, nil, 5*time.Second, 256*1024)

	e := echo.New()
	e.Validator = api.NewValidator()
	return NewComplaintHandler(uc), e
}

func TestHealthCheck(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewHealthHandler(nil)
	require.NoError(t, h.CheckHealth(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Server is running")
}

func TestCreateComplaintEndpoint(t *testing.T) {
	h, e := newTestHandler(t)

	body := `{"title":"WiFi down in block B","description":"No connectivity since yesterday evening.","category":"infrastructure"}`
	req := httptest.NewRequest(http.MethodPost, "/api/complaint/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "student-1")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusCreated, rec.Code)

	var envelope struct {
		Success bool             `json:"success"`
		Data    entity.Complaint `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.True(t, envelope.Success)
	assert.Equal(t, entity.CategoryInfrastructure, envelope.Data.Category)
	assert.Equal(t, entity.StatusPending, envelope.Data.Status)
	assert.Equal(t, "CS2021045", envelope.Data.StudentID)
}

func TestCreateComplaintValidation(t *testing.T) {
	h, e := newTestHandler(t)

	// Title below the minimum length.
	body := `{"title":"Hi","description":"Too short a title for a complaint."}`
	req := httptest.NewRequest(http.MethodPost, "/api/complaint/create", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "student-1")

	require.NoError(t, h.Create(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListAllIncludesCounts(t *testing.T) {
	h, e := newTestHandler(t)

	create := func(title string) {
		body := `{"title":"` + title + `","description":"Description long enough to pass validation."}`
		req := httptest.NewRequest(http.MethodPost, "/api/complaint/create", strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.Set("uid", "student-1")
		require.NoError(t, h.Create(c))
		require.Equal(t, http.StatusCreated, rec.Code)
	}
	create("Projector broken in LH-3")
	create("Hostel water issue on floor 2")

	req := httptest.NewRequest(http.MethodGet, "/api/complaint/all?status=pending", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("uid", "admin-1")

	require.NoError(t, h.ListAll(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var envelope struct {
		Data struct {
			Complaints []entity.Complaint     `json:"complaints"`
			Counts     map[string]interface{} `json:"counts"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Len(t, envelope.Data.Complaints, 2)
	assert.EqualValues(t, 2, envelope.Data.Counts["all"])
	assert.EqualValues(t, 2, envelope.Data.Counts["pending"])
}

func TestClassifyPriorityEndpoint(t *testing.T) {
	h, e := newTestHandler(t)

	body := `{"complaint":"The hostel fire exit is locked shut"}`
	req := httptest.NewRequest(http.MethodPost, "/api/complaint/admin/classify-priority", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.ClassifyPriority(c))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"priority":"high"`)
}
