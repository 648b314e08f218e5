package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"complainhub/internal/usecase"
	"complainhub/pkg/response"
	"complainhub/pkg/utils"
)

type ComplaintHandler struct {
	complaintUseCase *usecase.ComplaintUseCase
}

func NewComplaintHandler(complaintUseCase *usecase.ComplaintUseCase) *ComplaintHandler {
	return &ComplaintHandler{
		complaintUseCase: complaintUseCase,
	}
}

type updateStatusRequest struct {
	Status      string `json:"status" validate:"required"`
	Description string `json:"description"`
	AssignedTo  string `json:"assignedTo"`
	Date        string `json:"date"`
}

type addCommentRequest struct {
	Content   string `json:"content" validate:"required"`
	CreatedAt string `json:"createdAt"`
}

type classifyRequest struct {
	Complaint string `json:"complaint" validate:"required"`
}

func (h *ComplaintHandler) Create(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req usecase.CreateComplaintInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	complaint, err := h.complaintUseCase.Create(c.Request().Context(), uid, req)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Created(c, complaint)
}

// ListAll serves the admin dashboard: the filtered, sorted list plus the
// per-status tab counts computed over the unfiltered set.
func (h *ComplaintHandler) ListAll(c echo.Context) error {
	complaints, err := h.complaintUseCase.ListAll(c.Request().Context())
	if err != nil {
		return response.Error(c, err)
	}

	counts := usecase.CountByStatus(complaints)

	query := utils.GetListQuery(c)
	filtered := usecase.FilterComplaints(complaints, usecase.ListFilter{
		Status:      query.Status,
		Category:    query.Category,
		Search:      query.Search,
		AdminSearch: true,
	})

	if query.Sort == "priority" {
		usecase.SortByPriority(filtered, false)
	} else {
		usecase.SortByCreated(filtered, query.Sort)
	}

	return response.Success(c, map[string]interface{}{
		"complaints": filtered,
		"counts":     counts,
	})
}

// ListMine returns the caller's own complaints, newest first.
func (h *ComplaintHandler) ListMine(c echo.Context) error {
	uid := c.Get("uid").(string)
	return h.listForUser(c, uid)
}

// ListForUser returns another account's complaints; routing restricts this
// to admins.
func (h *ComplaintHandler) ListForUser(c echo.Context) error {
	return h.listForUser(c, c.Param("uid"))
}

func (h *ComplaintHandler) listForUser(c echo.Context, uid string) error {
	complaints, err := h.complaintUseCase.ListForUser(c.Request().Context(), uid)
	if err != nil {
		return response.Error(c, err)
	}

	query := utils.GetListQuery(c)
	filtered := usecase.FilterComplaints(complaints, usecase.ListFilter{
		Status:   query.Status,
		Category: query.Category,
		Search:   query.Search,
	})
	usecase.SortByCreated(filtered, query.Sort)

	return response.Success(c, filtered)
}

func (h *ComplaintHandler) GetByID(c echo.Context) error {
	uid := c.Get("uid").(string)

	complaint, err := h.complaintUseCase.GetForUser(c.Request().Context(), uid, c.Param("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, complaint)
}

func (h *ComplaintHandler) UpdateStatus(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	complaint, err := h.complaintUseCase.UpdateStatus(c.Request().Context(), uid, c.Param("id"), usecase.UpdateStatusInput{
		Status:      req.Status,
		Description: req.Description,
		AssignedTo:  req.AssignedTo,
		Date:        req.Date,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, complaint)
}

func (h *ComplaintHandler) AddComment(c echo.Context) error {
	uid := c.Get("uid").(string)

	var req addCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	complaint, err := h.complaintUseCase.AddComment(c.Request().Context(), uid, c.Param("id"), usecase.AddCommentInput{
		Content:   req.Content,
		CreatedAt: req.CreatedAt,
	})
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, complaint)
}

// ClassifyPriority previews the suggested priority for a complaint text.
func (h *ComplaintHandler) ClassifyPriority(c echo.Context) error {
	var req classifyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return response.Error(c, err)
	}

	priority, err := h.complaintUseCase.ClassifyPriority(c.Request().Context(), req.Complaint)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, map[string]string{"priority": string(priority)})
}
