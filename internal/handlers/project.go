package handlers

import (
	"strconv"

	"github.com/advisorhub/backend/internal/middleware"
	"github.com/advisorhub/backend/internal/services"
	"github.com/advisorhub/backend/pkg/response"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectHandler struct {
	projectService *services.ProjectService
}

func NewProjectHandler(db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		projectService: services.NewProjectService(db),
	}
}

// List returns the caller's projects
// GET /api/projects
func (h *ProjectHandler) List(c *gin.Context) {
	views, err := h.projectService.List(middleware.GetUserID(c), middleware.GetRole(c))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, views)
}

// Create creates a new project owned by the calling teacher
// POST /api/projects
func (h *ProjectHandler) Create(c *gin.Context) {
	var req services.CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Create(middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Created(c, project)
}

// Get returns one project with its member list
// GET /api/projects/:id
func (h *ProjectHandler) Get(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	detail, err := h.projectService.Get(middleware.GetUserID(c), middleware.GetRole(c), uint(id))
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, detail)
}

// Update applies a partial update to an owned project
// PUT /api/projects/:id
func (h *ProjectHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	project, err := h.projectService.Update(middleware.GetUserID(c), uint(id), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, project)
}

// AddMember enrolls a student into an owned project
// POST /api/projects/:id/members
func (h *ProjectHandler) AddMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	var req services.AddMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.projectService.AddMember(middleware.GetUserID(c), uint(id), req.StudentNo); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member added"})
}

// RemoveMember removes a student from an owned project
// DELETE /api/projects/:id/members/:studentId
func (h *ProjectHandler) RemoveMember(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid project id")
		return
	}

	studentID, err := strconv.ParseUint(c.Param("studentId"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid student id")
		return
	}

	if err := h.projectService.RemoveMember(middleware.GetUserID(c), uint(id), uint(studentID)); err != nil {
		respondError(c, err)
		return
	}

	response.Success(c, gin.H{"message": "member removed"})
}
