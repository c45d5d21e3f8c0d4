package services

import (
	"errors"

	"github.com/advisorhub/backend/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProjectService struct {
	db *gorm.DB
}

func NewProjectService(db *gorm.DB) *ProjectService {
	return &ProjectService{db: db}
}

type CreateProjectRequest struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
}

type UpdateProjectRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Status      *string `json:"status"`
}

type AddMemberRequest struct {
	StudentNo string `json:"student_id" binding:"required"`
}

// ProjectView is a listing row with the owning teacher's name and the
// member count.
type ProjectView struct {
	models.Project
	TeacherName string `json:"teacher_name"`
	MemberCount int64  `json:"member_count"`
}

type MemberView struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	StudentNo string `json:"student_id"`
}

type ProjectDetail struct {
	ProjectView
	Members []MemberView `json:"members"`
}

// List returns the caller's projects: owned ones for teachers, enrolled ones
// for students. Newest first.
func (s *ProjectService) List(userID uint, role string) ([]ProjectView, error) {
	query := s.db.Model(&models.Project{}).Preload("Teacher")

	if role == models.RoleTeacher {
		query = query.Where("teacher_id = ?", userID)
	} else {
		query = query.
			Joins("JOIN project_members ON project_members.project_id = projects.id").
			Where("project_members.student_id = ?", userID)
	}

	var projects []models.Project
	if err := query.Order("projects.created_at DESC").Find(&projects).Error; err != nil {
		return nil, err
	}

	views := make([]ProjectView, 0, len(projects))
	for i := range projects {
		view := buildProjectView(&projects[i])
		s.db.Model(&models.ProjectMember{}).
			Where("project_id = ?", projects[i].ID).
			Count(&view.MemberCount)
		views = append(views, view)
	}
	return views, nil
}

// Create creates a new project owned by the calling teacher.
func (s *ProjectService) Create(teacherID uint, req *CreateProjectRequest) (*models.Project, error) {
	project := models.Project{
		Title:       req.Title,
		Description: req.Description,
		TeacherID:   teacherID,
		Status:      models.ProjectActive,
	}
	if err := s.db.Create(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// Get returns one project the caller can see (owner or member), with its
// member list.
func (s *ProjectService) Get(userID uint, role string, id uint) (*ProjectDetail, error) {
	query := s.db.Model(&models.Project{}).Preload("Teacher")

	if role == models.RoleTeacher {
		query = query.Where("projects.id = ? AND teacher_id = ?", id, userID)
	} else {
		query = query.
			Joins("JOIN project_members ON project_members.project_id = projects.id").
			Where("projects.id = ? AND project_members.student_id = ?", id, userID)
	}

	var project models.Project
	if err := query.First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectGone
		}
		return nil, err
	}

	var members []models.ProjectMember
	if err := s.db.Preload("Student").
		Where("project_id = ?", id).
		Find(&members).Error; err != nil {
		return nil, err
	}

	detail := &ProjectDetail{
		ProjectView: buildProjectView(&project),
		Members:     make([]MemberView, 0, len(members)),
	}
	detail.MemberCount = int64(len(members))
	for i := range members {
		student := members[i].Student
		if student == nil {
			continue
		}
		detail.Members = append(detail.Members, MemberView{
			ID:        student.ID,
			FirstName: student.FirstName,
			LastName:  student.LastName,
			Email:     student.Email,
			StudentNo: student.StudentNo,
		})
	}
	return detail, nil
}

// Update applies a partial update to a project owned by the calling teacher.
// Supplying no fields is an error.
func (s *ProjectService) Update(teacherID, id uint, req *UpdateProjectRequest) (*models.Project, error) {
	var project models.Project
	if err := s.db.Where("id = ? AND teacher_id = ?", id, teacherID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProjectGone
		}
		return nil, err
	}

	updates := make(map[string]interface{})
	if req.Title != nil {
		updates["title"] = *req.Title
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Status != nil {
		if !models.ValidProjectStatus(*req.Status) {
			return nil, badInput("invalid project status %q", *req.Status)
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	if err := s.db.Model(&project).Updates(updates).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// AddMember enrolls a student (looked up by their student number) into a
// project owned by the calling teacher. Duplicate enrollments are absorbed.
func (s *ProjectService) AddMember(teacherID, projectID uint, studentNo string) error {
	var project models.Project
	if err := s.db.Where("id = ? AND teacher_id = ?", projectID, teacherID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectGone
		}
		return err
	}

	var student models.User
	err := s.db.Where("student_no = ? AND role = ?", studentNo, models.RoleStudent).First(&student).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentGone
		}
		return err
	}

	member := models.ProjectMember{ProjectID: projectID, StudentID: student.ID}
	return s.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&member).Error
}

// RemoveMember deletes a membership row. Removing an absent member is not
// an error.
func (s *ProjectService) RemoveMember(teacherID, projectID, studentID uint) error {
	var project models.Project
	if err := s.db.Where("id = ? AND teacher_id = ?", projectID, teacherID).First(&project).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProjectGone
		}
		return err
	}

	return s.db.Where("project_id = ? AND student_id = ?", projectID, studentID).
		Delete(&models.ProjectMember{}).Error
}

func buildProjectView(p *models.Project) ProjectView {
	view := ProjectView{Project: *p}
	if p.Teacher != nil {
		view.TeacherName = p.Teacher.FullName()
	}
	view.Teacher = nil
	return view
}
