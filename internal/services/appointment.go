package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/internal/utils"
	"gorm.io/gorm"
)

// AppointmentService implements the booking core: membership and teacher
// checks, the interval conflict test, the status lifecycle, and notes.
type AppointmentService struct {
	db       *gorm.DB
	notifier *NotificationService
}

func NewAppointmentService(db *gorm.DB, notifier *NotificationService) *AppointmentService {
	return &AppointmentService{db: db, notifier: notifier}
}

type CreateAppointmentRequest struct {
	ProjectID   uint   `json:"project_id" binding:"required"`
	TeacherID   uint   `json:"teacher_id" binding:"required"`
	Title       string `json:"title" binding:"required"`
	Description string `json:"description"`
	Date        string `json:"appointment_date" binding:"required"`
	StartTime   string `json:"start_time" binding:"required"`
	EndTime     string `json:"end_time" binding:"required"`
	Location    string `json:"location"`
}

type AppointmentListRequest struct {
	Status    string `form:"status"`
	ProjectID uint   `form:"project_id"`
	Date      string `form:"date"`
}

// AppointmentView is a listing row enriched with the project title and the
// counterpart participant. Students see the teacher; teachers see the student.
type AppointmentView struct {
	models.Appointment
	ProjectTitle    string `json:"project_title"`
	CounterpartName string `json:"counterpart_name"`
	CounterpartNo   string `json:"counterpart_no,omitempty"`
}

type NoteView struct {
	models.AppointmentNote
	AuthorName string `json:"author_name"`
	AuthorRole string `json:"author_role"`
}

type AppointmentDetail struct {
	AppointmentView
	Notes []NoteView `json:"notes"`
}

// ownScope returns the role-partitioned visibility scope: teachers match on
// teacher_id, everyone else on student_id. The partition is hard, never both.
func ownScope(role string, userID uint) func(*gorm.DB) *gorm.DB {
	if role == models.RoleTeacher {
		return func(db *gorm.DB) *gorm.DB {
			return db.Where("teacher_id = ?", userID)
		}
	}
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("student_id = ?", userID)
	}
}

// Create books an appointment for a student. Membership, teacher match and
// the conflict check run inside one transaction with the insert so that two
// concurrent requests cannot both pass the check before either writes.
func (s *AppointmentService) Create(studentID uint, req *CreateAppointmentRequest) (*models.Appointment, error) {
	start, err := utils.ParseTimeOfDay(req.StartTime)
	if err != nil {
		return nil, badInput("start_time: %w", err)
	}
	end, err := utils.ParseTimeOfDay(req.EndTime)
	if err != nil {
		return nil, badInput("end_time: %w", err)
	}
	if start >= end {
		return nil, ErrInvalidTimeRange
	}
	if _, err := time.Parse("2006-01-02", req.Date); err != nil {
		return nil, badInput("appointment_date: expected YYYY-MM-DD")
	}

	appointment := models.Appointment{
		ProjectID:   req.ProjectID,
		StudentID:   studentID,
		TeacherID:   req.TeacherID,
		Title:       req.Title,
		Description: req.Description,
		Date:        req.Date,
		StartTime:   start,
		EndTime:     end,
		Status:      models.AppointmentPending,
		Location:    req.Location,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		var memberCount int64
		if err := tx.Model(&models.ProjectMember{}).
			Where("project_id = ? AND student_id = ?", req.ProjectID, studentID).
			Count(&memberCount).Error; err != nil {
			return err
		}
		if memberCount == 0 {
			return ErrNotProjectMember
		}

		var project models.Project
		if err := tx.First(&project, req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotProjectMember
			}
			return err
		}
		if project.TeacherID != req.TeacherID {
			return ErrWrongTeacher
		}

		// Two intervals [s1,e1) and [s2,e2) intersect iff s1 < e2 AND s2 < e1.
		var conflicts int64
		if err := tx.Model(&models.Appointment{}).
			Where("teacher_id = ? AND date = ? AND status IN ?", req.TeacherID, req.Date, models.ActiveStatuses()).
			Where("start_time < ? AND end_time > ?", int(end), int(start)).
			Count(&conflicts).Error; err != nil {
			return err
		}
		if conflicts > 0 {
			return ErrTimeConflict
		}

		return tx.Create(&appointment).Error
	})
	if err != nil {
		return nil, err
	}

	s.notifyAppointmentCreated(&appointment)
	return &appointment, nil
}

// List returns the caller's appointments with conjunctive optional filters,
// ordered by date descending then start time ascending.
func (s *AppointmentService) List(userID uint, role string, req *AppointmentListRequest) ([]AppointmentView, error) {
	query := s.db.Model(&models.Appointment{}).
		Scopes(ownScope(role, userID)).
		Preload("Project").
		Preload("Student").
		Preload("Teacher")

	if req.Status != "" {
		query = query.Where("status = ?", req.Status)
	}
	if req.ProjectID != 0 {
		query = query.Where("project_id = ?", req.ProjectID)
	}
	if req.Date != "" {
		query = query.Where("date = ?", req.Date)
	}

	var rows []models.Appointment
	if err := query.Order("date DESC, start_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]AppointmentView, 0, len(rows))
	for i := range rows {
		views = append(views, buildView(&rows[i], role))
	}
	return views, nil
}

// Get returns one appointment under the caller's visibility partition,
// with its notes in creation order.
func (s *AppointmentService) Get(userID uint, role string, id uint) (*AppointmentDetail, error) {
	var appointment models.Appointment
	err := s.db.Scopes(ownScope(role, userID)).
		Preload("Project").
		Preload("Student").
		Preload("Teacher").
		First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentGone
		}
		return nil, err
	}

	var notes []models.AppointmentNote
	if err := s.db.Preload("User").
		Where("appointment_id = ?", id).
		Order("created_at ASC").
		Find(&notes).Error; err != nil {
		return nil, err
	}

	detail := &AppointmentDetail{
		AppointmentView: buildView(&appointment, role),
		Notes:           make([]NoteView, 0, len(notes)),
	}
	for i := range notes {
		view := NoteView{AppointmentNote: notes[i]}
		if notes[i].User != nil {
			view.AuthorName = notes[i].User.FullName()
			view.AuthorRole = notes[i].User.Role
		}
		view.User = nil
		detail.Notes = append(detail.Notes, view)
	}
	return detail, nil
}

// UpdateStatus applies one transition of the appointment lifecycle.
//
// Teachers move pending appointments to confirmed, rejected or completed,
// and confirmed ones to completed. Students can only cancel, and only while
// the appointment is pending or confirmed. Rejected, cancelled and completed
// are terminal.
func (s *AppointmentService) UpdateStatus(userID uint, role string, id uint, status string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := s.db.Scopes(ownScope(role, userID)).First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentGone
		}
		return nil, err
	}

	if err := checkTransition(role, appointment.Status, status); err != nil {
		return nil, err
	}

	if err := s.db.Model(&appointment).Update("status", status).Error; err != nil {
		return nil, err
	}

	s.notifyStatusChanged(&appointment, role)
	return &appointment, nil
}

func checkTransition(role, from, to string) error {
	switch role {
	case models.RoleTeacher:
		switch to {
		case models.AppointmentConfirmed, models.AppointmentRejected:
			if from != models.AppointmentPending {
				return ErrTerminalStatus
			}
		case models.AppointmentCompleted:
			if from != models.AppointmentPending && from != models.AppointmentConfirmed {
				return ErrTerminalStatus
			}
		default:
			return ErrTeacherStatus
		}
	default:
		if to != models.AppointmentCancelled {
			return ErrStudentStatus
		}
		if from != models.AppointmentPending && from != models.AppointmentConfirmed {
			return ErrTerminalStatus
		}
	}
	return nil
}

// AddNote appends a note to an appointment the caller participates in.
func (s *AppointmentService) AddNote(userID uint, role string, id uint, text string) (*models.AppointmentNote, error) {
	var appointment models.Appointment
	err := s.db.Scopes(ownScope(role, userID)).First(&appointment, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentGone
		}
		return nil, err
	}

	note := models.AppointmentNote{
		AppointmentID: id,
		UserID:        userID,
		Note:          text,
	}
	if err := s.db.Create(&note).Error; err != nil {
		return nil, err
	}

	s.notifyNoteAdded(&appointment, role)
	return &note, nil
}

func buildView(a *models.Appointment, viewerRole string) AppointmentView {
	view := AppointmentView{Appointment: *a}
	if a.Project != nil {
		view.ProjectTitle = a.Project.Title
	}
	if viewerRole == models.RoleTeacher {
		if a.Student != nil {
			view.CounterpartName = a.Student.FullName()
			view.CounterpartNo = a.Student.StudentNo
		}
	} else {
		if a.Teacher != nil {
			view.CounterpartName = a.Teacher.FullName()
			view.CounterpartNo = a.Teacher.TeacherNo
		}
	}
	// Participants are flattened into the view fields above.
	view.Project = nil
	view.Student = nil
	view.Teacher = nil
	return view
}

func (s *AppointmentService) notifyAppointmentCreated(a *models.Appointment) {
	if s.notifier == nil {
		return
	}
	s.notifier.Dispatch(&models.Notification{
		UserID:  a.TeacherID,
		Title:   "New appointment request",
		Message: fmt.Sprintf("%q requested for %s %s-%s", a.Title, a.Date, a.StartTime, a.EndTime),
		Type:    models.NotifyAppointmentCreated,
	})
}

func (s *AppointmentService) notifyStatusChanged(a *models.Appointment, actorRole string) {
	if s.notifier == nil {
		return
	}
	target := a.TeacherID
	if actorRole == models.RoleTeacher {
		target = a.StudentID
	}
	s.notifier.Dispatch(&models.Notification{
		UserID:  target,
		Title:   "Appointment " + a.Status,
		Message: fmt.Sprintf("%q on %s is now %s", a.Title, a.Date, a.Status),
		Type:    models.NotifyAppointmentStatus,
	})
}

func (s *AppointmentService) notifyNoteAdded(a *models.Appointment, actorRole string) {
	if s.notifier == nil {
		return
	}
	target := a.TeacherID
	if actorRole == models.RoleTeacher {
		target = a.StudentID
	}
	s.notifier.Dispatch(&models.Notification{
		UserID:  target,
		Title:   "New appointment note",
		Message: fmt.Sprintf("A note was added to %q (%s)", a.Title, a.Date),
		Type:    models.NotifyAppointmentNote,
	})
}
