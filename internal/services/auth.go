package services

import (
	"errors"
	"time"

	"github.com/advisorhub/backend/internal/config"
	"github.com/advisorhub/backend/internal/models"
	"github.com/advisorhub/backend/internal/utils"
	"gorm.io/gorm"
)

type AuthService struct {
	db          *gorm.DB
	ldapService *LDAPService
	jwtConfig   *config.JWTConfig
}

func NewAuthService(db *gorm.DB, ldapCfg *config.LDAPConfig, jwtCfg *config.JWTConfig) *AuthService {
	return &AuthService{
		db:          db,
		ldapService: NewLDAPService(ldapCfg),
		jwtConfig:   jwtCfg,
	}
}

type RegisterRequest struct {
	Email      string `json:"email" binding:"required,email"`
	Password   string `json:"password" binding:"required,min=6"`
	FirstName  string `json:"first_name" binding:"required"`
	LastName   string `json:"last_name" binding:"required"`
	Role       string `json:"role" binding:"required,oneof=student teacher"`
	StudentNo  string `json:"student_id"`
	TeacherNo  string `json:"teacher_id"`
	Department string `json:"department"`
	Phone      string `json:"phone"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
	AuthType string `json:"auth_type"` // local, ldap
}

type AuthResponse struct {
	Token    string       `json:"token"`
	User     *models.User `json:"user"`
	ExpireAt time.Time    `json:"expire_at"`
}

// Register creates a local account with the student or teacher role and
// returns a fresh token so the client can sign in immediately.
func (s *AuthService) Register(req *RegisterRequest) (*AuthResponse, error) {
	var count int64
	s.db.Model(&models.User{}).Where("email = ?", req.Email).Count(&count)
	if count > 0 {
		return nil, ErrEmailTaken
	}

	if req.Role == models.RoleStudent && req.StudentNo == "" {
		return nil, badInput("student_id is required for students")
	}
	if req.Role == models.RoleTeacher && req.TeacherNo == "" {
		return nil, badInput("teacher_id is required for teachers")
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := models.User{
		Email:      req.Email,
		Password:   hash,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
		Role:       req.Role,
		StudentNo:  req.StudentNo,
		TeacherNo:  req.TeacherNo,
		Department: req.Department,
		Phone:      req.Phone,
		AuthType:   "local",
		IsActive:   true,
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}

	return s.issueToken(&user)
}

// Login authenticates a user locally or against LDAP and returns a JWT.
func (s *AuthService) Login(req *LoginRequest) (*AuthResponse, error) {
	var user *models.User
	var err error

	if req.AuthType == "" {
		req.AuthType = "local"
	}

	switch req.AuthType {
	case "local":
		user, err = s.localAuth(req.Email, req.Password)
	case "ldap":
		user, err = s.ldapAuth(req.Email, req.Password)
	default:
		return nil, badInput("invalid auth type")
	}
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user.LastLogin = &now
	s.db.Save(user)

	return s.issueToken(user)
}

func (s *AuthService) issueToken(user *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(user.ID, user.Email, user.Role, s.jwtConfig.ExpireHour)
	if err != nil {
		return nil, err
	}
	return &AuthResponse{
		Token:    token,
		User:     user,
		ExpireAt: time.Now().Add(time.Duration(s.jwtConfig.ExpireHour) * time.Hour),
	}, nil
}

func (s *AuthService) localAuth(email, password string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("email = ? AND auth_type = ?", email, "local").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrInvalidCredential
	}

	return &user, nil
}

// ldapAuth authenticates against the campus directory and maintains a local
// shadow account. Directory users default to the student role; an admin
// promotes advisors by hand.
func (s *AuthService) ldapAuth(email, password string) (*models.User, error) {
	ldapUser, err := s.ldapService.Authenticate(email, password)
	if err != nil {
		return nil, err
	}

	var user models.User
	err = s.db.Where("email = ? AND auth_type = ?", ldapUser.Email, "ldap").First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{
			Email:     ldapUser.Email,
			FirstName: ldapUser.GivenName,
			LastName:  ldapUser.Surname,
			StudentNo: ldapUser.Username,
			Role:      models.RoleStudent,
			AuthType:  "ldap",
			IsActive:  true,
		}
		if err := s.db.Create(&user).Error; err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}

	if !user.IsActive {
		return nil, ErrAccountDisabled
	}

	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *AuthService) GetUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=6"`
}

func (s *AuthService) ChangePassword(userID uint, req *ChangePasswordRequest) error {
	var user models.User
	if err := s.db.First(&user, userID).Error; err != nil {
		return errors.New("user not found")
	}

	if user.AuthType != "local" {
		return errors.New("directory accounts cannot change password here")
	}

	if !utils.CheckPassword(req.OldPassword, user.Password) {
		return errors.New("incorrect old password")
	}

	hash, err := utils.HashPassword(req.NewPassword)
	if err != nil {
		return err
	}

	user.Password = hash
	return s.db.Save(&user).Error
}

func (s *AuthService) IsLDAPEnabled() bool {
	return s.ldapService.IsEnabled()
}
