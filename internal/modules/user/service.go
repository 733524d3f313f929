package user

import (
	"errors"

	"github.com/inknote/core/internal/models"
	"github.com/inknote/core/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound       = errors.New("用户不存在")
	ErrUserExists         = errors.New("用户名或邮箱已被使用")
	ErrPasswordMismatch   = errors.New("密码不匹配")
	ErrInvalidCredentials = errors.New("邮箱或密码不正确")
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

type RegisterDTO struct {
	Name            string `json:"name"`
	Username        string `json:"username" binding:"required"`
	Email           string `json:"email" binding:"required"`
	Password        string `json:"password" binding:"required"`
	ConfirmPassword string `json:"confirmPassword"`
}

type LoginDTO struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ProfileUpdateDTO struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the login/register response body.
type AuthResult struct {
	Token string    `json:"token"`
	User  userBrief `json:"user"`
}

type userBrief struct {
	ID       string `json:"id"`
	Name     string `json:"name,omitempty"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (s *Service) Register(dto *RegisterDTO) (*AuthResult, error) {
	if dto.Password != dto.ConfirmPassword {
		return nil, ErrPasswordMismatch
	}

	var count int64
	err := s.db.Model(&models.UserModel{}).
		Where("username = ? OR email = ?", dto.Username, dto.Email).
		Count(&count).Error
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrUserExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.UserModel{
		Name:     dto.Name,
		Username: dto.Username,
		Email:    dto.Email,
		Password: string(hashed),
	}
	if err := s.db.Create(&user).Error; err != nil {
		return nil, err
	}
	return s.issueToken(&user)
}

func (s *Service) Login(dto *LoginDTO) (*AuthResult, error) {
	var user models.UserModel
	err := s.db.Where("email = ?", dto.Email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(dto.Password)) != nil {
		return nil, ErrInvalidCredentials
	}
	return s.issueToken(&user)
}

func (s *Service) Profile(userID string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("id = ?", userID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile applies only the fields the client sent; empty strings leave
// the stored value alone, matching the legacy PUT semantics.
func (s *Service) UpdateProfile(userID string, dto *ProfileUpdateDTO) (*models.UserModel, error) {
	user, err := s.Profile(userID)
	if err != nil {
		return nil, err
	}

	if dto.Username != "" {
		user.Username = dto.Username
	}
	if dto.Email != "" {
		user.Email = dto.Email
	}
	if dto.Password != "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.Password = string(hashed)
	}

	if err := s.db.Save(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) FindByEmail(email string) (*models.UserModel, error) {
	var user models.UserModel
	err := s.db.Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *Service) issueToken(user *models.UserModel) (*AuthResult, error) {
	token, err := jwt.Sign(user.ID, jwt.DefaultTTL)
	if err != nil {
		return nil, err
	}
	return &AuthResult{
		Token: token,
		User: userBrief{
			ID:       user.ID,
			Name:     user.Name,
			Email:    user.Email,
			Username: user.Username,
		},
	}, nil
}
