package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/models"
	"github.com/Mercantec-GHC/h2-projekt-h2-2025-gruppe-2/utils"
)

type UserService struct {
	DB         *gorm.DB
	Clock      utils.Clock
	workFactor int
}

func NewUserService(db *gorm.DB, clock utils.Clock) *UserService {
	if clock == nil {
		clock = utils.UTCClock{}
	}
	workFactor, err := strconv.Atoi(utils.EnvOrDefault("BCRYPT_WORK_FACTOR", "12"))
	if err != nil || workFactor < bcrypt.MinCost || workFactor > bcrypt.MaxCost {
		workFactor = 12
	}
	return &UserService{DB: db, Clock: clock, workFactor: workFactor}
}

// Register creates a user with the default User role.
func (s *UserService) Register(email, username, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	username = strings.TrimSpace(username)

	if !utils.ValidPassword(password) {
		return nil, ErrWeakPassword
	}

	var count int64
	if err := s.DB.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if count > 0 {
		return nil, ErrEmailTaken
	}

	var role models.Role
	if err := s.DB.First(&role, "name = ?", models.RoleUser).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRoleNotFound
		}
		return nil, fmt.Errorf("load default role: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.workFactor)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Email:          email,
		Username:       username,
		HashedPassword: string(hash),
		RoleID:         role.ID,
	}
	if err := s.DB.Create(&user).Error; err != nil {
		if isDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	user.Role = role
	return &user, nil
}

// Authenticate verifies the credentials and stamps LastLogin. The same error
// covers unknown email and wrong password.
func (s *UserService) Authenticate(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	var user models.User
	err := s.DB.Preload("Role").First(&user, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("load user: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.HashedPassword), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	now := s.Clock.Now()
	if err := s.DB.Model(&user).Update("last_login", now).Error; err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now
	return &user, nil
}

func (s *UserService) GetAll() ([]models.User, error) {
	var users []models.User
	err := s.DB.Preload("Role").Find(&users).Error
	return users, err
}

func (s *UserService) GetByID(id string) (models.User, error) {
	var user models.User
	err := s.DB.Preload("Role").First(&user, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrUserNotFound
		}
		return user, err
	}
	return user, nil
}

func (s *UserService) Update(id string, email, username string) (models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return user, err
	}

	updates := map[string]interface{}{}
	if email = strings.ToLower(strings.TrimSpace(email)); email != "" && email != user.Email {
		updates["email"] = email
	}
	if username = strings.TrimSpace(username); username != "" && username != user.Username {
		updates["username"] = username
	}
	if len(updates) == 0 {
		return user, nil
	}

	if err := s.DB.Model(&user).Updates(updates).Error; err != nil {
		if isDuplicateKey(err) {
			return user, ErrEmailTaken
		}
		return user, fmt.Errorf("update user %s: %w", id, err)
	}
	return s.GetByID(id)
}

func (s *UserService) Delete(id string) (models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return user, err
	}
	if err := s.DB.Delete(&models.User{}, "id = ?", id).Error; err != nil {
		return user, fmt.Errorf("delete user %s: %w", id, err)
	}
	return user, nil
}

// ChangeRole assigns the named role to the user.
func (s *UserService) ChangeRole(id, roleName string) (models.User, error) {
	user, err := s.GetByID(id)
	if err != nil {
		return user, err
	}

	var role models.Role
	if err := s.DB.First(&role, "name = ?", roleName).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user, ErrRoleNotFound
		}
		return user, fmt.Errorf("load role %s: %w", roleName, err)
	}

	if err := s.DB.Model(&user).Update("role_id", role.ID).Error; err != nil {
		return user, fmt.Errorf("change role of user %s: %w", id, err)
	}
	user.RoleID = role.ID
	user.Role = role
	return user, nil
}
