package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskkeeper/internal/common"
	"github.com/dmitrijs2005/taskkeeper/internal/logging"
	"github.com/dmitrijs2005/taskkeeper/internal/server/models"
	"github.com/dmitrijs2005/taskkeeper/internal/server/repositories/repomanager"
	"golang.org/x/crypto/bcrypt"
)

const (
	minPasswordLength = 8
	// bcrypt refuses longer inputs
	maxPasswordBytes = 72
)

// UserInput is the body of create and update requests. On update an empty
// password leaves the stored hash unchanged.
type UserInput struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"notblank,max=256,email"`
	Password string `json:"password"`
}

type UserService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
	now         func() time.Time
	hashCost    int
}

func NewUserService(m repomanager.RepositoryManager, l logging.Logger) *UserService {
	return &UserService{
		repomanager: m,
		logger:      l.With("module", "user_service"),
		now:         func() time.Time { return time.Now().UTC() },
		hashCost:    bcrypt.DefaultCost,
	}
}

func (s *UserService) List(ctx context.Context) ([]models.UserSummary, error) {
	list, err := s.repomanager.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	return list, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.UserSummary, error) {
	if !validID(id) {
		return nil, common.ErrorNotFound
	}
	return s.repomanager.Users().GetSummary(ctx, id)
}

func (s *UserService) Create(ctx context.Context, in UserInput) (*models.UserSummary, error) {
	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if err := checkPassword(in.Password); err != nil {
		return nil, err
	}

	repo := s.repomanager.Users()

	if err := s.checkEmailFree(ctx, repo.GetByEmail, in.Email, ""); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		ID:           newID(),
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	if _, err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, emailTaken(in.Email)
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	s.logger.Info(ctx, "user created", "id", user.ID)
	return &models.UserSummary{ID: user.ID, Name: user.Name, Email: user.Email}, nil
}

// Update changes name and email, and the password when one is given.
func (s *UserService) Update(ctx context.Context, id string, in UserInput) error {
	if err := validateStruct(in); err != nil {
		return err
	}
	if in.Password != "" {
		if err := checkPassword(in.Password); err != nil {
			return err
		}
	}
	if !validID(id) {
		return common.ErrorNotFound
	}

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		repo := m.Users()

		user, err := repo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := s.checkEmailFree(ctx, repo.GetByEmail, in.Email, id); err != nil {
			return err
		}

		user.Name = in.Name
		user.Email = in.Email
		if in.Password != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
			if err != nil {
				return fmt.Errorf("error hashing password: %w", err)
			}
			user.PasswordHash = hash
		}

		if err := repo.Update(ctx, user); err != nil {
			if errors.Is(err, common.ErrorAlreadyExists) {
				return emailTaken(in.Email)
			}
			return err
		}
		return nil
	})
	if err != nil {
		return wrap("error updating user", err)
	}
	return nil
}

// Delete removes the user and every task it owns.
func (s *UserService) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return common.ErrorNotFound
	}

	err := s.repomanager.WithTx(ctx, func(ctx context.Context, m repomanager.RepositoryManager) error {
		return m.Users().Delete(ctx, id)
	})
	if err != nil {
		return wrap("error deleting user", err)
	}

	s.logger.Info(ctx, "user deleted", "id", id)
	return nil
}

func (s *UserService) checkEmailFree(ctx context.Context, lookup func(context.Context, string) (*models.User, error), email, selfID string) error {
	existing, err := lookup(ctx, email)
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return nil
	case err != nil:
		return fmt.Errorf("error checking email: %w", err)
	case existing.ID == selfID:
		return nil
	default:
		return emailTaken(email)
	}
}

func emailTaken(email string) error {
	return common.Validationf("Email %s is already registered.", email)
}

// checkPassword measures bytes, not runes.
func checkPassword(p string) error {
	if len(p) < minPasswordLength {
		return common.Validationf("The password field must be at least %d characters.", minPasswordLength)
	}
	if len(p) > maxPasswordBytes {
		return common.Validationf("The password field must be at most %d bytes.", maxPasswordBytes)
	}
	return nil
}
