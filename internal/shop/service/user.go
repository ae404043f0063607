package service

import (
	"fmt"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/internal/shop/repo"
)

type UserService struct {
	users *repo.UserRepo
}

func NewUserService(users *repo.UserRepo) *UserService {
	return &UserService{users: users}
}

// Register creates a user with a bcrypt-hashed password. Duplicate emails
// are rejected with ErrAlreadyExists.
func (s *UserService) Register(email, password string, role domain.Role) (domain.User, error) {
	if role != domain.RoleAdmin {
		role = domain.RoleClient
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}
	user := domain.User{
		ID:           domain.UserID(uuid.NewString()),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.users.Create(user); err != nil {
		return domain.User{}, err
	}
	return user, nil
}

// Authenticate checks email+password. Unknown email and wrong password
// both come back as ErrNotFound so the caller cannot tell them apart.
func (s *UserService) Authenticate(email, password string) (domain.User, error) {
	user, err := s.users.FindByEmail(email)
	if err != nil {
		return domain.User{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
	}
	return user, nil
}

func (s *UserService) FindByID(id domain.UserID) (domain.User, error) {
	return s.users.FindByID(id)
}

func (s *UserService) ListAll() ([]domain.User, error) {
	return s.users.FindAll()
}
