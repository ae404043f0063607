package repo

import (
	"fmt"
	"strings"

	"github.com/nazeru/shop-csv-go/internal/shop/domain"
	"github.com/nazeru/shop-csv-go/pkg/csvstore"
)

const usersTable = "users"

// The password column stores the bcrypt hash.
var userColumns = []string{"id", "email", "password", "role"}

type UserRepo struct {
	store *csvstore.Store
}

func NewUserRepo(store *csvstore.Store) *UserRepo {
	return &UserRepo{store: store}
}

func (r *UserRepo) FindAll() ([]domain.User, error) {
	rows, err := r.store.ReadAll(usersTable)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, domain.User{
			ID:           domain.UserID(row["id"]),
			Email:        row["email"],
			PasswordHash: row["password"],
			Role:         domain.Role(row["role"]),
		})
	}
	return users, nil
}

func (r *UserRepo) FindByID(id domain.UserID) (domain.User, error) {
	all, err := r.FindAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range all {
		if u.ID == id {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func (r *UserRepo) FindByEmail(email string) (domain.User, error) {
	all, err := r.FindAll()
	if err != nil {
		return domain.User{}, err
	}
	for _, u := range all {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, fmt.Errorf("user %s: %w", email, domain.ErrNotFound)
}

// Create appends a new user. A duplicate email is rejected.
func (r *UserRepo) Create(user domain.User) error {
	all, err := r.FindAll()
	if err != nil {
		return err
	}
	for _, u := range all {
		if strings.EqualFold(u.Email, user.Email) {
			return fmt.Errorf("user %s: %w", user.Email, domain.ErrAlreadyExists)
		}
	}
	all = append(all, user)
	rows := make([]csvstore.Row, 0, len(all))
	for _, u := range all {
		rows = append(rows, csvstore.Row{
			"id":       string(u.ID),
			"email":    u.Email,
			"password": u.PasswordHash,
			"role":     string(u.Role),
		})
	}
	return r.store.WriteAll(usersTable, userColumns, rows)
}
