package repository

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"customerhub/internal/errors"
	"customerhub/internal/model"
	"customerhub/internal/store"
)

const bcryptCost = 10

var nationalIDPattern = regexp.MustCompile(`^\d{9}$`)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	// FindByEmail returns nil, nil when no user matches.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// FindByID returns nil, nil when no user matches.
	FindByID(ctx context.Context, id string) (*model.User, error)
	Create(ctx context.Context, email, password, name, nationalID string) (*model.User, error)
	VerifyPassword(password, hash string) bool
	List(ctx context.Context) ([]model.PublicUser, error)
}

type userRepository struct {
	doc  *store.Document[[]model.User]
	cost int
	now  func() time.Time
}

// NewUserRepository builds a repository over the users document.
func NewUserRepository(s *store.FileStore, document string) UserRepository {
	return newUserRepository(s, document, bcryptCost)
}

func newUserRepository(s *store.FileStore, document string, cost int) *userRepository {
	return &userRepository{
		doc:  store.NewDocument(s, document, func() []model.User { return []model.User{} }),
		cost: cost,
		now:  time.Now,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	users, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	email = normalizeEmail(email)
	for i := range users {
		if strings.ToLower(users[i].Email) == email {
			return &users[i], nil
		}
	}
	return nil, nil
}

func (r *userRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	users, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].ID == id {
			return &users[i], nil
		}
	}
	return nil, nil
}

// Create validates the national id, hashes the password and appends the user.
// Uniqueness of email and national id is checked under the document's write lock.
func (r *userRepository) Create(ctx context.Context, email, password, name, nationalID string) (*model.User, error) {
	if !nationalIDPattern.MatchString(nationalID) {
		return nil, errors.ErrInvalidIDNumber
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), r.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := model.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: string(hashed),
		Name:         strings.TrimSpace(name),
		NationalID:   nationalID,
		CreatedAt:    r.now().UTC(),
	}

	err = r.doc.Update(ctx, func(users []model.User) ([]model.User, error) {
		for _, existing := range users {
			if strings.ToLower(existing.Email) == user.Email {
				return nil, errors.ErrEmailTaken
			}
			if existing.NationalID == user.NationalID {
				return nil, errors.ErrIDNumberTaken
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// VerifyPassword compares password against a bcrypt hash in constant time.
func (r *userRepository) VerifyPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (r *userRepository) List(ctx context.Context) ([]model.PublicUser, error) {
	users, err := r.doc.Load(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Public())
	}
	return out, nil
}
