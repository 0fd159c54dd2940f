package identity

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/AyaMbarek/Soa-Ecommerce/internal/domain"
)

var ErrEmptyName = errors.New("user name is required")

type UserRepository struct {
	mu    sync.RWMutex
	byID  map[string]domain.User
	order []string
}

func NewUserRepository() *UserRepository {
	return &UserRepository{byID: make(map[string]domain.User)}
}

func (r *UserRepository) Create(name, email string) (domain.User, error) {
	if strings.TrimSpace(name) == "" {
		return domain.User{}, ErrEmptyName
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	for _, taken := r.byID[id]; taken; _, taken = r.byID[id] {
		id = uuid.NewString()
	}

	user := domain.User{ID: id, Name: name, Email: email}
	r.byID[id] = user
	r.order = append(r.order, id)

	return user, nil
}

func (r *UserRepository) Get(id string) (domain.User, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[id]
	return u, ok
}

func (r *UserRepository) List() []domain.User {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]domain.User, 0, len(r.order))
	for _, id := range r.order {
		users = append(users, r.byID[id])
	}
	return users
}
