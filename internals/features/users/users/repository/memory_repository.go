package repository

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"sekolahku_backend/internals/constants"
	"sekolahku_backend/internals/features/users/users/model"
	helper "sekolahku_backend/internals/helpers"
)

// MemoryRepository: Repository in-memory untuk test service.
// Aturan superadmin terakhir sama dengan versi gorm.
type MemoryRepository struct {
	mu    sync.Mutex
	users map[uuid.UUID]model.AdminUserModel
}

var _ Repository = (*MemoryRepository)(nil)

func NewMemory() *MemoryRepository {
	return &MemoryRepository{users: map[uuid.UUID]model.AdminUserModel{}}
}

func (r *MemoryRepository) FindByID(_ context.Context, id uuid.UUID) (*model.AdminUserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (*model.AdminUserModel, error) {
	return r.findBy(func(u model.AdminUserModel) bool { return strings.EqualFold(u.Username, username) })
}

func (r *MemoryRepository) FindByEmail(_ context.Context, email string) (*model.AdminUserModel, error) {
	return r.findBy(func(u model.AdminUserModel) bool { return u.Email != nil && strings.EqualFold(*u.Email, email) })
}

func (r *MemoryRepository) findBy(match func(model.AdminUserModel) bool) (*model.AdminUserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if match(u) {
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *MemoryRepository) List(_ context.Context, q string, p helper.Paging) ([]model.AdminUserModel, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q = strings.ToLower(strings.TrimSpace(q))
	var all []model.AdminUserModel
	for _, u := range r.users {
		if q == "" || strings.Contains(u.Username, q) {
			all = append(all, u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].CreatedAt.Before(all[j].CreatedAt) })
	total := int64(len(all))
	from := p.Offset()
	if from < 0 {
		from = 0
	}
	if from > len(all) {
		from = len(all)
	}
	to := from + p.Limit()
	if to > len(all) {
		to = len(all)
	}
	return all[from:to], total, nil
}

func (r *MemoryRepository) Create(_ context.Context, u *model.AdminUserModel) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, x := range r.users {
		if strings.EqualFold(x.Username, u.Username) ||
			(u.Email != nil && x.Email != nil && strings.EqualFold(*x.Email, *u.Email)) {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_admin_users_username"}
		}
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	now := time.Now()
	u.CreatedAt, u.UpdatedAt = now, now
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryRepository) activeSupers() int {
	n := 0
	for _, u := range r.users {
		if u.Role == constants.RoleSuperadmin && u.IsActive {
			n++
		}
	}
	return n
}

func (r *MemoryRepository) Update(_ context.Context, id uuid.UUID, updates map[string]any) (*model.AdminUserModel, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	if losesSuperadmin(&u, updates) && r.activeSupers() <= 1 {
		return nil, ErrLastSuperadmin
	}
	for k, v := range updates {
		switch k {
		case "email":
			u.Email, _ = v.(*string)
		case "role":
			u.Role = v.(string)
		case "full_name":
			u.FullName, _ = v.(*string)
		case "phone":
			u.Phone, _ = v.(*string)
		case "avatar_url":
			u.AvatarURL, _ = v.(*string)
		case "is_active":
			u.IsActive = v.(bool)
		case "password_hash":
			u.PasswordHash = v.(string)
		}
	}
	u.UpdatedAt = time.Now()
	r.users[id] = u
	return &u, nil
}

func (r *MemoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if u.Role == constants.RoleSuperadmin && u.IsActive && r.activeSupers() <= 1 {
		return ErrLastSuperadmin
	}
	delete(r.users, id)
	return nil
}

func (r *MemoryRepository) TouchLogin(_ context.Context, id uuid.UUID, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.LastLoginAt = &at
	r.users[id] = u
	return nil
}
