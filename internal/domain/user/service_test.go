package user

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*User
	byMail map[string]int64
	nextID int64
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{
		users:  make(map[int64]*User),
		byMail: make(map[string]int64),
		nextID: 1,
	}
}

func (r *memoryUserRepo) Create(ctx context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	copyUser := *u
	r.users[u.ID] = &copyUser
	r.byMail[u.Email] = u.ID
	return nil
}

func (r *memoryUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byMail[email]
	if !ok {
		return nil, ErrNotFound
	}
	copyUser := *r.users[id]
	return &copyUser, nil
}

func (r *memoryUserRepo) GetByID(ctx context.Context, id int64) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	copyUser := *u
	return &copyUser, nil
}

func (r *memoryUserRepo) List(ctx context.Context) ([]User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]User, 0, len(r.users))
	for _, u := range r.users {
		res = append(res, *u)
	}
	return res, nil
}

func (r *memoryUserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *memoryUserRepo) Deactivate(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrNotFound
	}
	u.IsActive = false
	return nil
}

func newTestService(repo Repository) *Service {
	svc := NewService(repo)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestRegisterAndLogin(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, " John@Example.com ", "s3cret", RoleStaff)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Email != "john@example.com" {
		t.Fatalf("expected normalized email, got %q", u.Email)
	}
	if u.PasswordHash == "s3cret" || u.PasswordHash == "" {
		t.Fatalf("password should be hashed")
	}

	if _, err := svc.Login(ctx, "john@example.com", "s3cret"); err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if _, err := svc.Register(ctx, "john@example.com", "another", RoleStaff); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected email taken error, got %v", err)
	}
	if _, err := svc.Login(ctx, "john@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials error")
	}
	if _, err := svc.Register(ctx, "x@example.com", "pw", "superuser"); !errors.Is(err, ErrInvalidRole) {
		t.Fatalf("expected invalid role error")
	}

	if err := svc.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Login(ctx, "john@example.com", "s3cret"); !errors.Is(err, ErrInactiveUser) {
		t.Fatalf("expected inactive user error")
	}
}

func TestBootstrapIsIdempotent(t *testing.T) {
	svc := newTestService(newMemoryUserRepo())
	ctx := context.Background()

	created, err := svc.Bootstrap(ctx, "admin@genz.school", "pass123")
	if err != nil || !created {
		t.Fatalf("expected admin created, got %v %v", created, err)
	}
	created, err = svc.Bootstrap(ctx, "admin@genz.school", "pass123")
	if err != nil || created {
		t.Fatalf("expected second bootstrap to be a no-op, got %v %v", created, err)
	}
	created, err = svc.Bootstrap(ctx, "", "")
	if err != nil || created {
		t.Fatalf("expected empty bootstrap to be skipped")
	}

	u, err := svc.Login(ctx, "admin@genz.school", "pass123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if u.Role != RoleAdmin {
		t.Fatalf("expected admin role, got %s", u.Role)
	}
}

func TestAuthorizeRefusesRevokedAccounts(t *testing.T) {
	repo := newMemoryUserRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	u, err := svc.Register(ctx, "staff@genz.school", "pass123", RoleStaff)
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	got, err := svc.Authorize(ctx, u.ID)
	if err != nil || got.Role != RoleStaff {
		t.Fatalf("expected active staff, got %+v %v", got, err)
	}

	if err := svc.Deactivate(ctx, u.ID); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	if _, err := svc.Authorize(ctx, u.ID); !errors.Is(err, ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser, got %v", err)
	}
	if _, err := svc.Authorize(ctx, 999); !errors.Is(err, ErrInactiveUser) {
		t.Fatalf("expected ErrInactiveUser for missing account, got %v", err)
	}
}
