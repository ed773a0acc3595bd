package api

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"genz-ignite/internal/domain/announcement"
	"genz-ignite/internal/domain/complaint"
	"genz-ignite/internal/domain/member"
	"genz-ignite/internal/domain/policy"
	"genz-ignite/internal/domain/poll"
	"genz-ignite/internal/domain/stats"
	"genz-ignite/internal/domain/user"
)

type testUserRepo struct {
	mu     sync.Mutex
	users  map[int64]*user.User
	byMail map[string]int64
	nextID int64
}

func newTestUserRepo() *testUserRepo {
	return &testUserRepo{
		users:  make(map[int64]*user.User),
		byMail: make(map[string]int64),
		nextID: 1,
	}
}

func (r *testUserRepo) Create(ctx context.Context, u *user.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byMail[u.Email]; ok {
		return user.ErrEmailTaken
	}
	u.ID = r.nextID
	r.nextID++
	u.CreatedAt = time.Now()
	copyUser := *u
	r.users[u.ID] = &copyUser
	r.byMail[u.Email] = u.ID
	return nil
}

func (r *testUserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byMail[email]
	if !ok {
		return nil, user.ErrNotFound
	}
	copyUser := *r.users[id]
	return &copyUser, nil
}

func (r *testUserRepo) GetByID(ctx context.Context, id int64) (*user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, user.ErrNotFound
	}
	copyUser := *u
	return &copyUser, nil
}

func (r *testUserRepo) List(ctx context.Context) ([]user.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := make([]user.User, 0, len(r.users))
	for _, u := range r.users {
		res = append(res, *u)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *testUserRepo) UpdateRole(ctx context.Context, id int64, role string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.Role = role
	return nil
}

func (r *testUserRepo) Deactivate(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return user.ErrNotFound
	}
	u.IsActive = false
	return nil
}

type testPolicyRepo struct {
	mu     sync.Mutex
	items  map[int64]*policy.Policy
	nextID int64
}

func newTestPolicyRepo() *testPolicyRepo {
	return &testPolicyRepo{items: make(map[int64]*policy.Policy), nextID: 1}
}

func (r *testPolicyRepo) Create(ctx context.Context, p *policy.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = r.nextID
	r.nextID++
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	c := *p
	r.items[p.ID] = &c
	return nil
}

func (r *testPolicyRepo) GetByID(ctx context.Context, id int64) (*policy.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, policy.ErrNotFound
	}
	c := *p
	return &c, nil
}

func (r *testPolicyRepo) List(ctx context.Context, f policy.Filter) ([]policy.Policy, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q := strings.ToLower(f.Query)
	res := []policy.Policy{}
	for _, p := range r.items {
		if f.Category != "" && p.Category != f.Category {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(p.Title+" "+p.Description), q) {
			continue
		}
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].Votes != res[j].Votes {
			return res[i].Votes > res[j].Votes
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *testPolicyRepo) Update(ctx context.Context, p *policy.Policy) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.items[p.ID]
	if !ok {
		return policy.ErrNotFound
	}
	p.CreatedAt = old.CreatedAt
	p.UpdatedAt = time.Now()
	c := *p
	r.items[p.ID] = &c
	return nil
}

func (r *testPolicyRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return policy.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *testPolicyRepo) SetVotes(ctx context.Context, id, votes int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return policy.ErrNotFound
	}
	p.Votes = votes
	return nil
}

type testPollRepo struct {
	mu     sync.Mutex
	items  map[int64]*poll.Option
	nextID int64
}

func newTestPollRepo() *testPollRepo {
	return &testPollRepo{items: make(map[int64]*poll.Option), nextID: 1}
}

func (r *testPollRepo) Create(ctx context.Context, o *poll.Option) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o.ID = r.nextID
	r.nextID++
	o.CreatedAt = time.Now()
	c := *o
	r.items[o.ID] = &c
	return nil
}

func (r *testPollRepo) GetByID(ctx context.Context, id int64) (*poll.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return nil, poll.ErrNotFound
	}
	c := *o
	return &c, nil
}

func (r *testPollRepo) List(ctx context.Context) ([]poll.Option, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []poll.Option{}
	for _, o := range r.items {
		res = append(res, *o)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (r *testPollRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return poll.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *testPollRepo) SetVotes(ctx context.Context, id, votes int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.items[id]
	if !ok {
		return poll.ErrNotFound
	}
	o.Votes = votes
	return nil
}

type testAnnouncementRepo struct {
	mu     sync.Mutex
	items  map[int64]*announcement.Announcement
	nextID int64
}

func newTestAnnouncementRepo() *testAnnouncementRepo {
	return &testAnnouncementRepo{items: make(map[int64]*announcement.Announcement), nextID: 1}
}

func (r *testAnnouncementRepo) Create(ctx context.Context, a *announcement.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a.ID = r.nextID
	r.nextID++
	// Strictly increasing so ordering by time is deterministic.
	a.CreatedAt = time.Unix(a.ID, 0)
	a.UpdatedAt = a.CreatedAt
	c := *a
	r.items[a.ID] = &c
	return nil
}

func (r *testAnnouncementRepo) GetByID(ctx context.Context, id int64) (*announcement.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return nil, announcement.ErrNotFound
	}
	c := *a
	return &c, nil
}

func (r *testAnnouncementRepo) List(ctx context.Context, f announcement.Filter) ([]announcement.Announcement, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []announcement.Announcement{}
	for _, a := range r.items {
		if f.Category != "" && a.Category != f.Category {
			continue
		}
		if f.Query != "" && !strings.Contains(a.Title+" "+a.Content, f.Query) {
			continue
		}
		res = append(res, *a)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].IsPinned != res[j].IsPinned {
			return res[i].IsPinned
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res, nil
}

func (r *testAnnouncementRepo) Update(ctx context.Context, a *announcement.Announcement) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	old, ok := r.items[a.ID]
	if !ok {
		return announcement.ErrNotFound
	}
	a.CreatedAt = old.CreatedAt
	c := *a
	r.items[a.ID] = &c
	return nil
}

func (r *testAnnouncementRepo) SetPinned(ctx context.Context, id int64, pinned bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.items[id]
	if !ok {
		return announcement.ErrNotFound
	}
	a.IsPinned = pinned
	return nil
}

func (r *testAnnouncementRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return announcement.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type testMemberRepo struct {
	mu     sync.Mutex
	items  map[int64]*member.Member
	nextID int64
}

func newTestMemberRepo() *testMemberRepo {
	return &testMemberRepo{items: make(map[int64]*member.Member), nextID: 1}
}

func (r *testMemberRepo) Create(ctx context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now()
	c := *m
	r.items[m.ID] = &c
	return nil
}

func (r *testMemberRepo) GetByID(ctx context.Context, id int64) (*member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.items[id]
	if !ok {
		return nil, member.ErrNotFound
	}
	c := *m
	return &c, nil
}

func (r *testMemberRepo) List(ctx context.Context) ([]member.Member, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []member.Member{}
	for _, m := range r.items {
		res = append(res, *m)
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].DisplayOrder != res[j].DisplayOrder {
			return res[i].DisplayOrder < res[j].DisplayOrder
		}
		return res[i].ID < res[j].ID
	})
	return res, nil
}

func (r *testMemberRepo) Update(ctx context.Context, m *member.Member) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[m.ID]; !ok {
		return member.ErrNotFound
	}
	c := *m
	r.items[m.ID] = &c
	return nil
}

func (r *testMemberRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return member.ErrNotFound
	}
	delete(r.items, id)
	return nil
}

type testComplaintRepo struct {
	mu    sync.Mutex
	items []*complaint.Complaint
}

func (r *testComplaintRepo) Create(ctx context.Context, c *complaint.Complaint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	c.ID = int64(len(r.items) + 1)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	cp := *c
	r.items = append(r.items, &cp)
	return nil
}

func (r *testComplaintRepo) GetByTrackID(ctx context.Context, trackID uuid.UUID) (*complaint.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.TrackID == trackID {
			cp := *c
			return &cp, nil
		}
	}
	return nil, complaint.ErrNotFound
}

func (r *testComplaintRepo) List(ctx context.Context, status *string, limit int) ([]complaint.Complaint, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	res := []complaint.Complaint{}
	for i := len(r.items) - 1; i >= 0; i-- {
		c := r.items[i]
		if status != nil && c.Status != *status {
			continue
		}
		res = append(res, *c)
		if limit > 0 && len(res) == limit {
			break
		}
	}
	return res, nil
}

func (r *testComplaintRepo) UpdateStatus(ctx context.Context, id int64, status string, reply *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.items {
		if c.ID == id {
			c.Status = status
			if reply != nil {
				c.AdminReply = reply
			}
			return nil
		}
	}
	return complaint.ErrNotFound
}

func (r *testComplaintRepo) CountByStatus(ctx context.Context, status string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, c := range r.items {
		if c.Status == status {
			n++
		}
	}
	return n, nil
}

type testStatsRepo struct {
	policies      *testPolicyRepo
	members       *testMemberRepo
	announcements *testAnnouncementRepo
	calls         int
}

func (r *testStatsRepo) Summary(ctx context.Context) (stats.Summary, error) {
	r.calls++
	var s stats.Summary
	r.policies.mu.Lock()
	for _, p := range r.policies.items {
		s.Policies++
		if p.Status == policy.StatusCompleted {
			s.CompletedPolicies++
		}
	}
	r.policies.mu.Unlock()
	r.members.mu.Lock()
	s.Members = int64(len(r.members.items))
	r.members.mu.Unlock()
	r.announcements.mu.Lock()
	s.Announcements = int64(len(r.announcements.items))
	r.announcements.mu.Unlock()
	return s, nil
}
