package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/sirpyerre/pantry-api/internal/core/domain"
	"github.com/sirpyerre/pantry-api/internal/core/ports"
)

var discardLogger = zerolog.Nop()

var errStorage = errors.New("connection reset")

// stubClock hands out strictly increasing timestamps like a database would.
type stubClock struct{ t time.Time }

func (c *stubClock) next() time.Time {
	c.t = c.t.Add(time.Second)
	return c.t
}

func newClock() *stubClock {
	return &stubClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

// ---------------------------------------------------------------------------
// In-memory audited table shared by the stub repositories
// ---------------------------------------------------------------------------

type table[E any] struct {
	rows   map[int64]*E
	nextID int64
	clock  *stubClock
	audit  func(*E) *domain.Audit
	id     func(*E) *int64

	addErr    error
	updateErr error
	deleteErr error
	adds      int
	updates   int
}

func newTable[E any](audit func(*E) *domain.Audit, id func(*E) *int64) *table[E] {
	return &table[E]{rows: make(map[int64]*E), clock: newClock(), audit: audit, id: id}
}

func (t *table[E]) add(e *E) error {
	if t.addErr != nil {
		return t.addErr
	}
	t.adds++
	t.nextID++
	*t.id(e) = t.nextID
	a := t.audit(e)
	now := t.clock.next()
	a.CreatedAt, a.UpdatedAt, a.UpdatedBy = now, now, a.CreatedBy
	clone := *e
	t.rows[t.nextID] = &clone
	return nil
}

func (t *table[E]) get(id int64, what string) (*E, error) {
	e, ok := t.rows[id]
	if !ok || t.audit(e).IsDeleted {
		return nil, fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	clone := *e
	return &clone, nil
}

func (t *table[E]) find(match func(*E) bool) (*E, bool) {
	for _, id := range t.ids() {
		e := t.rows[id]
		if !t.audit(e).IsDeleted && match(e) {
			clone := *e
			return &clone, true
		}
	}
	return nil, false
}

func (t *table[E]) list(opts ports.ListOptions, match func(*E) bool) []*E {
	var out []*E
	for _, id := range t.ids() {
		e := t.rows[id]
		if t.audit(e).IsDeleted || (match != nil && !match(e)) {
			continue
		}
		clone := *e
		out = append(out, &clone)
	}
	if opts.Offset >= len(out) {
		return nil
	}
	out = out[opts.Offset:]
	if opts.Limit > 0 && opts.Limit < len(out) {
		out = out[:opts.Limit]
	}
	return out
}

func (t *table[E]) update(e *E, what string) error {
	if t.updateErr != nil {
		return t.updateErr
	}
	id := *t.id(e)
	stored, ok := t.rows[id]
	if !ok || t.audit(stored).IsDeleted {
		return fmt.Errorf("%s %d: %w", what, id, domain.ErrNotFound)
	}
	t.updates++
	a := t.audit(e)
	old := t.audit(stored)
	a.CreatedAt, a.CreatedBy = old.CreatedAt, old.CreatedBy
	a.UpdatedAt = t.clock.next()
	clone := *e
	t.rows[id] = &clone
	return nil
}

func (t *table[E]) softDelete(id, by int64) (bool, error) {
	if t.deleteErr != nil {
		return false, t.deleteErr
	}
	e, ok := t.rows[id]
	if !ok || t.audit(e).IsDeleted {
		return false, nil
	}
	a := t.audit(e)
	now := t.clock.next()
	a.IsDeleted, a.DeletedAt, a.DeletedBy, a.UpdatedAt = true, &now, domain.ActorRef(by), now
	return true, nil
}

func (t *table[E]) ids() []int64 {
	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// ---------------------------------------------------------------------------
// Entity repositories
// ---------------------------------------------------------------------------

type stubUserRepo struct{ *table[domain.User] }

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{newTable(
		func(u *domain.User) *domain.Audit { return &u.Audit },
		func(u *domain.User) *int64 { return &u.ID },
	)}
}

func (r *stubUserRepo) Add(_ context.Context, u *domain.User) error { return r.add(u) }
func (r *stubUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	return r.get(id, "user")
}
func (r *stubUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	if u, ok := r.find(func(u *domain.User) bool { return u.Email == email }); ok {
		return u, nil
	}
	return nil, fmt.Errorf("user with email %q: %w", email, domain.ErrNotFound)
}
func (r *stubUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.find(func(u *domain.User) bool { return u.Username == username }); ok {
		return u, nil
	}
	return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
}
func (r *stubUserRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.User, error) {
	return r.list(opts, nil), nil
}
func (r *stubUserRepo) Update(_ context.Context, u *domain.User) error { return r.update(u, "user") }
func (r *stubUserRepo) SoftDelete(_ context.Context, id, by int64) (bool, error) {
	return r.softDelete(id, by)
}

type stubCommentRepo struct{ *table[domain.Comment] }

func newStubCommentRepo() *stubCommentRepo {
	return &stubCommentRepo{newTable(
		func(c *domain.Comment) *domain.Audit { return &c.Audit },
		func(c *domain.Comment) *int64 { return &c.ID },
	)}
}

func (r *stubCommentRepo) Add(_ context.Context, c *domain.Comment) error { return r.add(c) }
func (r *stubCommentRepo) GetByID(_ context.Context, id int64) (*domain.Comment, error) {
	return r.get(id, "comment")
}
func (r *stubCommentRepo) ListByUser(_ context.Context, userID int64, opts ports.ListOptions) ([]*domain.Comment, error) {
	return r.list(opts, func(c *domain.Comment) bool { return c.UserID == userID }), nil
}
func (r *stubCommentRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.Comment, error) {
	return r.list(opts, nil), nil
}
func (r *stubCommentRepo) Update(_ context.Context, c *domain.Comment) error {
	return r.update(c, "comment")
}
func (r *stubCommentRepo) SoftDelete(_ context.Context, id, by int64) (bool, error) {
	return r.softDelete(id, by)
}

type stubIngredientRepo struct{ *table[domain.Ingredient] }

func newStubIngredientRepo() *stubIngredientRepo {
	return &stubIngredientRepo{newTable(
		func(i *domain.Ingredient) *domain.Audit { return &i.Audit },
		func(i *domain.Ingredient) *int64 { return &i.ID },
	)}
}

func (r *stubIngredientRepo) Add(_ context.Context, i *domain.Ingredient) error { return r.add(i) }
func (r *stubIngredientRepo) GetByID(_ context.Context, id int64) (*domain.Ingredient, error) {
	return r.get(id, "ingredient")
}
func (r *stubIngredientRepo) GetByName(_ context.Context, name string) (*domain.Ingredient, error) {
	if i, ok := r.find(func(i *domain.Ingredient) bool { return i.Name == name }); ok {
		return i, nil
	}
	return nil, fmt.Errorf("ingredient %q: %w", name, domain.ErrNotFound)
}
func (r *stubIngredientRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.Ingredient, error) {
	return r.list(opts, nil), nil
}
func (r *stubIngredientRepo) Update(_ context.Context, i *domain.Ingredient) error {
	return r.update(i, "ingredient")
}
func (r *stubIngredientRepo) SoftDelete(_ context.Context, id, by int64) (bool, error) {
	return r.softDelete(id, by)
}

type stubRoleRepo struct{ *table[domain.Role] }

func newStubRoleRepo() *stubRoleRepo {
	return &stubRoleRepo{newTable(
		func(r *domain.Role) *domain.Audit { return &r.Audit },
		func(r *domain.Role) *int64 { return &r.ID },
	)}
}

func (r *stubRoleRepo) Add(_ context.Context, role *domain.Role) error { return r.add(role) }
func (r *stubRoleRepo) GetByID(_ context.Context, id int64) (*domain.Role, error) {
	return r.get(id, "role")
}
func (r *stubRoleRepo) List(_ context.Context, opts ports.ListOptions) ([]*domain.Role, error) {
	return r.list(opts, nil), nil
}
func (r *stubRoleRepo) Update(_ context.Context, role *domain.Role) error {
	return r.update(role, "role")
}
func (r *stubRoleRepo) SoftDelete(_ context.Context, id, by int64) (bool, error) {
	return r.softDelete(id, by)
}

// ---------------------------------------------------------------------------
// Security and side-effect stubs
// ---------------------------------------------------------------------------

// stubHasher "hashes" by prefixing; the cost is encoded as a second prefix so
// NeedsRehash can be exercised.
type stubHasher struct {
	cost     string
	verified []string
	hashErr  error
}

func newStubHasher() *stubHasher { return &stubHasher{cost: "c1"} }

func (h *stubHasher) Hash(p string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + h.cost + ":" + p, nil
}

func (h *stubHasher) Verify(p, digest string) bool {
	h.verified = append(h.verified, digest)
	_, rest, ok := strings.Cut(strings.TrimPrefix(digest, "hashed:"), ":")
	return strings.HasPrefix(digest, "hashed:") && ok && rest == p
}

func (h *stubHasher) NeedsRehash(digest string) bool {
	return strings.HasPrefix(digest, "hashed:") && !strings.HasPrefix(digest, "hashed:"+h.cost+":")
}

type issued struct {
	subject, role, tenant int64
	ttl                   time.Duration
}

type stubCodec struct {
	issued []issued
	err    error
}

func (c *stubCodec) Issue(subject, role, tenant int64, ttl time.Duration) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	c.issued = append(c.issued, issued{subject, role, tenant, ttl})
	return fmt.Sprintf("token-%d-%d-%d", subject, role, tenant), nil
}

func (c *stubCodec) Parse(string) (*domain.Claims, error) {
	return nil, domain.ErrMalformedCredential
}

type stubResolver struct {
	role, tenant int64
	err          error
}

func (r stubResolver) Resolve(context.Context, *domain.User) (int64, int64, error) {
	return r.role, r.tenant, r.err
}

type stubLimiter struct {
	blocked  map[string]bool
	failures map[string]int
	resets   []string
	err      error
}

func newStubLimiter() *stubLimiter {
	return &stubLimiter{blocked: map[string]bool{}, failures: map[string]int{}}
}

func (l *stubLimiter) Allow(_ context.Context, key string) (bool, error) {
	if l.err != nil {
		return false, l.err
	}
	return !l.blocked[key], nil
}

func (l *stubLimiter) Fail(_ context.Context, key string) error {
	l.failures[key]++
	return nil
}

func (l *stubLimiter) Reset(_ context.Context, key string) error {
	l.resets = append(l.resets, key)
	return nil
}

type stubTrail struct {
	events []domain.AuditEvent
	err    error
}

func (s *stubTrail) Record(_ context.Context, e domain.AuditEvent) error {
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, e)
	return nil
}
