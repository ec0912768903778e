package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/totegamma/hateoas-playground/internal/domain"
)

// --- mocks ---

type mockRepo struct {
	users  []domain.User
	groups []domain.Group
	calls  int
	err    error
}

func (m *mockRepo) ListUsers(ctx context.Context) ([]domain.User, error) {
	m.calls++
	return m.users, m.err
}

func (m *mockRepo) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	m.calls++
	if m.err != nil {
		return domain.User{}, m.err
	}
	for _, u := range m.users {
		if u.ID() == id {
			return u, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user", ID: id.String()}
}

func (m *mockRepo) ListGroupMembers(ctx context.Context, group string) ([]domain.User, error) {
	m.calls++
	var members []domain.User
	for _, u := range m.users {
		if u.MemberOf(group) {
			members = append(members, u)
		}
	}
	return members, m.err
}

func (m *mockRepo) ListGroups(ctx context.Context) ([]domain.Group, error) {
	m.calls++
	return m.groups, m.err
}

func (m *mockRepo) GetGroup(ctx context.Context, name string) (domain.Group, error) {
	m.calls++
	if m.err != nil {
		return domain.Group{}, m.err
	}
	for _, g := range m.groups {
		if g.Name() == name {
			return g, nil
		}
	}
	return domain.Group{}, domain.NotFoundError{Resource: "group", ID: name}
}

type mockCache struct {
	entries map[string][]byte
	getErr  error
	setErr  error
}

func newMockCache() *mockCache {
	return &mockCache{entries: map[string][]byte{}}
}

func (m *mockCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if m.getErr != nil {
		return nil, false, m.getErr
	}
	v, ok := m.entries[key]
	return v, ok, nil
}

func (m *mockCache) Set(ctx context.Context, key string, value []byte) error {
	if m.setErr != nil {
		return m.setErr
	}
	m.entries[key] = value
	return nil
}

func fixture() *mockRepo {
	admin, _ := domain.NewGroup("admin")
	staff, _ := domain.NewGroup("staff")
	alice, _ := domain.NewUser(uuid.MustParse("11111111-1111-4111-8111-111111111111"), "alice", "alice@example.com", "hash", []domain.Group{admin, staff})
	bob, _ := domain.NewUser(uuid.MustParse("22222222-2222-4222-8222-222222222222"), "bob", "bob@example.com", "hash", []domain.Group{staff})
	return &mockRepo{
		users:  []domain.User{alice, bob},
		groups: []domain.Group{admin, staff},
	}
}
