package repository

import (
	"context"
	"slices"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/totegamma/hateoas-playground/internal/config"
	"github.com/totegamma/hateoas-playground/internal/domain"
)

// FixtureRepository serves a fixed, read-only set of users and groups.
// It is safe for concurrent use.
type FixtureRepository struct {
	users  []domain.User
	groups []domain.Group
}

// NewFixtureRepository derives the group list from users, in order of first appearance.
func NewFixtureRepository(users []domain.User) *FixtureRepository {
	var groups []domain.Group
	seen := make(map[string]bool)
	for _, user := range users {
		for _, g := range user.Groups() {
			if seen[g.Name()] {
				continue
			}
			seen[g.Name()] = true
			groups = append(groups, g)
		}
	}
	return &FixtureRepository{
		users:  slices.Clone(users),
		groups: groups,
	}
}

var fixtureNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/totegamma/hateoas-playground/fixtures"))

// fixtureID derives the id of a fixture without one from its email, or its name
// when the email is empty, so a restart seeds the same rows again.
func fixtureID(f config.FixtureUser) uuid.UUID {
	key := f.Email
	if key == "" {
		key = f.Name
	}
	return uuid.NewSHA1(fixtureNamespace, []byte(key))
}

// BuildFixtureUsers turns configured fixtures into users. Missing ids are derived
// from the fixture and plain-text passwords are hashed.
func BuildFixtureUsers(fixtures []config.FixtureUser) ([]domain.User, error) {
	users := make([]domain.User, 0, len(fixtures))
	seen := make(map[uuid.UUID]int, len(fixtures))
	for i, f := range fixtures {
		id := fixtureID(f)
		if f.ID != "" {
			parsed, err := uuid.Parse(f.ID)
			if err != nil {
				return nil, errors.Wrapf(err, "fixture %d: invalid id", i)
			}
			id = parsed
		}
		if prev, dup := seen[id]; dup {
			return nil, errors.Errorf("fixture %d: id %s already used by fixture %d", i, id, prev)
		}
		seen[id] = i

		groups := make([]domain.Group, 0, len(f.Groups))
		for _, name := range f.Groups {
			g, err := domain.NewGroup(name)
			if err != nil {
				return nil, errors.Wrapf(err, "fixture %d", i)
			}
			groups = append(groups, g)
		}

		hash, err := domain.HashPassword(f.Password)
		if err != nil {
			return nil, errors.Wrapf(err, "fixture %d: hash password", i)
		}

		user, err := domain.NewUser(id, f.Name, f.Email, hash, groups)
		if err != nil {
			return nil, errors.Wrapf(err, "fixture %d", i)
		}
		users = append(users, user)
	}
	return users, nil
}

func (r *FixtureRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	return slices.Clone(r.users), nil
}

func (r *FixtureRepository) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	for _, user := range r.users {
		if user.ID() == id {
			return user, nil
		}
	}
	return domain.User{}, domain.NotFoundError{Resource: "user", ID: id.String()}
}

func (r *FixtureRepository) ListGroupMembers(ctx context.Context, group string) ([]domain.User, error) {
	members := []domain.User{}
	for _, user := range r.users {
		if user.MemberOf(group) {
			members = append(members, user)
		}
	}
	return members, nil
}

func (r *FixtureRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	return slices.Clone(r.groups), nil
}

func (r *FixtureRepository) GetGroup(ctx context.Context, name string) (domain.Group, error) {
	for _, g := range r.groups {
		if g.Name() == name {
			return g, nil
		}
	}
	return domain.Group{}, domain.NotFoundError{Resource: "group", ID: name}
}
