package domain

import (
	"fmt"
	"slices"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	hateoas "github.com/totegamma/hateoas-playground"
)

// User is identified by its id. password holds a bcrypt hash and is never serialized.
type User struct {
	id       uuid.UUID
	name     string
	email    string
	password string
	groups   []Group
}

func NewUser(id uuid.UUID, name, email, password string, groups []Group) (User, error) {
	if id == uuid.Nil {
		return User{}, hateoas.ConstructionError{Resource: "User", Field: "id", Reason: "identity is required"}
	}
	seen := make(map[string]bool, len(groups))
	for _, g := range groups {
		if g.name == "" {
			return User{}, hateoas.ConstructionError{Resource: "User", Field: "groups", Reason: "group without identity"}
		}
		if seen[g.name] {
			return User{}, hateoas.ConstructionError{Resource: "User", Field: "groups", Reason: fmt.Sprintf("duplicate group %q", g.name)}
		}
		seen[g.name] = true
	}
	return User{
		id:       id,
		name:     name,
		email:    email,
		password: password,
		groups:   slices.Clone(groups),
	}, nil
}

func (u User) ID() uuid.UUID {
	return u.id
}

func (u User) Name() string {
	return u.name
}

func (u User) Email() string {
	return u.email
}

func (u User) PasswordHash() string {
	return u.password
}

func (u User) Groups() []Group {
	return slices.Clone(u.groups)
}

// GroupNames collapses the groups into their names, keeping order and length.
func (u User) GroupNames() []string {
	names := make([]string, 0, len(u.groups))
	for _, g := range u.groups {
		names = append(names, g.name)
	}
	return names
}

func (u User) MemberOf(group string) bool {
	return slices.ContainsFunc(u.groups, func(g Group) bool { return g.name == group })
}

func (u User) Profile() Profile {
	return Profile{
		userID: u.id,
		name:   u.name,
		email:  u.email,
	}
}

func (u User) Links() []hateoas.Link {
	id := u.id.String()
	return []hateoas.Link{
		hateoas.NewLink("self", "users", id),
		hateoas.NewLink("profile", "users", id, "profile"),
		hateoas.NewLink("groups", "users", id, "groups"),
	}
}

var UserProjection = hateoas.MustProjection(
	hateoas.Emit("id", "id", User.ID),
	hateoas.Emit("name", "name", User.Name),
	hateoas.Emit("email", "email", User.Email),
	hateoas.Suppress[User]("password"),
	hateoas.Project("groups", "groups", User.GroupNames),
)

func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
