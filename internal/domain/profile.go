package domain

import (
	"github.com/google/uuid"

	hateoas "github.com/totegamma/hateoas-playground"
)

// Profile is the public card of a User.
type Profile struct {
	userID uuid.UUID
	name   string
	email  string
}

func (p Profile) UserID() uuid.UUID {
	return p.userID
}

func (p Profile) Name() string {
	return p.name
}

func (p Profile) Email() string {
	return p.email
}

func (p Profile) Links() []hateoas.Link {
	id := p.userID.String()
	return []hateoas.Link{
		hateoas.NewLink("self", "users", id, "profile"),
		hateoas.NewLink("user", "users", id),
	}
}

var ProfileProjection = hateoas.MustProjection(
	hateoas.Emit("userID", "userId", Profile.UserID),
	hateoas.Emit("name", "name", Profile.Name),
	hateoas.Emit("email", "email", Profile.Email),
)
