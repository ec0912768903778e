package domain

import (
	hateoas "github.com/totegamma/hateoas-playground"
)

// Group is identified by its name.
type Group struct {
	name string
}

func NewGroup(name string) (Group, error) {
	if name == "" {
		return Group{}, hateoas.ConstructionError{Resource: "Group", Field: "name", Reason: "identity is required"}
	}
	return Group{name: name}, nil
}

func (g Group) Name() string {
	return g.name
}

func (g Group) Links() []hateoas.Link {
	return []hateoas.Link{
		hateoas.NewLink("self", "groups", g.name),
		hateoas.NewLink("users", "groups", g.name, "users"),
	}
}

var GroupProjection = hateoas.MustProjection(
	hateoas.Emit("name", "name", Group.Name),
)
