package usecase

import (
	"context"

	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	hateoas "github.com/totegamma/hateoas-playground"
	"github.com/totegamma/hateoas-playground/internal/domain"
)

type GroupUsecase struct {
	groups GroupRepository
	users  UserRepository
	cache  ResponseCache
}

func NewGroupUsecase(groups GroupRepository, users UserRepository, cache ResponseCache) *GroupUsecase {
	return &GroupUsecase{groups: groups, users: users, cache: cache}
}

func (uc *GroupUsecase) Index(ctx context.Context) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Group.Usecase.Index")
	defer span.End()

	return cached(ctx, uc.cache, hateoas.Path("groups"), func() ([]byte, error) {
		groups, err := uc.groups.ListGroups(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "GroupUsecase.Index: repo.ListGroups failed")
		}
		return hateoas.BuildIndexResponse(domain.GroupProjection, groups, hateoas.NewLink("self", "groups"))
	})
}

func (uc *GroupUsecase) Show(ctx context.Context, name string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Group.Usecase.Show")
	defer span.End()
	span.SetAttributes(attribute.String("group.name", name))

	return cached(ctx, uc.cache, hateoas.Path("groups", name), func() ([]byte, error) {
		group, err := uc.groups.GetGroup(ctx, name)
		if err != nil {
			return nil, errors.Wrap(err, "GroupUsecase.Show: repo.GetGroup failed")
		}
		return hateoas.BuildItemResponse(domain.GroupProjection, group)
	})
}

func (uc *GroupUsecase) Users(ctx context.Context, name string) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "Group.Usecase.Users")
	defer span.End()
	span.SetAttributes(attribute.String("group.name", name))

	return cached(ctx, uc.cache, hateoas.Path("groups", name, "users"), func() ([]byte, error) {
		group, err := uc.groups.GetGroup(ctx, name)
		if err != nil {
			return nil, errors.Wrap(err, "GroupUsecase.Users: repo.GetGroup failed")
		}
		users, err := uc.users.ListGroupMembers(ctx, group.Name())
		if err != nil {
			return nil, errors.Wrap(err, "GroupUsecase.Users: repo.ListGroupMembers failed")
		}
		return hateoas.BuildIndexResponse(
			domain.UserProjection,
			users,
			hateoas.NewLink("self", "groups", group.Name(), "users"),
			hateoas.NewLink("group", "groups", group.Name()),
		)
	})
}
