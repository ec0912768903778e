package usecase

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel/attribute"

	hateoas "github.com/totegamma/hateoas-playground"
	"github.com/totegamma/hateoas-playground/internal/domain"
)

type UserUsecase struct {
	repo  UserRepository
	cache ResponseCache
}

// NewUserUsecase builds the user endpoints. cache may be nil.
func NewUserUsecase(repo UserRepository, cache ResponseCache) *UserUsecase {
	return &UserUsecase{repo: repo, cache: cache}
}

// Index serializes every user under the /users collection.
func (uc *UserUsecase) Index(ctx context.Context) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Index")
	defer span.End()

	return cached(ctx, uc.cache, hateoas.Path("users"), func() ([]byte, error) {
		users, err := uc.repo.ListUsers(ctx)
		if err != nil {
			return nil, errors.Wrap(err, "UserUsecase.Index: repo.ListUsers failed")
		}
		return hateoas.BuildIndexResponse(domain.UserProjection, users, hateoas.NewLink("self", "users"))
	})
}

func (uc *UserUsecase) Show(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Show")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id.String()))

	return cached(ctx, uc.cache, hateoas.Path("users", id.String()), func() ([]byte, error) {
		user, err := uc.repo.GetUser(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "UserUsecase.Show: repo.GetUser failed")
		}
		return hateoas.BuildItemResponse(domain.UserProjection, user)
	})
}

func (uc *UserUsecase) Profile(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Profile")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id.String()))

	return cached(ctx, uc.cache, hateoas.Path("users", id.String(), "profile"), func() ([]byte, error) {
		user, err := uc.repo.GetUser(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "UserUsecase.Profile: repo.GetUser failed")
		}
		return hateoas.BuildItemResponse(domain.ProfileProjection, user.Profile())
	})
}

// Groups lists the groups a user belongs to, in membership order.
func (uc *UserUsecase) Groups(ctx context.Context, id uuid.UUID) ([]byte, error) {
	ctx, span := tracer.Start(ctx, "User.Usecase.Groups")
	defer span.End()
	span.SetAttributes(attribute.String("user.id", id.String()))

	return cached(ctx, uc.cache, hateoas.Path("users", id.String(), "groups"), func() ([]byte, error) {
		user, err := uc.repo.GetUser(ctx, id)
		if err != nil {
			return nil, errors.Wrap(err, "UserUsecase.Groups: repo.GetUser failed")
		}
		return hateoas.BuildIndexResponse(
			domain.GroupProjection,
			user.Groups(),
			hateoas.NewLink("self", "users", id.String(), "groups"),
			hateoas.NewLink("user", "users", id.String()),
		)
	})
}
