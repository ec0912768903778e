package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/totegamma/hateoas-playground/internal/domain"
	"github.com/totegamma/hateoas-playground/internal/infra/database/models"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) ListUsers(ctx context.Context) ([]domain.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Order("c_date ASC, id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

func (r *UserRepository) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	var row models.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id.String()).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.User{}, domain.NotFoundError{Resource: "user", ID: id.String()}
	}
	if err != nil {
		return domain.User{}, err
	}

	users, err := r.hydrate(ctx, []models.User{row})
	if err != nil {
		return domain.User{}, err
	}
	return users[0], nil
}

func (r *UserRepository) ListGroupMembers(ctx context.Context, group string) ([]domain.User, error) {
	var rows []models.User
	err := r.db.WithContext(ctx).
		Joins("JOIN user_groups ug ON ug.user_id = users.id").
		Where("ug.group_name = ?", group).
		Order("users.c_date ASC, users.id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.hydrate(ctx, rows)
}

// hydrate attaches memberships to rows in position order.
func (r *UserRepository) hydrate(ctx context.Context, rows []models.User) ([]domain.User, error) {
	users := make([]domain.User, 0, len(rows))
	if len(rows) == 0 {
		return users, nil
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}

	var memberships []models.UserGroup
	err := r.db.WithContext(ctx).
		Where("user_id IN ?", ids).
		Order("position ASC").
		Find(&memberships).Error
	if err != nil {
		return nil, err
	}

	groups := make(map[string][]domain.Group, len(rows))
	for _, m := range memberships {
		g, err := domain.NewGroup(m.GroupName)
		if err != nil {
			return nil, err
		}
		groups[m.UserID] = append(groups[m.UserID], g)
	}

	for _, row := range rows {
		id, err := uuid.Parse(row.ID)
		if err != nil {
			return nil, err
		}
		user, err := domain.NewUser(id, row.Name, row.Email, row.Password, groups[row.ID])
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// Seed inserts users, their groups and memberships. Existing rows are kept as they are.
func (r *UserRepository) Seed(ctx context.Context, users []domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, user := range users {
			row := models.User{
				ID:       user.ID().String(),
				Name:     user.Name(),
				Email:    user.Email(),
				Password: user.PasswordHash(),
			}
			if err := tx.Clauses(clause.OnConflict{
				DoNothing: true,
			}).Create(&row).Error; err != nil {
				return err
			}

			for i, group := range user.Groups() {
				if err := tx.Clauses(clause.OnConflict{
					DoNothing: true,
				}).Create(&models.Group{Name: group.Name()}).Error; err != nil {
					return err
				}

				err := tx.Omit(clause.Associations).Clauses(clause.OnConflict{
					Columns:   []clause.Column{{Name: "user_id"}, {Name: "group_name"}},
					DoNothing: true,
				}).Create(&models.UserGroup{
					UserID:    row.ID,
					GroupName: group.Name(),
					Position:  i,
				}).Error
				if err != nil {
					return err
				}
			}
		}
		return nil
	})
}
