package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/totegamma/hateoas-playground/internal/domain"
	"github.com/totegamma/hateoas-playground/internal/infra/database/models"
)

type GroupRepository struct {
	db *gorm.DB
}

func NewGroupRepository(db *gorm.DB) *GroupRepository {
	return &GroupRepository{db: db}
}

func (r *GroupRepository) ListGroups(ctx context.Context) ([]domain.Group, error) {
	var rows []models.Group
	err := r.db.WithContext(ctx).
		Order("c_date ASC, name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	groups := make([]domain.Group, 0, len(rows))
	for _, row := range rows {
		g, err := domain.NewGroup(row.Name)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

func (r *GroupRepository) GetGroup(ctx context.Context, name string) (domain.Group, error) {
	var row models.Group
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Take(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.Group{}, domain.NotFoundError{Resource: "group", ID: name}
	}
	if err != nil {
		return domain.Group{}, err
	}
	return domain.NewGroup(row.Name)
}
