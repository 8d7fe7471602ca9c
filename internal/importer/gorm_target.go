package importer

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"customerhub/internal/model"
)

// GormTarget writes imported records through GORM.
type GormTarget struct {
	db *gorm.DB
}

// NewGormTarget migrates the users and customers tables and returns a target on db.
func NewGormTarget(db *gorm.DB) (*GormTarget, error) {
	if err := db.AutoMigrate(&model.UserRecord{}, &model.CustomerRecord{}); err != nil {
		return nil, err
	}
	return &GormTarget{db: db}, nil
}

func (t *GormTarget) FindUserIDByEmail(ctx context.Context, email string) (uint, error) {
	var user model.UserRecord
	err := t.db.WithContext(ctx).Select("id").Where("email = ?", email).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

func (t *GormTarget) CreateUser(ctx context.Context, user *model.UserRecord) error {
	return t.db.WithContext(ctx).Create(user).Error
}

func (t *GormTarget) CreateCustomer(ctx context.Context, customer *model.CustomerRecord) error {
	return t.db.WithContext(ctx).Create(customer).Error
}
