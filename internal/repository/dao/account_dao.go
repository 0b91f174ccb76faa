package dao

import (
	"context"
	"errors"

	"go-customerapi/internal/domain/model"

	"gorm.io/gorm"
)

// AccountDAO 操作员账号数据访问
type AccountDAO struct {
	DB *gorm.DB
}

func NewAccountDAO(db *gorm.DB) *AccountDAO { return &AccountDAO{DB: db} }

// FindByUsername 按用户名查询; 不存在返回 (nil, nil)
func (d *AccountDAO) FindByUsername(ctx context.Context, username string) (*model.Account, error) {
	var a model.Account
	if err := d.DB.WithContext(ctx).Where("username = ?", username).First(&a).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

// FindByID 按主键查询; 不存在返回 (nil, nil)
func (d *AccountDAO) FindByID(ctx context.Context, id int64) (*model.Account, error) {
	var a model.Account
	if err := d.DB.WithContext(ctx).First(&a, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &a, nil
}

func (d *AccountDAO) Create(ctx context.Context, a *model.Account) error {
	return d.DB.WithContext(ctx).Create(a).Error
}

// UpdatePassword 入参是 bcrypt 哈希, 调用方负责先哈希
func (d *AccountDAO) UpdatePassword(ctx context.Context, id int64, hashed string) error {
	return d.DB.WithContext(ctx).Model(&model.Account{}).Where("id = ?", id).Update("password", hashed).Error
}
