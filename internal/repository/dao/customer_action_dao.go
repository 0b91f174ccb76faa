package dao

import (
	"context"

	"go-customerapi/internal/domain/model"

	"gorm.io/gorm"
)

type CustomerActionDAO struct{ DB *gorm.DB }

func NewCustomerActionDAO(db *gorm.DB) *CustomerActionDAO { return &CustomerActionDAO{DB: db} }

func (d *CustomerActionDAO) Create(ctx context.Context, a *model.CustomerAction) error {
	return d.DB.WithContext(ctx).Create(a).Error
}

// List 审计列表: typ 1=url 2=customer_id 3=uid
func (d *CustomerActionDAO) List(ctx context.Context, typ int, keywords string, page, limit int) ([]model.CustomerAction, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	q := d.DB.WithContext(ctx).Model(&model.CustomerAction{})
	if typ > 0 && keywords != "" {
		switch typ {
		case 1:
			q = q.Where("url ILIKE ?", "%"+keywords+"%")
		case 2:
			q = q.Where("customer_id = ?", keywords)
		case 3:
			q = q.Where("uid = ?", keywords)
		}
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.CustomerAction
	if err := q.Order("add_time DESC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (d *CustomerActionDAO) Delete(ctx context.Context, id int64) error {
	return d.DB.WithContext(ctx).Delete(&model.CustomerAction{}, id).Error
}
