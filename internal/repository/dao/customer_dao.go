package dao

import (
	"context"
	"errors"

	"go-customerapi/internal/domain/model"

	"gorm.io/gorm"
)

// CustomerDAO 客户表数据访问
type CustomerDAO struct {
	DB *gorm.DB
}

func NewCustomerDAO(db *gorm.DB) *CustomerDAO { return &CustomerDAO{DB: db} }

// FindByID 按主键查询; 不存在返回 (nil, nil)
func (d *CustomerDAO) FindByID(ctx context.Context, id string) (*model.Customer, error) {
	var c model.Customer
	if err := d.DB.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

// Create 新增; id 唯一性由主键约束兜底
func (d *CustomerDAO) Create(ctx context.Context, c *model.Customer) error {
	return d.DB.WithContext(ctx).Create(c).Error
}

// UpdateFields 只写出现的列, 出现即无条件覆盖（含空串）; 调用方只传要改的字段
func (d *CustomerDAO) UpdateFields(ctx context.Context, id string, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}
	return d.DB.WithContext(ctx).Model(&model.Customer{}).Where("id = ?", id).Updates(fields).Error
}

// Delete 物理删除
func (d *CustomerDAO) Delete(ctx context.Context, id string) error {
	return d.DB.WithContext(ctx).Where("id = ?", id).Delete(&model.Customer{}).Error
}

// List 可选 name 关键字过滤 + 分页
func (d *CustomerDAO) List(ctx context.Context, keywords string, page, limit int) ([]model.Customer, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 || limit > 200 {
		limit = 20
	}
	q := d.DB.WithContext(ctx).Model(&model.Customer{})
	if keywords != "" {
		q = q.Where("name ILIKE ?", "%"+keywords+"%")
	}
	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	var list []model.Customer
	if err := q.Order("id ASC").Limit(limit).Offset((page - 1) * limit).Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
