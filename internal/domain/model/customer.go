package model

// Customer 客户主数据记录
// id 为字符串主键（可由调用方提供），name/age 均为自由文本列
// age 保留字符串类型以保持与旧库数据兼容，不做数值解释

type Customer struct {
	ID   string `gorm:"column:id;primaryKey;size:64" json:"id"`
	Name string `gorm:"column:name;size:255" json:"name"`
	Age  string `gorm:"column:age;size:32" json:"age"`
}

func (Customer) TableName() string { return "customer" }
