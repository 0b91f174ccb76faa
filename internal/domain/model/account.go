package model

import "time"

// Account 后台操作员账号，customer 路由均要求其登录态

type Account struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Username   string    `gorm:"size:64;uniqueIndex:uk_username" json:"username"`
	Nickname   string    `gorm:"size:64" json:"nickname"`
	Password   string    `gorm:"size:64" json:"-"`
	CreateTime int64     `gorm:"column:create_time;index" json:"create_time"`
	UpdateTime int64     `gorm:"column:update_time" json:"update_time"`
	Status     int8      `gorm:"column:status" json:"status"`
	CreatedAt  time.Time `gorm:"->:false;<-:false" json:"-"`
	UpdatedAt  time.Time `gorm:"->:false;<-:false" json:"-"`
}

func (Account) TableName() string { return "account" }
