package model

// CustomerAction 客户操作审计表（由 Kafka 消费端落库）
// 记录请求路径/方法/状态与脱敏后的请求体

type CustomerAction struct {
	ID         int64  `gorm:"primaryKey" json:"id"`
	ActionName string `gorm:"column:action_name;size:50" json:"action_name"`
	CustomerID string `gorm:"column:customer_id;size:64;index" json:"customer_id"`
	UID        int64  `gorm:"column:uid;index" json:"uid"`
	AddTime    int64  `gorm:"column:add_time" json:"add_time"`
	Data       string `gorm:"column:data" json:"data"`
	URL        string `gorm:"column:url;size:200" json:"url"`
	Method     string `gorm:"column:method;size:10" json:"method"`
	Status     int    `gorm:"column:status" json:"status"`
	LatencyMs  int64  `gorm:"column:latency_ms" json:"latency_ms"`
	IP         string `gorm:"column:ip;size:64" json:"ip"`
}

func (CustomerAction) TableName() string { return "customer_action" }
