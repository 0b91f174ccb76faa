package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-customerapi/internal/domain/model"
	"go-customerapi/internal/pkg/cache"
	"go-customerapi/internal/repository/dao"
)

// AuditService 审计记录查询（写入在 Kafka 消费端完成）
type AuditService struct {
	DAO   *dao.CustomerActionDAO
	Cache cache.Cache
}

func NewAuditService(d *dao.CustomerActionDAO) *AuditService {
	return &AuditService{DAO: d, Cache: cache.New(30 * time.Second)}
}

type AuditListResult struct {
	List  []model.CustomerAction `json:"list"`
	Count int64                  `json:"count"`
}

func (s *AuditService) List(ctx context.Context, typ int, keywords string, page, limit int) (AuditListResult, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 20
	}
	key := s.key(typ, keywords, page, limit)
	if s.Cache != nil {
		if str, _ := s.Cache.Get(ctx, key); str != "" {
			var r AuditListResult
			if json.Unmarshal([]byte(str), &r) == nil {
				return r, nil
			}
		}
	}
	list, total, err := s.DAO.List(ctx, typ, keywords, page, limit)
	if err != nil {
		return AuditListResult{}, err
	}
	res := AuditListResult{List: list, Count: total}
	if s.Cache != nil {
		b, _ := json.Marshal(res)
		_ = s.Cache.SetEX(ctx, key, string(b), 30*time.Second)
	}
	return res, nil
}

func (s *AuditService) Delete(ctx context.Context, id int64) error {
	return s.DAO.Delete(ctx, id)
}

func (s *AuditService) key(typ int, kw string, page, limit int) string {
	return fmt.Sprintf("audit:%d|%s|%d|%d", typ, kw, page, limit)
}
