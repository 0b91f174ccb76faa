package service

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"strings"
	"time"

	"go-customerapi/internal/domain/model"
	"go-customerapi/internal/metrics"
	"go-customerapi/internal/pkg/cache"
	"go-customerapi/internal/repository/dao"

	"github.com/google/uuid"
)

// CustomerService 客户主数据的读写入口
// 记录本身不做任何校验：name/age 任意字符串（含空串）原样写入，最后一次写入生效。
type CustomerService struct {
	DAO     *dao.CustomerDAO
	Cache   cache.Cache
	ListTTL time.Duration
	InfoTTL time.Duration
}

func NewCustomerService(d *dao.CustomerDAO) *CustomerService {
	return &CustomerService{DAO: d, Cache: New30sCache(), ListTTL: 30 * time.Second, InfoTTL: 60 * time.Second}
}

// NewCustomerServiceWithCache 注入 layered cache 与 TTL
func NewCustomerServiceWithCache(d *dao.CustomerDAO, c cache.Cache, listTTL, infoTTL time.Duration) *CustomerService {
	if listTTL <= 0 {
		listTTL = 30 * time.Second
	}
	if infoTTL <= 0 {
		infoTTL = 60 * time.Second
	}
	return &CustomerService{DAO: d, Cache: c, ListTTL: listTTL, InfoTTL: infoTTL}
}

func New30sCache() cache.Cache { return cache.New(30 * time.Second) }

type CustomerDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Age  string `json:"age"`
}

type ListCustomerParams struct {
	Keywords string
	Page     int
	Limit    int
}

type ListCustomerResult struct {
	List  []CustomerDTO `json:"list"`
	Total int64         `json:"total"`
}

func (s *CustomerService) List(ctx context.Context, p ListCustomerParams) (*ListCustomerResult, error) {
	if p.Page <= 0 {
		p.Page = 1
	}
	if p.Limit <= 0 {
		p.Limit = 20
	}
	ck := s.keyList(p)
	if s.Cache != nil {
		if v, _ := s.Cache.Get(ctx, ck); v != "" {
			var cached ListCustomerResult
			if json.Unmarshal([]byte(v), &cached) == nil {
				return &cached, nil
			}
		}
	}
	list, total, err := s.DAO.List(ctx, p.Keywords, p.Page, p.Limit)
	if err != nil {
		metrics.CustomerOpsTotal.WithLabelValues("list", "error").Inc()
		return nil, err
	}
	res := make([]CustomerDTO, 0, len(list))
	for _, c := range list {
		res = append(res, CustomerDTO{ID: c.ID, Name: c.Name, Age: c.Age})
	}
	result := &ListCustomerResult{List: res, Total: total}
	if s.Cache != nil {
		b, _ := json.Marshal(result)
		_ = s.Cache.SetEX(ctx, ck, string(b), s.ListTTL)
	}
	metrics.CustomerOpsTotal.WithLabelValues("list", "ok").Inc()
	return result, nil
}

func (s *CustomerService) GetInfo(ctx context.Context, id string) (*CustomerDTO, error) {
	if strings.TrimSpace(id) == "" {
		return nil, errors.New("id required")
	}
	ck := s.keyInfo(id)
	if s.Cache != nil {
		if v, _ := s.Cache.Get(ctx, ck); v != "" {
			var dto CustomerDTO
			if json.Unmarshal([]byte(v), &dto) == nil {
				return &dto, nil
			}
		}
	}
	m, err := s.DAO.FindByID(ctx, id)
	if err != nil {
		metrics.CustomerOpsTotal.WithLabelValues("get", "error").Inc()
		return nil, err
	}
	if m == nil {
		metrics.CustomerOpsTotal.WithLabelValues("get", "miss").Inc()
		return nil, errors.New("not found")
	}
	dto := &CustomerDTO{ID: m.ID, Name: m.Name, Age: m.Age}
	if s.Cache != nil {
		b, _ := json.Marshal(dto)
		_ = s.Cache.SetEX(ctx, ck, string(b), s.InfoTTL)
	}
	metrics.CustomerOpsTotal.WithLabelValues("get", "ok").Inc()
	return dto, nil
}

type AddCustomerParams struct {
	ID   string // 可空: 自动生成 uuid
	Name string
	Age  string
}

// Add 创建客户。name/age 不做校验, 空串照收; id 冲突由主键约束兜底，
// 这里先查一次给出友好错误。
func (s *CustomerService) Add(ctx context.Context, p AddCustomerParams) (string, error) {
	id := strings.TrimSpace(p.ID)
	if id == "" {
		id = uuid.NewString()
	}
	if existing, err := s.DAO.FindByID(ctx, id); err != nil {
		return "", err
	} else if existing != nil {
		return "", errors.New("customer exists")
	}
	m := &model.Customer{ID: id, Name: p.Name, Age: p.Age}
	if err := s.DAO.Create(ctx, m); err != nil {
		metrics.CustomerOpsTotal.WithLabelValues("add", "error").Inc()
		return "", err
	}
	s.invalidateOne(id)
	metrics.CustomerOpsTotal.WithLabelValues("add", "ok").Inc()
	return id, nil
}

type EditCustomerParams struct {
	ID   string
	Name *string
	Age  *string
}

// Edit 部分更新: 指针非空的字段无条件覆盖存量值（含空串），缺省字段不动。
func (s *CustomerService) Edit(ctx context.Context, p EditCustomerParams) error {
	if strings.TrimSpace(p.ID) == "" {
		return errors.New("id required")
	}
	m, err := s.DAO.FindByID(ctx, p.ID)
	if err != nil {
		return err
	}
	if m == nil {
		return errors.New("not found")
	}
	fields := map[string]interface{}{}
	if p.Name != nil {
		fields["name"] = *p.Name
	}
	if p.Age != nil {
		fields["age"] = *p.Age
	}
	if len(fields) == 0 {
		return nil
	}
	if err := s.DAO.UpdateFields(ctx, p.ID, fields); err != nil {
		metrics.CustomerOpsTotal.WithLabelValues("edit", "error").Inc()
		return err
	}
	s.invalidateOne(p.ID)
	metrics.CustomerOpsTotal.WithLabelValues("edit", "ok").Inc()
	return nil
}

func (s *CustomerService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("id required")
	}
	if err := s.DAO.Delete(ctx, id); err != nil {
		metrics.CustomerOpsTotal.WithLabelValues("del", "error").Inc()
		return err
	}
	s.invalidateOne(id)
	metrics.CustomerOpsTotal.WithLabelValues("del", "ok").Inc()
	return nil
}

// ===== cache helpers =====

func (s *CustomerService) keyList(p ListCustomerParams) string {
	return "customer:list:" + p.Keywords + ":" + strconv.Itoa(p.Page) + ":" + strconv.Itoa(p.Limit)
}
func (s *CustomerService) keyInfo(id string) string { return "customer:info:" + id }

func (s *CustomerService) invalidateOne(id string) {
	if s.Cache != nil {
		_ = s.Cache.Del(context.Background(), s.keyInfo(id))
	}
	// 列表键无法精确失效，靠 TTL 自然过期
}
