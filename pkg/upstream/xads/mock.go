package xads

import (
	"context"
	"fmt"
	"sync"
)

// Mock 上游能力的确定性模拟实现。
//
// 默认每次调用都成功并返回固定样例数据；通过 PushFailures 预置脚本化
// 的错误序列（先进先出，nil 表示该次成功），可复现"失败两次后成功"
// 一类的瞬时故障场景。所有方法并发安全。
type Mock struct {
	mu          sync.Mutex
	failures    []error
	searchCalls int
	mutateCalls int
}

// NewMock 创建模拟上游。
func NewMock() *Mock {
	return &Mock{}
}

// PushFailures 追加脚本化结果序列。每次 Search/Mutate 调用消费一项：
// 非 nil 即作为该次调用的返回错误，nil 表示成功。序列耗尽后一律成功。
func (m *Mock) PushFailures(errs ...error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failures = append(m.failures, errs...)
}

// SearchCalls 返回 Search 被调用的次数。
func (m *Mock) SearchCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.searchCalls
}

// MutateCalls 返回 Mutate 被调用的次数。
func (m *Mock) MutateCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mutateCalls
}

// next 消费一项脚本化结果。
func (m *Mock) next() error {
	if len(m.failures) == 0 {
		return nil
	}
	err := m.failures[0]
	m.failures = m.failures[1:]
	return err
}

// Search 实现 Client 接口，返回固定的样例活动数据。
func (m *Mock) Search(ctx context.Context, customerID, query string, pageSize int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.searchCalls++
	err := m.next()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	return []Record{
		{
			"campaign": map[string]any{
				"id":     "123456789",
				"name":   "Mock Campaign",
				"status": "ENABLED",
			},
			"metrics": map[string]any{
				"impressions": 1000,
				"clicks":      50,
				"cost_micros": 5000000,
			},
		},
	}, nil
}

// Mutate 实现 Client 接口，按操作数返回样例资源名。
func (m *Mock) Mutate(ctx context.Context, customerID string, operations []MutateOperation, validateOnly bool) (*MutateResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.mutateCalls++
	err := m.next()
	m.mu.Unlock()
	if err != nil {
		return nil, err
	}

	results := make([]MutateResult, 0, len(operations))
	for i := range operations {
		results = append(results, MutateResult{
			ResourceName: fmt.Sprintf("customers/%s/campaigns/%d", customerID, i),
			OperationID:  fmt.Sprintf("%d", i),
		})
	}
	return &MutateResponse{Results: results}, nil
}

// 编译期接口检查
var _ Client = (*Mock)(nil)
