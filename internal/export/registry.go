package export

import (
	"fmt"
	"sync"
)

// Provider 一种导出格式的注册项。
// Name 是格式的唯一标识，如 "csv"、"json"；
// New 构造对应的导出器；Ext 是输出文件的扩展名（含点）
type Provider struct {
	Name string
	Ext  string
	New  func() Exporter
}

var (
	regMu    sync.RWMutex
	registry = map[string]Provider{}
)

func Register(p Provider) error {
	if p.Name == "" {
		return fmt.Errorf("provider 的名字不能为空")
	}
	if p.New == nil {
		return fmt.Errorf("provider %s 缺少构造函数", p.Name)
	}

	regMu.Lock()
	defer regMu.Unlock()
	if _, exists := registry[p.Name]; exists {
		return fmt.Errorf("provider %s 已经注册过了", p.Name)
	}
	registry[p.Name] = p
	return nil
}

func MustRegister(p Provider) {
	if err := Register(p); err != nil {
		panic(err)
	}
}

func Get(name string) (Provider, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	p, ok := registry[name]
	return p, ok
}
