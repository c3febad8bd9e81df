package adapter

import (
	"fmt"
	"sort"
	"sync"

	"EventsFinder/internal/config"
	"EventsFinder/internal/interfaces"

	"github.com/sirupsen/logrus"
)

// Factory 活动源工厂函数签名
// 入参：活动源配置、日志实例
// 出参：实现EventSource接口的活动源实例
type Factory func(cfg *config.SourceConfig, logger *logrus.Logger) interfaces.EventSource

// ========== 全局工厂函数注册表 ==========
var (
	factoryMu       sync.RWMutex
	factoryRegistry = make(map[string]Factory)
)

// Register 供活动源init函数调用，注册工厂函数
func Register(name string, factory Factory) {
	if factory == nil {
		panic(fmt.Sprintf("活动源%s的工厂函数不能为nil", name))
	}
	factoryMu.Lock()
	defer factoryMu.Unlock()
	if _, exists := factoryRegistry[name]; exists {
		logrus.Warnf("活动源%s的工厂函数已注册，将覆盖原有实现", name)
	}
	factoryRegistry[name] = factory
}

// GetFactory 获取指定活动源的工厂函数
func GetFactory(name string) (Factory, bool) {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	factory, ok := factoryRegistry[name]
	return factory, ok
}

// ListFactories 列出所有已注册的工厂函数
func ListFactories() []string {
	factoryMu.RLock()
	defer factoryMu.RUnlock()
	names := make([]string, 0, len(factoryRegistry))
	for n := range factoryRegistry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
