// 随机数引擎，包装了golang.org/x/exp/rand，提供了一些常用的随机数生成方法
package randengine

import (
	"flag"
	"sync"

	"golang.org/x/exp/rand"
)

var (
	seedOffset = flag.Uint64("rand.seed_offset", 0, "seed offset") // 种子偏移量，用于调整随机数生成
)

// Engine 随机数引擎
// 功能：提供可复现的随机数生成功能，支持多种分布和线程安全操作
// 说明：显式传入各仿真调用，保证相同种子下的运行结果完全一致
type Engine struct {
	*rand.Rand            // 底层随机数生成器
	mtx        sync.Mutex // 互斥锁，用于线程安全操作
}

// New 创建随机数引擎
// 功能：初始化一个新的随机数引擎实例
// 参数：seed-随机数种子
// 返回：随机数引擎指针
// 说明：种子偏移量允许在不修改代码的情况下调整随机数序列
func New(seed uint64) *Engine {
	return &Engine{Rand: rand.New(rand.NewSource(seed + *seedOffset))}
}

// PTrue 以指定概率返回true（非线程安全）
// 功能：根据给定概率返回布尔值
// 参数：p-返回true的概率（0.0到1.0之间）
// 返回：true或false
// 说明：实现伯努利分布，用于模拟概率事件
func (e *Engine) PTrue(p float64) bool {
	return e.Float64() < p
}

// PTrueSafe 以指定概率返回true（线程安全）
// 功能：根据给定概率返回布尔值，支持多线程安全访问
// 参数：p-返回true的概率（0.0到1.0之间）
// 返回：true或false
// 说明：线程安全版本的PTrue方法，用于多个工作协程共享同一引擎的场景
func (e *Engine) PTrueSafe(p float64) bool {
	e.mtx.Lock()
	defer e.mtx.Unlock()
	return e.Float64() < p
}

// GaussInt 生成截断高斯分布的非负整数（非线程安全）
// 功能：从均值mu、标准差sigma的正态分布中采样，截断为整数并下限为0
// 参数：mu-均值，sigma-标准差
// 返回：非负整数采样值
// 说明：用于车辆到达数的生成，负数采样值被截断为0
func (e *Engine) GaussInt(mu, sigma float64) int {
	v := int(e.NormFloat64()*sigma + mu)
	if v < 0 {
		return 0
	}
	return v
}
