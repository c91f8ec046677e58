package control

import (
	"flag"

	"github.com/samber/lo"

	"github.com/eikden/traffic-lights-optimization/entity"
	"github.com/eikden/traffic-lights-optimization/entity/intersection"
)

var (
	vehicleThreshold   = flag.Int("policy.vehicle_threshold", 12, "需求响应信控的排队车辆阈值")
	pedestrianPriority = flag.Bool("policy.pedestrian_priority", true, "需求响应信控是否启用行人优先")
)

// demandResponsive 需求响应信控器
// 功能：实现基于排队需求的规则信控，在保证最短绿灯的前提下按需延长或切换相位
// 说明：相位生命周期为 刚激活（必须保持）->可延长（按需保持）->到达上限（强制切换）
type demandResponsive struct {
	vehicleThreshold   int  // 排队车辆阈值，当前相位排队总数低于该值时延长绿灯
	pedestrianPriority bool // 行人优先开关，启用后有行人等待时不切换相位
}

// NewDemandResponsive 创建需求响应信控器
// 功能：按给定参数初始化需求响应信控器
// 参数：threshold-排队车辆阈值，pedestrianPriority-行人优先开关
// 返回：信控器实例
func NewDemandResponsive(threshold int, pedestrianPriority bool) IController {
	return &demandResponsive{
		vehicleThreshold:   threshold,
		pedestrianPriority: pedestrianPriority,
	}
}

// NewDefaultDemandResponsive 创建使用默认参数的需求响应信控器
// 功能：按命令行参数（或其默认值）初始化需求响应信控器
// 返回：信控器实例
func NewDefaultDemandResponsive() IController {
	return NewDemandResponsive(*vehicleThreshold, *pedestrianPriority)
}

// Decide 信控决策
// 功能：针对当前相位给出保持/切换决策
// 参数：i-路口状态，observation-观测快照
// 返回：决策结果
// 算法说明：
// 1. 未达到最短绿灯时长：无条件保持，保证最短绿灯
// 2. 行人优先开启且当前相位车道有行人等待：保持，行人过街不被打断
// 3. 当前相位车道排队总数低于阈值且未达到最长绿灯：保持，低需求时延长绿灯
// 4. 其他情况：切换到下一相位
// 说明：只读取参数状态，不产生任何修改
func (c *demandResponsive) Decide(i *intersection.Intersection, observation entity.Observation) entity.Decision {
	phase := i.CurrentPhase()
	totalQueue := lo.SumBy(phase.Lanes(), func(laneID string) int {
		return observation.Vehicles[laneID]
	})
	pedestrianPressure := lo.SumBy(phase.Lanes(), func(laneID string) int {
		return observation.Pedestrians[laneID]
	})

	if phase.MustExtend() {
		return entity.Decision{Switch: false}
	}
	if c.pedestrianPriority && pedestrianPressure > 0 {
		return entity.Decision{Switch: false}
	}
	if totalQueue < c.vehicleThreshold && phase.CanExtend() {
		return entity.Decision{Switch: false}
	}
	return entity.Decision{Switch: true}
}
