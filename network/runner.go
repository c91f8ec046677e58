package network

import (
	"git.fiblab.net/general/common/v2/parallel"

	"github.com/eikden/traffic-lights-optimization/clock"
	"github.com/eikden/traffic-lights-optimization/entity"
	"github.com/eikden/traffic-lights-optimization/sim"
	"github.com/eikden/traffic-lights-optimization/utils/config"
)

// Options 网络仿真运行参数
type Options struct {
	Steps            int32            // 总步数
	ArrivalIntensity float64          // 车辆到达强度
	CrossingRate     float64          // 行人过街概率
	SaturationFlow   int              // 饱和流率
	Seed             uint64           // 基础随机数种子
	Offsets          map[string]int32 // 路口ID->时钟偏移（可为nil，缺省为0）
}

// OptionsFromControl 从控制配置构造网络运行参数
// 功能：将配置文件中的控制项转换为网络运行参数
// 参数：c-控制配置
// 返回：网络运行参数
func OptionsFromControl(c config.Control) Options {
	return Options{
		Steps:            c.Step.Total,
		ArrivalIntensity: c.ArrivalIntensity,
		CrossingRate:     c.CrossingRate,
		SaturationFlow:   c.SaturationFlow,
		Seed:             c.Seed,
		Offsets:          c.Offsets,
	}
}

// Run 运行网络仿真
// 功能：在共享时钟上驱动多个路口执行N个离散步，由协调器给出各路口决策
// 参数：layouts-路口布局列表，coordinator-干线协调器，opts-运行参数
// 返回：包含完整历史的网络终态和错误信息
// 算法说明（每步按序执行）：
// 1. 并行注入需求：各路口使用独立随机数引擎注入车辆到达与行人
// 2. 采集观测：协调决策要求本步所有路口的观测齐备（观测屏障），
//    屏障之前可以并行，之后按排序后ID顺序串行执行
// 3. 协调决策：SyncAndDecide，任何错误使本步失败并终止运行
// 4. 应用切换：决策为切换的路口激活下一相位
// 5. 逐路口放行、记录快照并推进路口时钟
// 6. 记录网络快照并推进网络时钟
func Run(layouts []config.LayoutConfig, coordinator *Coordinator, opts Options) (*Network, error) {
	if opts.Steps < 0 {
		return nil, sim.ErrNegativeSteps
	}
	n, err := New(layouts, opts.Offsets, opts.Seed)
	if err != nil {
		return nil, err
	}

	for c := clock.New(opts.Steps); !c.Done(); c.Tick() {
		parallel.GoFor(n.ids, func(id string) {
			i := n.Get(id)
			engine := n.engines[id]
			sim.SimulateArrivals(i.Lanes(), opts.ArrivalIntensity, engine)
			sim.SimulatePedestrians(i.Lanes(), opts.CrossingRate, engine)
		})

		observations := make(map[string]entity.Observation, len(n.ids))
		for _, id := range n.ids {
			observations[id] = sim.CaptureObservation(n.Get(id))
		}

		decisions, err := coordinator.SyncAndDecide(n, observations)
		if err != nil {
			return nil, err
		}
		for _, id := range n.ids {
			if decisions[id].Switch {
				n.Get(id).AdvancePhase()
			}
		}

		for _, id := range n.ids {
			i := n.Get(id)
			if _, err := sim.ApplyDischarge(i, opts.SaturationFlow); err != nil {
				return nil, err
			}
			i.Record()
			i.Tick()
		}
		n.Record()
		n.AdvanceTime()
	}
	return n, nil
}
