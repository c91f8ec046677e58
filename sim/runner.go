package sim

import (
	"errors"
	"flag"

	"golang.org/x/sync/errgroup"

	"github.com/eikden/traffic-lights-optimization/clock"
	"github.com/eikden/traffic-lights-optimization/control"
	"github.com/eikden/traffic-lights-optimization/entity/intersection"
	"github.com/eikden/traffic-lights-optimization/utils/config"
	"github.com/eikden/traffic-lights-optimization/utils/randengine"
)

var (
	heartBeatInterval = flag.Int("log.heartbeat_interval", 100, "心跳日志间隔步数")
)

var (
	ErrNegativeSteps = errors.New("sim: step count must be non-negative")
)

// Options 单路口仿真运行参数
type Options struct {
	Steps            int32   // 总步数
	ArrivalIntensity float64 // 车辆到达强度
	CrossingRate     float64 // 行人过街概率
	SaturationFlow   int     // 饱和流率
}

// OptionsFromControl 从控制配置构造运行参数
// 功能：将配置文件中的控制项转换为运行参数
// 参数：c-控制配置
// 返回：运行参数
func OptionsFromControl(c config.Control) Options {
	return Options{
		Steps:            c.Step.Total,
		ArrivalIntensity: c.ArrivalIntensity,
		CrossingRate:     c.CrossingRate,
		SaturationFlow:   c.SaturationFlow,
	}
}

// Run 运行单路口仿真
// 功能：驱动单个路口执行N个离散步，返回包含完整历史的路口终态
// 参数：layout-路口布局配置，controller-信控器，opts-运行参数，engine-随机数引擎
// 返回：路口终态和错误信息
// 算法说明（每步按序执行，顺序不可调整）：
// 1. 注入车辆到达与行人
// 2. 采集观测快照
// 3. 信控器决策
// 4. 决策为切换时激活下一相位
// 5. 对切换后的当前相位应用绿灯放行（切换在放行前生效，车辆立即按新相位放行）
// 6. 记录快照
// 7. 推进时钟计数
// 说明：每步完整执行后才进入下一步，无任何中途挂起；
// 步数为负在构建任何状态前拒绝
func Run(
	layout config.LayoutConfig,
	controller control.IController,
	opts Options,
	engine *randengine.Engine,
) (*intersection.Intersection, error) {
	if opts.Steps < 0 {
		return nil, ErrNegativeSteps
	}
	if err := layout.Validate(); err != nil {
		return nil, err
	}

	i := intersection.New(layout)
	for c := clock.New(opts.Steps); !c.Done(); c.Tick() {
		if c.Step > 0 && c.Step%int32(*heartBeatInterval) == 0 {
			log.Infof("STEP: %d(%s) intersection %s", c.Step, c, i.ID())
		}
		SimulateArrivals(i.Lanes(), opts.ArrivalIntensity, engine)
		SimulatePedestrians(i.Lanes(), opts.CrossingRate, engine)

		observation := CaptureObservation(i)
		if controller.Decide(i, observation).Switch {
			i.AdvancePhase()
		}

		if _, err := ApplyDischarge(i, opts.SaturationFlow); err != nil {
			return nil, err
		}
		i.Record()
		i.Tick()
	}
	return i, nil
}

// RunEach 并行运行多个相互独立的单路口仿真
// 功能：将多个路口按工作协程分片并发运行
// 参数：layouts-路口布局列表，newController-信控器工厂（每个路口一个实例），
// opts-运行参数，seed-基础随机数种子
// 返回：与布局列表同序的路口终态列表和错误信息
// 说明：各路口状态彼此独立，无共享可变状态；
// 第idx个路口使用种子seed+idx的独立引擎，保证并行下仍可复现
func RunEach(
	layouts []config.LayoutConfig,
	newController func() control.IController,
	opts Options,
	seed uint64,
) ([]*intersection.Intersection, error) {
	results := make([]*intersection.Intersection, len(layouts))
	var eg errgroup.Group
	for idx, layout := range layouts {
		idx, layout := idx, layout
		eg.Go(func() error {
			engine := randengine.New(seed + uint64(idx))
			i, err := Run(layout, newController(), opts, engine)
			if err != nil {
				return err
			}
			results[idx] = i
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
