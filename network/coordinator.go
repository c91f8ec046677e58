package network

import (
	"errors"
	"fmt"

	"github.com/eikden/traffic-lights-optimization/control"
	"github.com/eikden/traffic-lights-optimization/entity"
	"github.com/eikden/traffic-lights-optimization/entity/intersection"
	"github.com/eikden/traffic-lights-optimization/utils/config"
)

var (
	ErrMissingObservation = errors.New("network: missing observation for intersection")
)

// Coordinator 干线协调器
// 功能：在共享时钟上偏置各路口的信控决策，使干线车道的绿灯沿绿波窗口对齐
// 说明：这是基于固定周期与偏移的协调方案，不随需求自适应；
// 干线压力持续不低于非干线压力时会无限期饿死非干线需求，
// 强制对齐还会绕过最短/最长绿灯保证，这是参考设计接受的取舍而非缺陷
type Coordinator struct {
	corridorLanes map[string]struct{}           // 干线车道ID集合
	cycleLength   int32                         // 协调周期
	greenBand     int32                         // 绿波带宽
	locals        map[string]control.IController // 路口ID->本地信控器（首次使用时创建，跨步复用）
}

// NewCoordinator 创建干线协调器
// 功能：按给定参数初始化干线协调器
// 参数：corridorLanes-干线车道ID列表，cycleLength-协调周期，greenBand-绿波带宽
// 返回：协调器实例和错误信息
// 说明：周期与带宽必须为正且带宽不超过周期
func NewCoordinator(corridorLanes []string, cycleLength, greenBand int32) (*Coordinator, error) {
	if cycleLength <= 0 || greenBand <= 0 {
		return nil, fmt.Errorf(
			"%w: corridor cycle %d and band %d must be > 0",
			config.ErrInvalidControl, cycleLength, greenBand,
		)
	}
	if greenBand > cycleLength {
		return nil, fmt.Errorf(
			"%w: corridor band %d > cycle %d",
			config.ErrInvalidControl, greenBand, cycleLength,
		)
	}
	c := &Coordinator{
		corridorLanes: make(map[string]struct{}, len(corridorLanes)),
		cycleLength:   cycleLength,
		greenBand:     greenBand,
		locals:        make(map[string]control.IController),
	}
	for _, laneID := range corridorLanes {
		c.corridorLanes[laneID] = struct{}{}
	}
	return c, nil
}

// NewCoordinatorFromConfig 从配置创建干线协调器
// 功能：按干线配置初始化协调器
// 参数：cc-干线配置
// 返回：协调器实例和错误信息
func NewCoordinatorFromConfig(cc config.CorridorConfig) (*Coordinator, error) {
	return NewCoordinator(cc.Lanes, cc.CycleLength, cc.GreenBand)
}

// WithinGreenBand 判断是否处于绿波窗口内
// 功能：计算(networkTime+offset) mod cycleLength < greenBand
// 参数：networkTime-网络时钟，offset-路口时钟偏移
// 返回：true表示该路口处于绿波窗口内
// 说明：以cycleLength为周期，每个周期内恰有greenBand个连续时刻为true
func (c *Coordinator) WithinGreenBand(networkTime, offset int32) bool {
	t := (networkTime + offset) % c.cycleLength
	if t < 0 {
		t += c.cycleLength
	}
	return t < c.greenBand
}

// corridorPhaseOf 获取路口的干线相位
// 功能：返回按声明顺序第一个放行至少一条干线车道的相位名
// 参数：i-路口状态
// 返回：干线相位名和是否存在的标志
func (c *Coordinator) corridorPhaseOf(i *intersection.Intersection) (string, bool) {
	for _, phase := range i.Phases() {
		for _, laneID := range phase.Lanes() {
			if _, ok := c.corridorLanes[laneID]; ok {
				return phase.Name(), true
			}
		}
	}
	return "", false
}

// pressure 计算网络级压力
// 功能：统计所有观测中干线车道与非干线车道的排队车辆总数
// 参数：observations-路口ID->观测快照
// 返回：干线压力和非干线压力
func (c *Coordinator) pressure(observations map[string]entity.Observation) (corridor, cross int) {
	for _, observation := range observations {
		for laneID, count := range observation.Vehicles {
			if _, ok := c.corridorLanes[laneID]; ok {
				corridor += count
			} else {
				cross += count
			}
		}
	}
	return corridor, cross
}

// SyncAndDecide 协调并为所有路口给出决策
// 功能：按网络级压力决定本步是否启用干线优先，并为每个路口给出保持/切换决策
// 参数：n-网络状态，observations-路口ID->观测快照（每个路口必须有对应观测）
// 返回：路口ID->决策映射和错误信息
// 算法说明：
// 1. 校验观测完整性：任一路口缺少观测即为本步致命错误，直接返回
// 2. 计算网络级压力：干线压力 >= 非干线压力时启用干线优先
//    （单一全网布尔标志而非按干线独立判断，多条不相交干线无法独立提权）
// 3. 对每个路口（按排序后ID）：
//    - 干线优先启用、该路口存在干线相位且偏移后时刻处于绿波窗口内：
//      强制跳转到干线相位（绕过最短/最长绿灯保证），给出"保持"决策
//      （强制跳转已完成相位切换，本步不再下发切换）
//    - 其他情况：委托给该路口的本地需求响应信控器
//      （每路口一个持久实例，首次使用时创建，之后跨步复用以保留本地状态）
func (c *Coordinator) SyncAndDecide(
	n *Network,
	observations map[string]entity.Observation,
) (map[string]entity.Decision, error) {
	for _, id := range n.IDs() {
		if _, ok := observations[id]; !ok {
			return nil, fmt.Errorf("%w: %s at time %d", ErrMissingObservation, id, n.Time())
		}
	}

	corridorPressure, crossPressure := c.pressure(observations)
	prioritizeCorridor := corridorPressure >= crossPressure

	decisions := make(map[string]entity.Decision, len(n.IDs()))
	for _, id := range n.IDs() {
		i := n.Get(id)
		local, ok := c.locals[id]
		if !ok {
			local = control.NewDefaultDemandResponsive()
			c.locals[id] = local
		}

		if prioritizeCorridor {
			if targetPhase, ok := c.corridorPhaseOf(i); ok && c.WithinGreenBand(n.Time(), n.Offset(id)) {
				if i.CurrentPhase().Name() != targetPhase {
					if err := i.SetPhase(targetPhase); err != nil {
						return nil, err
					}
				}
				decisions[id] = entity.Decision{Switch: false}
				continue
			}
		}

		decisions[id] = local.Decide(i, observations[id])
	}
	return decisions, nil
}
