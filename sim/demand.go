// 需求模拟模块
// 提供车辆到达、行人过街的随机注入，观测快照采集与绿灯放行
package sim

import (
	"fmt"

	"github.com/eikden/traffic-lights-optimization/entity"
	"github.com/eikden/traffic-lights-optimization/entity/intersection"
	"github.com/eikden/traffic-lights-optimization/entity/lane"
	"github.com/eikden/traffic-lights-optimization/utils/randengine"
)

// SimulateArrivals 模拟车辆到达
// 功能：对每条车道按截断高斯分布生成到达车辆数并加入排队
// 参数：lanes-车道列表，intensity-到达强度，engine-随机数引擎
// 说明：分布均值为3倍强度、标准差为1，负数采样截断为0；
// 相同种子的引擎保证到达序列完全可复现
func SimulateArrivals(lanes []*lane.Lane, intensity float64, engine *randengine.Engine) {
	for _, l := range lanes {
		l.AddVehicles(engine.GaussInt(intensity*3, 1))
	}
}

// SimulatePedestrians 模拟行人到达
// 功能：对每条车道以独立概率crossingRate增加一名等待行人
// 参数：lanes-车道列表，crossingRate-每步过街概率，engine-随机数引擎
func SimulatePedestrians(lanes []*lane.Lane, crossingRate float64, engine *randengine.Engine) {
	for _, l := range lanes {
		if engine.PTrue(crossingRate) {
			l.AddPedestrian()
		}
	}
}

// CaptureObservation 采集观测快照
// 功能：将路口各车道的排队车辆数与等待行人数复制为观测快照
// 参数：i-路口状态
// 返回：观测快照
// 说明：纯读取操作，快照映射为副本，不与路口状态共享
func CaptureObservation(i *intersection.Intersection) entity.Observation {
	lanes := i.Lanes()
	observation := entity.Observation{
		Vehicles:    make(map[string]int, len(lanes)),
		Pedestrians: make(map[string]int, len(lanes)),
	}
	for _, l := range lanes {
		observation.Vehicles[l.ID()] = l.Queue()
		observation.Pedestrians[l.ID()] = l.Pedestrians()
	}
	return observation
}

// ApplyDischarge 应用绿灯放行
// 功能：仅对当前相位放行的车道按饱和流率放行车辆，之后所有车道行人消退一名
// 参数：i-路口状态，saturationFlow-饱和流率（每车道每步最大放行车辆数）
// 返回：各车道实际放行车辆数（诊断用）和错误信息
// 说明：非当前相位的车道不放行；行人在任意相位下均消退；
// saturationFlow为负时在任何状态修改前拒绝
func ApplyDischarge(i *intersection.Intersection, saturationFlow int) (map[string]int, error) {
	if saturationFlow < 0 {
		return nil, fmt.Errorf("apply discharge: %w", lane.ErrNegativeCapacity)
	}
	discharged := make(map[string]int, len(i.CurrentPhase().Lanes()))
	for _, laneID := range i.CurrentPhase().Lanes() {
		cleared, err := i.Lane(laneID).DischargeUpTo(saturationFlow)
		if err != nil {
			return nil, fmt.Errorf("apply discharge: %w", err)
		}
		discharged[laneID] = cleared
	}
	for _, l := range i.Lanes() {
		l.DecayPedestrian()
	}
	return discharged, nil
}
