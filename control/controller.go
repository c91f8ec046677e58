// 信控决策模块
// 提供决策契约接口与基于排队需求的规则信控实现
package control

import (
	"github.com/eikden/traffic-lights-optimization/entity"
	"github.com/eikden/traffic-lights-optimization/entity/intersection"
)

// IController 信控决策接口
// 功能：根据路口状态与观测快照给出保持/切换决策
// 说明：实现必须是(路口, 观测)的纯函数，不得修改任一参数；
// 任何替代策略（包括学习型策略）实现同一接口即可接入仿真循环
type IController interface {
	Decide(i *intersection.Intersection, observation entity.Observation) entity.Decision
}
