// 多路口网络与干线协调模块
// 在共享时钟上运行多个路口，并通过干线协调器对齐绿波
package network

import (
	"fmt"
	"sort"

	"git.fiblab.net/general/common/v2/parallel"
	"github.com/samber/lo"

	"github.com/eikden/traffic-lights-optimization/entity/intersection"
	"github.com/eikden/traffic-lights-optimization/utils/config"
	"github.com/eikden/traffic-lights-optimization/utils/randengine"
)

// IntersectionSnapshot 网络快照中单个路口的状态
type IntersectionSnapshot struct {
	Phase  string         // 激活相位名
	Queues map[string]int // 车道ID->排队车辆数
}

// Snapshot 网络单步快照
// 功能：记录某一时刻所有路口的激活相位与排队情况
type Snapshot struct {
	Time          int32                           // 记录时刻（网络时钟）
	Intersections map[string]IntersectionSnapshot // 路口ID->路口状态
}

// Network 路口网络
// 功能：管理共享时钟下的多个路口、各路口的时钟偏移与跨路口历史
// 说明：偏移映射的键集合覆盖路口映射的键集合（缺省偏移为0）；
// 遍历一律按排序后的路口ID进行，保证运行结果确定
type Network struct {
	ids           []string                              // 排序后的路口ID列表
	intersections map[string]*intersection.Intersection // 路口ID->路口映射表
	offsets       map[string]int32                      // 路口ID->时钟偏移（仅用于绿波窗口计算）
	engines       map[string]*randengine.Engine         // 路口ID->独立随机数引擎
	time          int32                                 // 网络已仿真时长
	history       []Snapshot                            // 每步跨路口快照历史
}

// New 创建并初始化路口网络
// 功能：根据布局列表构建所有路口，分配时钟偏移与独立随机数引擎
// 参数：layouts-路口布局列表，offsets-路口时钟偏移（可为nil，缺省为0），seed-基础随机数种子
// 返回：初始化完成的网络实例和错误信息
// 说明：路口并行构建；第k个路口（按排序后ID）使用种子seed+k的引擎，
// 保证并行注入需求时运行仍可复现
func New(layouts []config.LayoutConfig, offsets map[string]int32, seed uint64) (*Network, error) {
	ids := make(map[string]struct{}, len(layouts))
	for _, layout := range layouts {
		if err := layout.Validate(); err != nil {
			return nil, err
		}
		if _, ok := ids[layout.ID]; ok {
			return nil, fmt.Errorf("%w: duplicated layout id %s", config.ErrInvalidLayout, layout.ID)
		}
		ids[layout.ID] = struct{}{}
	}

	intersections := parallel.GoMap(layouts, func(layout config.LayoutConfig) *intersection.Intersection {
		return intersection.New(layout)
	})
	n := &Network{
		intersections: lo.SliceToMap(intersections, func(i *intersection.Intersection) (string, *intersection.Intersection) {
			return i.ID(), i
		}),
		offsets: make(map[string]int32, len(layouts)),
		engines: make(map[string]*randengine.Engine, len(layouts)),
	}
	n.ids = lo.Keys(n.intersections)
	sort.Strings(n.ids)
	for k, id := range n.ids {
		n.offsets[id] = offsets[id]
		n.engines[id] = randengine.New(seed + uint64(k))
	}
	return n, nil
}

// IDs 获取排序后的路口ID列表
func (n *Network) IDs() []string {
	return n.ids
}

// Time 获取网络已仿真时长
func (n *Network) Time() int32 {
	return n.time
}

// Offset 获取指定路口的时钟偏移
func (n *Network) Offset(id string) int32 {
	return n.offsets[id]
}

// Get 根据ID获取路口实例
// 功能：通过路口ID查找对应的路口对象，如果不存在则panic
// 参数：id-路口ID
// 返回：对应的路口实例，如果不存在则panic
func (n *Network) Get(id string) *intersection.Intersection {
	i, ok := n.intersections[id]
	if !ok {
		log.Panicf("no id %s in network intersections", id)
	}
	return i
}

// GetOrError 根据ID获取路口实例（带错误处理）
// 功能：通过路口ID查找对应的路口对象，如果不存在则返回错误
// 参数：id-路口ID
// 返回：路口实例和错误信息
func (n *Network) GetOrError(id string) (*intersection.Intersection, error) {
	i, ok := n.intersections[id]
	if !ok {
		return nil, fmt.Errorf("no id %s in network intersections", id)
	}
	return i, nil
}

// AdvanceTime 推进网络时钟
// 功能：网络已仿真时长加一
func (n *Network) AdvanceTime() {
	n.time++
}

// Record 记录网络快照
// 功能：将所有路口的激活相位与排队情况追加到网络历史
// 说明：快照映射为副本，历史只增不减
func (n *Network) Record() {
	snapshot := Snapshot{
		Time:          n.time,
		Intersections: make(map[string]IntersectionSnapshot, len(n.ids)),
	}
	for _, id := range n.ids {
		i := n.intersections[id]
		queues := make(map[string]int)
		for _, l := range i.Lanes() {
			queues[l.ID()] = l.Queue()
		}
		snapshot.Intersections[id] = IntersectionSnapshot{
			Phase:  i.CurrentPhase().Name(),
			Queues: queues,
		}
	}
	n.history = append(n.history, snapshot)
}

// History 获取网络历史
func (n *Network) History() []Snapshot {
	return n.history
}
