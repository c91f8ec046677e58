package intersection

import (
	"errors"
	"fmt"

	"github.com/eikden/traffic-lights-optimization/entity/lane"
	"github.com/eikden/traffic-lights-optimization/utils/config"
)

var (
	ErrUnknownPhase = errors.New("intersection: unknown phase")
)

// Snapshot 路口单步快照
// 功能：记录某一时刻的激活相位与各车道计数
// 说明：写入历史后不可变，映射为记录时的副本
type Snapshot struct {
	Time        int32          // 记录时刻
	Phase       string         // 激活相位名
	Queues      map[string]int // 车道ID->排队车辆数
	Pedestrians map[string]int // 车道ID->等待行人数
}

// Intersection 路口实体
// 功能：维护路口的相位环、车道集合、当前相位与运行历史
// 说明：相位按声明顺序循环切换，任意时刻恰有一个激活相位；
// 历史只追加不修改，同一次运行中实体不会被销毁
type Intersection struct {
	id           string                // 路口ID（布局ID）
	phases       []*Phase              // 相位列表（循环）
	lanes        map[string]*lane.Lane // 车道ID->车道映射表
	laneOrder    []string              // 车道ID列表，按相位声明中首次出现的顺序
	currentIndex int                   // 当前相位索引
	time         int32                 // 已仿真时长
	history      []Snapshot            // 每步快照历史
}

// New 创建并初始化一个新的Intersection实例
// 功能：根据布局配置创建路口对象，实例化相位与被引用的所有车道
// 参数：layout-已通过校验的路口布局配置
// 返回：初始化完成的路口实例
// 说明：布局校验由配置加载方负责，核心假定输入合法；
// 车道集合由相位引用推导，保证每个被引用车道都存在于映射表中
func New(layout config.LayoutConfig) *Intersection {
	i := &Intersection{
		id:        layout.ID,
		phases:    make([]*Phase, 0, len(layout.Phases)),
		lanes:     make(map[string]*lane.Lane),
		laneOrder: make([]string, 0),
	}
	for _, p := range layout.Phases {
		i.phases = append(i.phases, &Phase{
			name:     p.Name,
			lanes:    append([]string(nil), p.Lanes...),
			minGreen: p.MinGreen,
			maxGreen: p.MaxGreen,
		})
		for _, laneID := range p.Lanes {
			if _, ok := i.lanes[laneID]; !ok {
				i.lanes[laneID] = lane.New(laneID)
				i.laneOrder = append(i.laneOrder, laneID)
			}
		}
	}
	return i
}

// ID 获取路口ID
func (i *Intersection) ID() string {
	return i.id
}

// Time 获取已仿真时长
func (i *Intersection) Time() int32 {
	return i.time
}

// Phases 获取相位列表
func (i *Intersection) Phases() []*Phase {
	return i.phases
}

// CurrentPhase 获取当前激活相位
func (i *Intersection) CurrentPhase() *Phase {
	return i.phases[i.currentIndex]
}

// Lane 根据ID获取车道实例
// 功能：通过车道ID查找对应的车道对象，如果不存在则panic
// 参数：id-车道ID
// 返回：对应的车道实例
// 说明：构造保证相位引用的车道都存在，缺失属于编程错误
func (i *Intersection) Lane(id string) *lane.Lane {
	l, ok := i.lanes[id]
	if !ok {
		log.Panicf("no id %s in lanes of intersection %s", id, i.id)
	}
	return l
}

// Lanes 获取所有车道
// 功能：返回路口全部车道的列表
// 返回：车道列表，按相位声明中首次出现的顺序
// 说明：固定顺序保证随机数消耗顺序确定，从而保证运行可复现
func (i *Intersection) Lanes() []*lane.Lane {
	lanes := make([]*lane.Lane, 0, len(i.laneOrder))
	for _, id := range i.laneOrder {
		lanes = append(lanes, i.lanes[id])
	}
	return lanes
}

// AdvancePhase 切换到下一相位
// 功能：当前相位索引移动到(index+1) mod 相位数，新相位计时清零
// 说明：相位环不为空（构造保证至少一个相位），该操作总是成功
func (i *Intersection) AdvancePhase() {
	i.currentIndex = (i.currentIndex + 1) % len(i.phases)
	i.CurrentPhase().reset()
}

// SetPhase 跳转到指定相位
// 功能：直接激活指定名字的相位并清零其计时
// 参数：name-目标相位名
// 返回：错误信息，相位不存在时返回ErrUnknownPhase
// 说明：仅供干线协调器强制对齐使用，绕过本地信控决策
func (i *Intersection) SetPhase(name string) error {
	for index, p := range i.phases {
		if p.name == name {
			i.currentIndex = index
			p.reset()
			return nil
		}
	}
	return fmt.Errorf("%w: %s in intersection %s", ErrUnknownPhase, name, i.id)
}

// Tick 推进路口时钟
// 功能：已仿真时长与当前相位的激活时长各加一
// 说明：除两个计数器外无其他副作用
func (i *Intersection) Tick() {
	i.time++
	i.CurrentPhase().tick()
}

// Record 记录当前快照
// 功能：将(时刻, 激活相位名, 各车道排队车辆数, 各车道等待行人数)追加到历史
// 说明：快照映射为副本，与车道实时状态解耦；历史只增不减
func (i *Intersection) Record() {
	snapshot := Snapshot{
		Time:        i.time,
		Phase:       i.CurrentPhase().name,
		Queues:      make(map[string]int, len(i.lanes)),
		Pedestrians: make(map[string]int, len(i.lanes)),
	}
	for id, l := range i.lanes {
		snapshot.Queues[id] = l.Queue()
		snapshot.Pedestrians[id] = l.Pedestrians()
	}
	i.history = append(i.history, snapshot)
}

// History 获取完整历史
func (i *Intersection) History() []Snapshot {
	return i.history
}

// LatestSnapshot 获取最近一条快照
// 功能：返回历史中的最后一条快照
// 返回：快照和是否存在的标志
// 说明：外部持久化协作方可以只消费最新快照，避免持有全量历史
func (i *Intersection) LatestSnapshot() (Snapshot, bool) {
	if len(i.history) == 0 {
		return Snapshot{}, false
	}
	return i.history[len(i.history)-1], true
}
