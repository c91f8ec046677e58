package lane

import "errors"

var (
	ErrNegativeCapacity = errors.New("lane: discharge capacity must be non-negative")
)

// Lane 车道实体
// 功能：维护单条车道的排队车辆数与等待行人数
// 说明：两个计数均不小于0，所有修改操作在下限处截断
type Lane struct {
	id          string // 车道ID
	queue       int    // 排队车辆数
	pedestrians int    // 等待行人数
}

// New 创建车道实例
// 功能：根据车道ID初始化空车道
// 参数：id-车道ID
// 返回：初始化完成的车道实例
func New(id string) *Lane {
	return &Lane{id: id}
}

// ID 获取车道ID
func (l *Lane) ID() string {
	return l.id
}

// Queue 获取排队车辆数
func (l *Lane) Queue() int {
	return l.queue
}

// Pedestrians 获取等待行人数
func (l *Lane) Pedestrians() int {
	return l.pedestrians
}

// AddVehicles 增加排队车辆
// 功能：排队车辆数增加count，结果在0处截断
// 参数：count-车辆数变化量，可为负数（用于修正）
func (l *Lane) AddVehicles(count int) {
	l.queue = max(0, l.queue+count)
}

// DischargeUpTo 按容量放行车辆
// 功能：移除min(排队车辆数, capacity)辆车
// 参数：capacity-本步最大放行车辆数，必须非负
// 返回：实际放行车辆数和错误信息
// 说明：capacity为负时在任何状态修改前返回ErrNegativeCapacity
func (l *Lane) DischargeUpTo(capacity int) (int, error) {
	if capacity < 0 {
		return 0, ErrNegativeCapacity
	}
	cleared := min(l.queue, capacity)
	l.queue -= cleared
	return cleared, nil
}

// AddPedestrian 增加一名等待行人
func (l *Lane) AddPedestrian() {
	l.pedestrians++
}

// DecayPedestrian 行人过街消退
// 功能：等待行人数减一，结果在0处截断
// 说明：行人在任意相位下均可过街，建模固定的过街时长
func (l *Lane) DecayPedestrian() {
	l.pedestrians = max(0, l.pedestrians-1)
}
