package entity

// Observation 单个tick的检测器观测快照
// 两个映射在构造时复制，不与路口内部状态共享，消费后即丢弃
type Observation struct {
	Vehicles    map[string]int // 车道ID->排队车辆数
	Pedestrians map[string]int // 车道ID->等待行人数
}

// Decision 信控决策结果
// Switch为true表示切换到下一相位，false表示保持当前相位
type Decision struct {
	Switch bool
}
