package config

// PhaseConfig 相位配置
// 功能：定义单个信控相位的配置结构
// 说明：相位是允许同时放行的车道组合，配置最短/最长绿灯时长
type PhaseConfig struct {
	Name     string   `yaml:"name"`      // 相位名，在同一路口内唯一
	Lanes    []string `yaml:"lanes"`     // 该相位放行的车道ID列表
	MinGreen int32    `yaml:"min_green"` // 最短绿灯时长
	MaxGreen int32    `yaml:"max_green"` // 最长绿灯时长
}

// LayoutConfig 路口布局配置
// 功能：定义单个路口的相位与车道布局
// 说明：车道集合由所有相位引用的车道推导得到
type LayoutConfig struct {
	ID     string        `yaml:"id"`     // 路口ID
	Phases []PhaseConfig `yaml:"phases"` // 相位列表（按声明顺序循环切换）
}

// ControlStep 指定模拟器模拟时间范围的配置项
// 功能：定义仿真时间控制参数
type ControlStep struct {
	Total int32 `yaml:"total"` // 总步数
}

// CorridorConfig 绿波干线配置
// 功能：定义干线协调控制的参数
// 说明：干线车道为一组跨路口的直行车道ID，绿波窗口由周期与带宽定义
type CorridorConfig struct {
	Lanes       []string `yaml:"lanes"`        // 干线车道ID列表
	CycleLength int32    `yaml:"cycle_length"` // 协调周期
	GreenBand   int32    `yaml:"green_band"`   // 绿波带宽，不得超过周期
}

// Control 模拟器控制配置
// 功能：定义仿真系统的核心控制参数
type Control struct {
	Step             ControlStep      `yaml:"step"`                // 时间控制
	ArrivalIntensity float64          `yaml:"arrival_intensity"`   // 车辆到达强度（每步均值为3倍强度）
	CrossingRate     float64          `yaml:"crossing_rate"`       // 行人过街概率（每步每车道）
	SaturationFlow   int              `yaml:"saturation_flow"`     // 饱和流率（绿灯车道每步最大放行车辆数）
	Seed             uint64           `yaml:"seed,omitempty"`      // 随机数种子
	Corridor         *CorridorConfig  `yaml:"corridor,omitempty"`  // 干线协调配置，为空则不启用协调
	Offsets          map[string]int32 `yaml:"offsets,omitempty"`   // 各路口时钟偏移（默认0）
}

// Config YAML配置文件的根结构
// 功能：定义整个仿真系统的配置结构
type Config struct {
	Layouts []LayoutConfig `yaml:"layouts"` // 路口布局列表
	Control Control        `yaml:"control"` // 模拟过程控制
}
