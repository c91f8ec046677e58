package clock

import "fmt"

// Clock 仿真时钟
// 功能：管理仿真的离散时间推进，模拟区间为[START_STEP, END_STEP)
// 说明：每个tick代表1秒仿真时间，提供时间格式化等辅助功能
type Clock struct {
	START_STEP int32 // 起始步
	END_STEP   int32 // 结束步

	Step int32 // 当前步数
}

// New 创建新的时钟实例
// 功能：根据总步数初始化时钟，起始步为0
// 参数：total-总仿真步数
// 返回：初始化完成的时钟实例
func New(total int32) *Clock {
	c := &Clock{
		START_STEP: 0,
		END_STEP:   total,
	}
	c.Init()
	return c
}

// Init 初始化时钟状态
// 功能：将当前步数重置为起始步
func (c *Clock) Init() {
	c.Step = c.START_STEP
}

// Done 判断仿真是否结束
// 功能：检查当前步数是否到达结束步
// 返回：true表示所有步数已执行完毕
func (c *Clock) Done() bool {
	return c.Step >= c.END_STEP
}

// Tick 推进时钟
// 功能：当前步数加一
func (c *Clock) Tick() {
	c.Step++
}

// String 获取时钟的字符串表示
// 功能：将当前时间格式化为可读的字符串（HH:MM:SS）
// 返回：格式化的时间字符串
func (c *Clock) String() string {
	h, m, s := c.GetHourMinuteSecond()
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// GetHourMinuteSecond 获取当前时间的小时、分钟、秒
// 功能：将当前步数（1步=1秒）分解为小时、分钟、秒三个部分
// 返回：小时、分钟、秒
func (c *Clock) GetHourMinuteSecond() (int, int, int) {
	t := int(c.Step)
	hour := t / 3600
	minute := t % 3600 / 60
	second := t % 60
	return hour, minute, second
}
