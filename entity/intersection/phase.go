package intersection

// Phase 信控相位
// 功能：表示一组允许同时放行的车道及其绿灯时长约束
// 说明：elapsed为自上次激活以来的时长，激活时清零
type Phase struct {
	name     string   // 相位名
	lanes    []string // 放行车道ID列表
	minGreen int32    // 最短绿灯时长
	maxGreen int32    // 最长绿灯时长
	elapsed  int32    // 当前激活时长
}

// Name 获取相位名
func (p *Phase) Name() string {
	return p.name
}

// Lanes 获取放行车道ID列表
func (p *Phase) Lanes() []string {
	return p.lanes
}

// MinGreen 获取最短绿灯时长
func (p *Phase) MinGreen() int32 {
	return p.minGreen
}

// MaxGreen 获取最长绿灯时长
func (p *Phase) MaxGreen() int32 {
	return p.maxGreen
}

// Elapsed 获取当前激活时长
func (p *Phase) Elapsed() int32 {
	return p.elapsed
}

// MustExtend 判断相位是否必须延长
// 功能：激活时长未达到最短绿灯时长时相位不可被打断
// 返回：true表示必须保持当前相位
func (p *Phase) MustExtend() bool {
	return p.elapsed < p.minGreen
}

// CanExtend 判断相位是否可以延长
// 功能：激活时长未达到最长绿灯时长时相位可以继续延长
// 返回：true表示相位还有延长空间
func (p *Phase) CanExtend() bool {
	return p.elapsed < p.maxGreen
}

// reset 相位激活时清零计时
func (p *Phase) reset() {
	p.elapsed = 0
}

// tick 激活时长加一
func (p *Phase) tick() {
	p.elapsed++
}
