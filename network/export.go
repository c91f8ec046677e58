package network

import (
	"sort"

	"github.com/google/uuid"
)

// Frame 导出结果中的单帧
// 功能：某路口在某一时刻的完整快照
type Frame struct {
	Time         int32          // 记录时刻
	Intersection string         // 路口ID
	Phase        string         // 激活相位名
	Queues       map[string]int // 车道ID->排队车辆数
	Pedestrians  map[string]int // 车道ID->等待行人数
}

// Result 网络仿真导出结果
// 功能：面向外部消费方（导出器、看板）的时间有序历史
type Result struct {
	RunID  string  // 本次运行的唯一标识
	Frames []Frame // 全部帧，按(时刻, 路口ID)排序
}

// Export 导出网络仿真结果
// 功能：将各路口的每步历史展平为帧序列
// 返回：导出结果
// 说明：帧按时刻排序，同一时刻按路口ID排序；
// 帧数等于步数乘以路口数
func (n *Network) Export() Result {
	frames := make([]Frame, 0, len(n.history)*len(n.ids))
	for _, id := range n.ids {
		for _, snapshot := range n.Get(id).History() {
			frames = append(frames, Frame{
				Time:         snapshot.Time,
				Intersection: id,
				Phase:        snapshot.Phase,
				Queues:       snapshot.Queues,
				Pedestrians:  snapshot.Pedestrians,
			})
		}
	}
	sort.Slice(frames, func(a, b int) bool {
		if frames[a].Time != frames[b].Time {
			return frames[a].Time < frames[b].Time
		}
		return frames[a].Intersection < frames[b].Intersection
	})
	return Result{
		RunID:  uuid.NewString(),
		Frames: frames,
	}
}
