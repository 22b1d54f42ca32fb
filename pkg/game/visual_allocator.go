package game

import "github.com/decker502/garden/pkg/components"

// VisualHandle 表现层资源句柄
type VisualHandle = components.VisualHandle

// VisualAllocator 表现层资源分配接口
//
// 模拟器在种植成功时调用 CreateVisual，在铲除植物时调用 ReleaseVisual。
// 表现层只持有句柄，不持有模拟状态；每帧通过 GardenManager.PlantViews 读取状态进行渲染。
type VisualAllocator interface {
	CreateVisual(view PlantView) VisualHandle
	ReleaseVisual(handle VisualHandle)
}

// SequentialVisualAllocator 默认分配器：按顺序发放句柄，记录存活句柄
// 用于无界面运行和测试
type SequentialVisualAllocator struct {
	next uint64
	live map[VisualHandle]struct{}
}

// NewSequentialVisualAllocator 创建默认分配器
func NewSequentialVisualAllocator() *SequentialVisualAllocator {
	return &SequentialVisualAllocator{
		next: 1, // 0 保留为无效句柄
		live: make(map[VisualHandle]struct{}),
	}
}

// CreateVisual 发放新句柄
func (a *SequentialVisualAllocator) CreateVisual(view PlantView) VisualHandle {
	h := VisualHandle(a.next)
	a.next++
	a.live[h] = struct{}{}
	return h
}

// ReleaseVisual 释放句柄
func (a *SequentialVisualAllocator) ReleaseVisual(handle VisualHandle) {
	delete(a.live, handle)
}

// LiveCount 返回尚未释放的句柄数量
func (a *SequentialVisualAllocator) LiveCount() int {
	return len(a.live)
}

// IsLive 检查句柄是否尚未释放
func (a *SequentialVisualAllocator) IsLive(handle VisualHandle) bool {
	_, ok := a.live[handle]
	return ok
}
