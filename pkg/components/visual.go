package components

// VisualHandle 表现层资源的不透明句柄
// 0 表示无效句柄
type VisualHandle uint64

// VisualComponent 植物对应的表现层资源
//
// 句柄由模拟器代表表现层持有：种植时创建，铲除时释放
type VisualComponent struct {
	Handle VisualHandle
}
