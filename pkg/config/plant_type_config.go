package config

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// PlantTypeConfig 单个植物品种的参数
//
// 加载完成后不可变，同一品种的所有植物共享同一个 *PlantTypeConfig
type PlantTypeConfig struct {
	ID              string  `yaml:"id"`              // 品种ID，如 "yellow"
	DisplayName     string  `yaml:"displayName"`     // 显示名称，如 "Yellow Flower"
	ColorHex        string  `yaml:"color"`           // 花朵颜色，#RRGGBB
	GrowthSpeed     float64 `yaml:"growthSpeed"`     // 生长速度：1 = 正常，1.5 = 快，0.7 = 慢
	PointIncome     float64 `yaml:"pointIncome"`     // 成熟后每秒产出的分数
	MaintenanceRate float64 `yaml:"maintenanceRate"` // 成熟后每秒消耗的水量
	WaterCapacity   float64 `yaml:"waterCapacity"`   // 水容量，固定为 1（省略时取默认值）

	color color.RGBA
}

// Color 返回解析后的花朵颜色
func (p *PlantTypeConfig) Color() color.RGBA {
	return p.color
}

// Name 返回用于显示的名称，未配置时回退到品种ID
func (p *PlantTypeConfig) Name() string {
	if p.DisplayName != "" {
		return p.DisplayName
	}
	return p.ID
}

// NewPlantType 以代码方式构造品种配置（测试和宿主程序使用）
// 返回的配置已通过校验
func NewPlantType(id string, c color.RGBA, growthSpeed, pointIncome, maintenanceRate float64) (*PlantTypeConfig, error) {
	p := &PlantTypeConfig{
		ID:              id,
		DisplayName:     id,
		ColorHex:        FormatColorHex(c),
		GrowthSpeed:     growthSpeed,
		PointIncome:     pointIncome,
		MaintenanceRate: maintenanceRate,
	}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// validate 校验并补全品种配置
func (p *PlantTypeConfig) validate() error {
	if p.ID == "" {
		return fmt.Errorf("plant type id cannot be empty")
	}
	if p.GrowthSpeed <= 0 {
		return fmt.Errorf("plant type %s: growthSpeed must be positive, got %v", p.ID, p.GrowthSpeed)
	}
	if p.PointIncome < 0 {
		return fmt.Errorf("plant type %s: pointIncome cannot be negative, got %v", p.ID, p.PointIncome)
	}
	if p.MaintenanceRate < 0 {
		return fmt.Errorf("plant type %s: maintenanceRate cannot be negative, got %v", p.ID, p.MaintenanceRate)
	}
	if p.WaterCapacity == 0 {
		p.WaterCapacity = DefaultWaterCapacity
	}
	if p.WaterCapacity != DefaultWaterCapacity {
		return fmt.Errorf("plant type %s: waterCapacity must be %v, got %v", p.ID, DefaultWaterCapacity, p.WaterCapacity)
	}

	c, err := ParseColorHex(p.ColorHex)
	if err != nil {
		return fmt.Errorf("plant type %s: %w", p.ID, err)
	}
	p.color = c
	return nil
}

// ParseColorHex 解析 "#RRGGBB" 格式的颜色（"#" 可省略）
func ParseColorHex(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid color %q: expected #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}

// FormatColorHex 将颜色格式化为 "#RRGGBB"
func FormatColorHex(c color.RGBA) string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}
