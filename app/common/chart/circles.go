package chart

import (
	"math"
	"sort"
	"strings"
)

// minRadiusFactor 最小值对应的半径占 maxRadius 的比例
const minRadiusFactor = 0.35

// CircleLayer 同心圆中的一层
type CircleLayer struct {
	Name        string
	Description string
	Details     []string
	Color       string
	TextColor   string
	Value       float64
}

// CircleConfig 同心圆尺寸，零值字段使用默认值
type CircleConfig struct {
	Size          float64
	BottomPadding float64
	TopPadding    float64
}

func (c CircleConfig) withDefaults() CircleConfig {
	if c.Size <= 0 {
		c.Size = 300
	}
	if c.BottomPadding <= 0 {
		c.BottomPadding = 20
	}
	if c.TopPadding <= 0 {
		c.TopPadding = 20
	}
	return c
}

// CircleShape 一个圆及其标签位置
type CircleShape struct {
	Layer CircleLayer
	// Index 在输入中的下标，悬停以它为准
	Index  int
	CX     float64
	CY     float64
	R      float64
	LabelY float64
}

// CircleLayout 同心圆布局结果
type CircleLayout struct {
	Width     float64
	Height    float64
	MaxRadius float64
	Baseline  float64
	MaxValue  float64
	// Circles 按值从大到小，先画大圆
	Circles []CircleShape
	// Labels 按值从小到大，大圆的标签最后画
	Labels []CircleShape
}

// LayoutCircles 计算同心圆布局，所有圆底部落在同一基线上
func LayoutCircles(layers []CircleLayer, cfg CircleConfig) CircleLayout {
	cfg = cfg.withDefaults()
	out := CircleLayout{
		Width:     cfg.Size,
		Height:    cfg.Size,
		MaxRadius: (cfg.Size - cfg.BottomPadding - cfg.TopPadding) / 2,
		Baseline:  cfg.Size - cfg.BottomPadding,
		MaxValue:  1,
	}
	for _, l := range layers {
		if l.Value > out.MaxValue {
			out.MaxValue = l.Value
		}
	}

	shapes := make([]CircleShape, 0, len(layers))
	for i, l := range layers {
		r := Radius(l.Value, out.MaxValue, out.MaxRadius)
		cy := out.Baseline - r
		shapes = append(shapes, CircleShape{
			Layer:  l,
			Index:  i,
			CX:     cfg.Size / 2,
			CY:     cy,
			R:      r,
			LabelY: cy + labelOffset(l.Name)*r,
		})
	}
	sort.SliceStable(shapes, func(i, j int) bool {
		return shapes[i].Layer.Value > shapes[j].Layer.Value
	})
	out.Circles = shapes

	out.Labels = make([]CircleShape, len(shapes))
	for i := range shapes {
		out.Labels[i] = shapes[len(shapes)-1-i]
	}
	return out
}

// Radius maxRadius·(0.35 + 0.65·(v/maxV)^1.5)，比例限制在 [0, 1]
func Radius(value, maxValue, maxRadius float64) float64 {
	if maxValue < 1 {
		maxValue = 1
	}
	ratio := value / maxValue
	if math.IsNaN(ratio) || ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return maxRadius * (minRadiusFactor + (1-minRadiusFactor)*math.Pow(ratio, 1.5))
}

// labelOffset TAM 偏上，SAM 居中，SOM 偏下，其余居中
func labelOffset(name string) float64 {
	switch {
	case strings.Contains(name, "TAM"):
		return -0.4
	case strings.Contains(name, "SAM"):
		return 0
	case strings.Contains(name, "SOM"):
		return 0.4
	}
	return 0
}

// Detail 返回悬停圆的详情面板，h 为输入下标
func (c CircleLayout) Detail(h Hover) Detail {
	for _, s := range c.Circles {
		if h.Active() && s.Index == int(h) {
			return newDetail(s.Layer.Name, s.Layer.Description, s.Layer.Details)
		}
	}
	return Detail{Prompt: CirclePrompt}
}
