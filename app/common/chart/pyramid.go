package chart

import (
	"math"
	"strings"
)

// Point SVG 坐标
type Point struct {
	X float64
	Y float64
}

// PyramidLayer 金字塔中的一层
type PyramidLayer struct {
	Name        string
	Description string
	Details     []string
	Color       string
	TextColor   string
}

// PyramidConfig 金字塔尺寸，零值字段使用默认值
type PyramidConfig struct {
	Width             float64
	HorizontalPadding float64
	LayerHeight       float64
	VerticalPadding   float64
	MinTopWidth       float64
}

func (c PyramidConfig) withDefaults() PyramidConfig {
	if c.Width <= 0 {
		c.Width = 450
	}
	if c.HorizontalPadding <= 0 {
		c.HorizontalPadding = 20
	}
	if c.LayerHeight <= 0 {
		c.LayerHeight = 75
	}
	if c.VerticalPadding <= 0 {
		c.VerticalPadding = 20
	}
	if c.MinTopWidth <= 0 {
		c.MinTopWidth = math.Max(c.Width*0.1, 40)
	}
	return c
}

// PyramidShape 一层对应的图形
type PyramidShape struct {
	Layer PyramidLayer
	// Level 自底向上的层号，0 为底层
	Level int
	// Row 自上而下的绘制行号
	Row         int
	Points      []Point
	Triangle    bool
	BottomWidth float64
	TopWidth    float64
	LabelX      float64
	LabelY      float64
	LabelClass  string
}

// PointsAttr SVG polygon 的 points 属性
func (s PyramidShape) PointsAttr() string {
	return pointsAttr(s.Points)
}

// PyramidLayout 金字塔布局结果
type PyramidLayout struct {
	Width       float64
	Height      float64
	BaseWidth   float64
	MinTopWidth float64
	Decrement   float64
	Shapes      []PyramidShape
}

// LayoutPyramid 计算金字塔布局。
// layers 自底向上给出，layers[N-1] 是塔尖，画成三角形。
func LayoutPyramid(layers []PyramidLayer, cfg PyramidConfig) PyramidLayout {
	cfg = cfg.withDefaults()
	n := len(layers)
	out := PyramidLayout{
		Width:       cfg.Width,
		Height:      float64(n)*cfg.LayerHeight + cfg.VerticalPadding*2,
		BaseWidth:   cfg.Width - cfg.HorizontalPadding*2,
		MinTopWidth: cfg.MinTopWidth,
	}
	if n == 0 {
		return out
	}
	if n > 1 {
		out.Decrement = (out.BaseWidth - out.MinTopWidth) / float64(n-1)
	}

	mid := cfg.Width / 2
	for level, layer := range layers {
		row := n - 1 - level
		y1 := cfg.VerticalPadding + float64(row)*cfg.LayerHeight
		y2 := y1 + cfg.LayerHeight

		shape := PyramidShape{
			Layer:       layer,
			Level:       level,
			Row:         row,
			BottomWidth: out.BaseWidth - float64(level)*out.Decrement,
			TopWidth:    out.BaseWidth - float64(level+1)*out.Decrement,
			LabelX:      mid,
			LabelY:      y1 + cfg.LayerHeight/2,
			LabelClass:  labelClass(layer),
		}

		if level == n-1 {
			base := math.Max(out.MinTopWidth, shape.BottomWidth)
			shape.Triangle = true
			shape.BottomWidth = base
			shape.TopWidth = 0
			shape.Points = []Point{
				{X: mid, Y: y1},
				{X: mid + base/2, Y: y2},
				{X: mid - base/2, Y: y2},
			}
		} else {
			shape.Points = []Point{
				{X: mid - shape.TopWidth/2, Y: y1},
				{X: mid + shape.TopWidth/2, Y: y1},
				{X: mid + shape.BottomWidth/2, Y: y2},
				{X: mid - shape.BottomWidth/2, Y: y2},
			}
		}
		out.Shapes = append(out.Shapes, shape)
	}
	return out
}

// labelClass 深色填充用白字，其余用深色字
func labelClass(l PyramidLayer) string {
	if l.TextColor != "" {
		return l.TextColor
	}
	for _, dark := range []string{"700", "800", "900", "accent-primary"} {
		if strings.Contains(l.Color, dark) {
			return "fill-white"
		}
	}
	return "fill-gray-900"
}

// Detail 返回悬停层的详情面板
func (p PyramidLayout) Detail(h Hover) Detail {
	if !h.Active() || int(h) >= len(p.Shapes) {
		return Detail{Prompt: PyramidPrompt}
	}
	l := p.Shapes[h].Layer
	return newDetail(l.Name, l.Description, l.Details)
}
