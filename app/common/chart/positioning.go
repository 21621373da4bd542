package chart

import "math"

const (
	axisMin = 0
	axisMax = 10
	// gridLines 每个方向的网格线条数，第 5 条是中线
	gridLines = 11
	gridMajor = 5
)

// StarPoints 自家公司的星形标记
const StarPoints = "0,-7 2.05,-2.05 7,0 2.05,2.05 0,7 -2.05,2.05 -7,0 -2.05,-2.05"

// MapInput 定位图上的一个点，坐标为 0~10 的分值
type MapInput struct {
	Name string
	X    float64
	Y    float64
}

// MapData 定位图输入
type MapData struct {
	XAxisLabel  string
	YAxisLabel  string
	Our         MapInput
	Competitors []MapInput
}

// MapConfig 定位图尺寸，零值字段使用默认值
type MapConfig struct {
	Width   float64
	Height  float64
	Padding float64
}

func (c MapConfig) withDefaults() MapConfig {
	if c.Width <= 0 {
		c.Width = 380
	}
	if c.Height <= 0 {
		c.Height = 320
	}
	if c.Padding <= 0 {
		c.Padding = 50
	}
	return c
}

// MapPoint 换算到屏幕坐标后的点
type MapPoint struct {
	Name string
	X    float64
	Y    float64
	// Clamped 原始分值超出 [0, 10] 或为 NaN，已被修正
	Clamped bool
}

// GridLine 网格线
type GridLine struct {
	X1, Y1, X2, Y2 float64
	Major          bool
}

// MapLayout 定位图布局结果
type MapLayout struct {
	Width       float64
	Height      float64
	Padding     float64
	PlotWidth   float64
	PlotHeight  float64
	XAxisLabel  string
	YAxisLabel  string
	Vertical    []GridLine
	Horizontal  []GridLine
	Our         MapPoint
	Competitors []MapPoint
}

// ScaleX 分值转横坐标
func (m MapLayout) ScaleX(v float64) float64 {
	return v/axisMax*m.PlotWidth + m.Padding
}

// ScaleY 分值转纵坐标，分值越大越靠上
func (m MapLayout) ScaleY(v float64) float64 {
	return m.PlotHeight - v/axisMax*m.PlotHeight + m.Padding
}

// LayoutPositioningMap 计算定位图布局，超出范围的分值被夹到 [0, 10]
func LayoutPositioningMap(data MapData, cfg MapConfig) MapLayout {
	cfg = cfg.withDefaults()
	m := MapLayout{
		Width:      cfg.Width,
		Height:     cfg.Height,
		Padding:    cfg.Padding,
		PlotWidth:  cfg.Width - cfg.Padding*2,
		PlotHeight: cfg.Height - cfg.Padding*2,
		XAxisLabel: data.XAxisLabel,
		YAxisLabel: data.YAxisLabel,
	}

	for i := 0; i < gridLines; i++ {
		v := float64(i)
		m.Vertical = append(m.Vertical, GridLine{
			X1: m.ScaleX(v), Y1: m.Padding,
			X2: m.ScaleX(v), Y2: m.PlotHeight + m.Padding,
			Major: i == gridMajor,
		})
		m.Horizontal = append(m.Horizontal, GridLine{
			X1: m.Padding, Y1: m.ScaleY(v),
			X2: m.PlotWidth + m.Padding, Y2: m.ScaleY(v),
			Major: i == gridMajor,
		})
	}

	m.Our = m.place(data.Our)
	m.Competitors = make([]MapPoint, 0, len(data.Competitors))
	for _, c := range data.Competitors {
		m.Competitors = append(m.Competitors, m.place(c))
	}
	return m
}

func (m MapLayout) place(in MapInput) MapPoint {
	x, cx := ClampAxis(in.X)
	y, cy := ClampAxis(in.Y)
	return MapPoint{Name: in.Name, X: m.ScaleX(x), Y: m.ScaleY(y), Clamped: cx || cy}
}

// ClampAxis 把分值限制在 [0, 10]，NaN 视为 0，第二个返回值表示是否发生修正
func ClampAxis(v float64) (float64, bool) {
	switch {
	case math.IsNaN(v):
		return axisMin, true
	case v < axisMin:
		return axisMin, true
	case v > axisMax:
		return axisMax, true
	}
	return v, false
}
