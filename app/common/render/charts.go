package render

import (
	"fmt"

	"github.com/adamamaa/greenscope/app/common/chart"
	"github.com/adamamaa/greenscope/app/common/report"
)

const sizePrefix = "규모: "

// layerDetails 规模在前，其后是特征，金字塔还附带画像
func layerDetails(l report.PyramidLayerContent, personas bool) []string {
	var out []string
	if l.Size != "" {
		out = append(out, sizePrefix+l.Size)
	}
	out = append(out, l.Characteristics...)
	if personas {
		out = append(out, l.Personas...)
	}
	return out
}

// NewMarketCircles SOM、SAM、TAM 分别取值 1、2、3
func NewMarketCircles(m *report.MarketSizeLayers) *CirclesView {
	if m == nil {
		return nil
	}
	layer := func(l report.PyramidLayerContent, color string, value float64) chart.CircleLayer {
		return chart.CircleLayer{
			Name:        l.Name,
			Description: l.Description,
			Details:     layerDetails(l, false),
			Color:       color,
			TextColor:   "fill-gray-900",
			Value:       value,
		}
	}
	layout := chart.LayoutCircles([]chart.CircleLayer{
		layer(m.SOM, "fill-accent-primary", 1),
		layer(m.SAM, "fill-accent-primary-70", 2),
		layer(m.TAM, "fill-accent-primary-40", 3),
	}, chart.CircleConfig{})

	v := &CirclesView{
		ID:     "market-size",
		Title:  "시장 규모 분석 (TAM-SAM-SOM)",
		Layout: layout,
		Prompt: layout.Detail(chart.NoHover),
	}
	for i := range layout.Circles {
		v.Details = append(v.Details, layout.Detail(chart.Hover(i)))
	}
	return v
}

// NewSegmentationPyramid 核心目标在塔尖
func NewSegmentationPyramid(s *report.SegmentationLayers) *PyramidView {
	if s == nil {
		return nil
	}
	return newPyramidView("segmentation", "고객 세분화 피라미드", []report.PyramidLayerContent{
		s.TertiaryTarget, s.SecondaryTarget, s.PrimaryTarget,
	})
}

// NewLoyaltyPyramid 拥护者在塔尖
func NewLoyaltyPyramid(l *report.LoyaltyLayers) *PyramidView {
	if l == nil {
		return nil
	}
	return newPyramidView("loyalty", "고객 충성도 피라미드", []report.PyramidLayerContent{
		l.Prospects, l.RegularCustomers, l.LoyalCustomers, l.Advocates,
	})
}

var pyramidColors = []string{"fill-cyan-300", "fill-cyan-500", "fill-cyan-700", "fill-cyan-900"}

func newPyramidView(id, title string, contents []report.PyramidLayerContent) *PyramidView {
	layers := make([]chart.PyramidLayer, 0, len(contents))
	for i, c := range contents {
		layers = append(layers, chart.PyramidLayer{
			Name:        c.Name,
			Description: c.Description,
			Details:     layerDetails(c, true),
			Color:       pyramidColors[i%len(pyramidColors)],
		})
	}
	layout := chart.LayoutPyramid(layers, chart.PyramidConfig{})
	v := &PyramidView{
		ID:     id,
		Title:  title,
		Layout: layout,
		Prompt: layout.Detail(chart.NoHover),
	}
	for i := range layout.Shapes {
		v.Details = append(v.Details, layout.Detail(chart.Hover(i)))
	}
	return v
}

// NewMapView 定位图视图
func NewMapView(d *report.PositioningMapData) *MapView {
	if d == nil {
		return nil
	}
	in := chart.MapData{
		XAxisLabel: d.XAxisLabel,
		YAxisLabel: d.YAxisLabel,
		Our:        chart.MapInput{Name: d.OurCompany.Name, X: d.OurCompany.X, Y: d.OurCompany.Y},
	}
	for _, c := range d.Competitors {
		in.Competitors = append(in.Competitors, chart.MapInput{Name: c.Name, X: c.X, Y: c.Y})
	}
	layout := chart.LayoutPositioningMap(in, chart.MapConfig{})
	v := &MapView{
		Layout:     layout,
		StarPoints: chart.StarPoints,
		XLabel:     chart.Point{X: layout.Width / 2, Y: layout.Height - 10},
		YLabel:     chart.Point{X: 12, Y: layout.Height / 2},
	}
	v.YRotate = fmt.Sprintf("rotate(-90 %g,%g)", v.YLabel.X, v.YLabel.Y)
	return v
}

// NewMatrixView 功能对比矩阵视图
func NewMatrixView(d *report.FeatureMatrixData) *MatrixView {
	if d == nil {
		return nil
	}
	if len(d.Features) == 0 {
		return &MatrixView{Empty: true}
	}
	features := make([]chart.MatrixFeature, 0, len(d.Features))
	for _, f := range d.Features {
		features = append(features, chart.MatrixFeature{Name: f.FeatureName, Ours: f.OurCompany, Values: f.CompetitorValues})
	}
	return &MatrixView{Matrix: chart.BuildMatrix(d.CompetitorNames, features)}
}
