package chart

import (
	"fmt"
	"strconv"
	"strings"
)

// 悬停时非当前元素的透明度
const (
	PyramidDim     = 0.7
	CircleDim      = 0.85
	CircleLabelDim = 0.7
)

// 无悬停时详情面板的提示语
const (
	PyramidPrompt = "피라미드의 각 계층에 마우스를 올리면 여기에 자세한 설명이 표시됩니다."
	CirclePrompt  = "원의 각 부분에 마우스를 올리면 여기에 자세한 설명이 표시됩니다."
)

// Hover 当前悬停的元素下标，NoHover 表示没有
type Hover int

const NoHover Hover = -1

// Active 是否有元素处于悬停状态
func (h Hover) Active() bool { return h >= 0 }

// Opacity 没有悬停或悬停在 index 上时为 1，否则为 dim
func (h Hover) Opacity(index int, dim float64) float64 {
	if !h.Active() || int(h) == index {
		return 1
	}
	return dim
}

// Detail 图表下方的详情面板
type Detail struct {
	Title       string
	Description string
	Details     []string
	// Prompt 非空表示没有悬停，只显示提示语
	Prompt string
}

func newDetail(name, desc string, details []string) Detail {
	d := Detail{Title: fmt.Sprintf("%s 상세 정보", name), Description: desc}
	for _, v := range details {
		if strings.TrimSpace(v) != "" {
			d.Details = append(d.Details, v)
		}
	}
	return d
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func pointsAttr(pts []Point) string {
	parts := make([]string, 0, len(pts))
	for _, p := range pts {
		parts = append(parts, num(p.X)+","+num(p.Y))
	}
	return strings.Join(parts, " ")
}
