package chart

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Symbol 功能对比矩阵中单元格的分类
type Symbol int

const (
	Unclassified Symbol = iota
	Provided
	Partial
	NotProvided
)

// Glyph 分类对应的显示符号，未分类为空
func (s Symbol) Glyph() string {
	switch s {
	case Provided:
		return "O"
	case Partial:
		return "△"
	case NotProvided:
		return "X"
	}
	return ""
}

func (s Symbol) String() string {
	switch s {
	case Provided:
		return "provided"
	case Partial:
		return "partial"
	case NotProvided:
		return "not_provided"
	}
	return "unclassified"
}

var canonical = map[rune]Symbol{
	'O': Provided, 'o': Provided, '○': Provided, '◯': Provided,
	'X': NotProvided, 'x': NotProvided, '×': NotProvided, '✕': NotProvided,
	'△': Partial, '▲': Partial,
}

var synonyms = map[string]Symbol{}

func init() {
	for s, words := range map[Symbol][]string{
		Provided:    {"yes", "y", "true", "provided", "supported", "full", "제공", "지원", "있음", "우수", "높음", "✓"},
		Partial:     {"partial", "limited", "some", "부분", "보통", "일부", "중간"},
		NotProvided: {"no", "n", "false", "none", "not provided", "unsupported", "미제공", "없음", "미지원", "낮음", "✗"},
	} {
		for _, w := range words {
			synonyms[w] = s
		}
	}
}

// Classify 识别单元格文本。
// 先看是否以标准符号开头且后面不是字母，再查同义词表，都不匹配时返回 Unclassified。
func Classify(value string) Symbol {
	v := strings.TrimSpace(value)
	if v == "" {
		return Unclassified
	}
	first, size := utf8.DecodeRuneInString(v)
	if s, ok := canonical[first]; ok {
		next, _ := utf8.DecodeRuneInString(v[size:])
		if size == len(v) || !unicode.IsLetter(next) {
			return s
		}
	}
	if s, ok := synonyms[strings.ToLower(v)]; ok {
		return s
	}
	return Unclassified
}

// Cell 矩阵单元格
type Cell struct {
	Raw    string
	Symbol Symbol
}

// Text 已分类显示符号，未分类显示原文
func (c Cell) Text() string {
	if c.Symbol != Unclassified {
		return c.Symbol.Glyph()
	}
	return c.Raw
}

// MatrixFeature 矩阵输入中的一行
type MatrixFeature struct {
	Name   string
	Ours   string
	Values []string
}

// MatrixRow 分类后的一行，Competitors 与竞品名称一一对应
type MatrixRow struct {
	Feature     string
	Ours        Cell
	Competitors []Cell
}

// Matrix 分类后的功能对比矩阵
type Matrix struct {
	Competitors []string
	Rows        []MatrixRow
}

// missingCell 竞品值缺失时的占位
const missingCell = "-"

// BuildMatrix 分类所有单元格，值的个数与竞品数不一致时补齐或截断
func BuildMatrix(competitors []string, features []MatrixFeature) Matrix {
	m := Matrix{Competitors: competitors}
	for _, f := range features {
		row := MatrixRow{
			Feature:     f.Name,
			Ours:        newCell(f.Ours),
			Competitors: make([]Cell, len(competitors)),
		}
		for i := range competitors {
			if i < len(f.Values) {
				row.Competitors[i] = newCell(f.Values[i])
			} else {
				row.Competitors[i] = Cell{Raw: missingCell}
			}
		}
		m.Rows = append(m.Rows, row)
	}
	return m
}

func newCell(v string) Cell {
	return Cell{Raw: v, Symbol: Classify(v)}
}
