package report

import "strings"

// Grade 创意等级，S 最好，F 表示被拒绝或最差
type Grade string

const (
	GradeS Grade = "S"
	GradeA Grade = "A"
	GradeB Grade = "B"
	GradeC Grade = "C"
	GradeD Grade = "D"
	GradeF Grade = "F"
)

// Grades 按从好到差排列
var Grades = []Grade{GradeS, GradeA, GradeB, GradeC, GradeD, GradeF}

// ParseGrade 去掉空白并转为大写。无法识别的等级原样保留，由 Valid 判断。
func ParseGrade(s string) Grade {
	return Grade(strings.ToUpper(strings.TrimSpace(s)))
}

// Valid 是否为已知等级
func (g Grade) Valid() bool {
	for _, v := range Grades {
		if g == v {
			return true
		}
	}
	return false
}

// BadgeStyle 等级徽章的样式类名
type BadgeStyle struct {
	Text      string
	Container string
}

// Badge 返回等级对应的徽章样式，未知等级使用中性样式
func (g Grade) Badge() BadgeStyle {
	switch g {
	case GradeS:
		return BadgeStyle{Text: "grade-text-rainbow", Container: "grade-box-rainbow"}
	case GradeA:
		return BadgeStyle{Text: "grade-text-red", Container: "grade-box-red"}
	case GradeB:
		return BadgeStyle{Text: "grade-text-blue", Container: "grade-box-blue"}
	case GradeC:
		return BadgeStyle{Text: "grade-text-yellow", Container: "grade-box-yellow"}
	case GradeD:
		return BadgeStyle{Text: "grade-text-dark", Container: "grade-box-dark"}
	case GradeF:
		return BadgeStyle{Text: "grade-text-fail", Container: "grade-box-fail"}
	default:
		return BadgeStyle{Text: "grade-text-neutral", Container: "grade-box-neutral"}
	}
}
