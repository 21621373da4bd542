package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/config"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/engine"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/llm"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/logger"
	"github.com/adamamaa/greenscope/app/common/render"
	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/common/view"
)

type options struct {
	configPath string
	out        string
}

func newRootCmd() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "scope-report",
		Short:         "비즈니스 아이디어 분석 리포트를 정적 HTML로 생성합니다",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "configs/analyzer.yaml", "analyzer config file (optional)")
	root.PersistentFlags().StringVarP(&opts.out, "out", "o", "report.html", "output HTML file")

	root.AddCommand(newAnalyzeCmd(opts), newRenderCmd(opts))
	return root
}

func newAnalyzeCmd(opts *options) *cobra.Command {
	var (
		idea     string
		ideaFile string
		refURL   string
		jsonOut  string
	)
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "아이디어를 분석하고 리포트를 생성합니다",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ideaFile != "" {
				raw, err := os.ReadFile(ideaFile)
				if err != nil {
					return fmt.Errorf("read idea file: %w", err)
				}
				idea = string(raw)
			}
			idea = strings.TrimSpace(idea)
			if idea == "" {
				return errors.New("--idea or --idea-file is required")
			}
			if n := len([]rune(idea)); n > render.MaxIdeaLength {
				return fmt.Errorf("idea is too long: %d > %d characters", n, render.MaxIdeaLength)
			}

			cfg, closer, err := setup(opts.configPath)
			if err != nil {
				return err
			}
			defer closer()

			ctx, cancel := context.WithTimeout(cmd.Context(), cfg.GenerationTimeout())
			defer cancel()

			eng, err := engine.NewEngine(ctx, cfg)
			if err != nil {
				return err
			}
			result, errMsg := analyze(ctx, eng, engine.Request{Idea: idea, ReferenceURL: refURL})

			if jsonOut != "" && errMsg == "" {
				if err := writeJSON(jsonOut, result); err != nil {
					return err
				}
			}
			return writeReport(opts.out, idea, result, errMsg)
		},
	}
	cmd.Flags().StringVarP(&idea, "idea", "i", "", "business idea text")
	cmd.Flags().StringVar(&ideaFile, "idea-file", "", "read the idea from a file")
	cmd.Flags().StringVar(&refURL, "url", "", "optional reference URL")
	cmd.Flags().StringVar(&jsonOut, "json", "", "also save the raw analysis JSON")
	return cmd
}

func newRenderCmd(opts *options) *cobra.Command {
	var (
		in   string
		idea string
	)
	cmd := &cobra.Command{
		Use:   "render",
		Short: "저장된 분석 JSON으로 리포트를 다시 생성합니다",
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := os.ReadFile(in)
			if err != nil {
				return fmt.Errorf("read analysis: %w", err)
			}
			var result report.AnalysisResult
			if err := json.Unmarshal(raw, &result); err != nil {
				return fmt.Errorf("decode analysis: %w", err)
			}
			result.Normalize()
			return writeReport(opts.out, idea, &result, "")
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "analysis JSON file")
	cmd.Flags().StringVar(&idea, "idea", "", "idea text shown in the banner")
	_ = cmd.MarkFlagRequired("in")
	return cmd
}

// setup 加载配置并初始化日志，配置文件不存在时使用默认值
func setup(path string) (*config.Config, func(), error) {
	cfg, err := config.LoadConfig(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		cfg = &config.Config{}
		cfg.Defaults()
	case err != nil:
		return nil, nil, fmt.Errorf("无法加载配置文件: %w", err)
	}
	cfg.ApplyEnv()

	closer, err := logger.InitLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return nil, nil, fmt.Errorf("无法初始化日志: %w", err)
	}
	return cfg, func() { _ = closer.Close() }, nil
}

// analyze 未配置时返回占位结果，失败时返回错误哨兵和错误信息
func analyze(ctx context.Context, g engine.Generator, req engine.Request) (*report.AnalysisResult, string) {
	logger.Log.Infof("开始分析: %d 字", len([]rune(req.Idea)))
	result, err := g.Generate(ctx, req)
	switch {
	case errors.Is(err, llm.ErrNotConfigured):
		logger.Log.Warn("未配置 API Key，输出占位报告")
		return report.Placeholder(), ""
	case err != nil:
		logger.Log.Errorf("分析失败: %v", err)
		return report.ErrorResult(), err.Error()
	}
	return result, ""
}

func writeReport(path, idea string, result *report.AnalysisResult, errMsg string) error {
	rd, err := render.New()
	if err != nil {
		return err
	}
	page := render.NewReportPage(render.ReportInput{
		Idea:         idea,
		Result:       result,
		State:        view.Initial(),
		ErrorMessage: errMsg,
		Mode:         render.ModeStatic,
		Now:          time.Now(),
	})

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("无法创建报告文件: %w", err)
	}
	defer f.Close()
	if err := rd.Report(f, page); err != nil {
		return fmt.Errorf("渲染报告失败: %w", err)
	}
	logger.Log.Infof("报告已生成: %s (blocked=%v)", path, page.Blocked)
	return nil
}

func writeJSON(path string, result *report.AnalysisResult) error {
	raw, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, raw, 0o644)
}
