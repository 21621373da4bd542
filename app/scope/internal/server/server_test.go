package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/engine"
	"github.com/adamamaa/greenscope/app/common/render"
	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/scope/internal/conf"
	"github.com/adamamaa/greenscope/app/scope/internal/data"
	"github.com/adamamaa/greenscope/app/scope/internal/service"
	"github.com/adamamaa/greenscope/app/scope/internal/usecase"
)

// mockGenerator 按创意文本返回预设结果
type mockGenerator struct {
	results map[string]*report.AnalysisResult
}

func (m *mockGenerator) Generate(_ context.Context, req engine.Request) (*report.AnalysisResult, error) {
	return m.results[req.Idea], nil
}

func newTestServer(t *testing.T, gen engine.Generator) *httptest.Server {
	t.Helper()
	d, cleanupData, err := data.NewData(&conf.Session{}, log.DefaultLogger)
	require.NoError(t, err)
	opts := NewSessionOptions(nil, &conf.Gating{}, &conf.Loading{Interval: "1h", PollInterval: "50ms"})
	uc, cleanupUC := usecase.NewSessionUseCase(data.NewSessionRepo(d, log.DefaultLogger), gen, opts, log.DefaultLogger)
	rd, err := render.New()
	require.NoError(t, err)
	svc := service.NewScopeService(uc, rd, &conf.Session{}, opts, log.DefaultLogger)

	ts := httptest.NewServer(NewHTTPServer(&conf.Server{}, svc, log.DefaultLogger))
	t.Cleanup(func() {
		ts.Close()
		cleanupUC()
		cleanupData()
	})
	return ts
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{Jar: jar}
}

func get(t *testing.T, c *http.Client, u string) (int, string) {
	t.Helper()
	resp, err := c.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func waitAnalyzed(t *testing.T, c *http.Client, base string) service.SessionReply {
	t.Helper()
	var reply service.SessionReply
	require.Eventually(t, func() bool {
		status, body := get(t, c, base+"/api/session")
		if status != http.StatusOK {
			return false
		}
		require.NoError(t, json.Unmarshal([]byte(body), &reply))
		return !reply.Loading
	}, 2*time.Second, 10*time.Millisecond)
	return reply
}

func blocked() *report.AnalysisResult {
	r := report.Placeholder()
	r.SWOT.Strengths = "분석이 거부되었습니다."
	r.HarshCritique.Grade = report.GradeF
	r.HarshCritique.Critique = "부적절한 요청으로 인해 분석이 거부되었습니다."
	return r
}

func gradeB() *report.AnalysisResult {
	r := report.Placeholder()
	r.SWOT.Strengths = "정기 구독으로 안정적인 매출"
	r.SWOT.Weaknesses = "원두 수급 비용"
	r.KPIs.PrimaryKPIs = "월간 유지율 80%"
	r.RiskAssessment.PotentialMarketRisks = "경쟁 심화"
	r.HarshCritique.Grade = report.GradeB
	r.HarshCritique.Critique = "차별화 포인트가 더 필요합니다."
	return r
}

func TestHTTP_BlockedIdeaScenario(t *testing.T) {
	idea := "drug marketplace app"
	ts := newTestServer(t, &mockGenerator{results: map[string]*report.AnalysisResult{idea: blocked()}})
	c := newClient(t)

	status, body := get(t, c, ts.URL+"/")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, body, "리포트 생성하기")

	resp, err := c.PostForm(ts.URL+"/analyze", url.Values{"idea": {idea}})
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "/report", resp.Request.URL.Path)

	reply := waitAnalyzed(t, c, ts.URL)
	assert.True(t, reply.Blocked)
	assert.Equal(t, "harshCritique", reply.ActiveTab)
	assert.Equal(t, "F", reply.Grade)

	_, body = get(t, c, ts.URL+"/report")
	assert.Contains(t, body, "Restricted Idea")
	assert.Contains(t, body, "거부 사유 보고서")
	assert.Contains(t, body, `class="page-report blocked"`)

	for _, tab := range []string{"swot", "competitiveLandscape", "targetAudience", "consumerReactionPrediction"} {
		_, body = get(t, c, ts.URL+"/report?tab="+tab)
		assert.Contains(t, body, "분석이 제한되었습니다", tab)
		assert.NotContains(t, body, `class="chart-svg`, tab)
	}
}

func TestHTTP_GradeBScenario(t *testing.T) {
	idea := "subscription coffee box"
	ts := newTestServer(t, &mockGenerator{results: map[string]*report.AnalysisResult{idea: gradeB()}})
	c := newClient(t)

	get(t, c, ts.URL+"/")
	resp, err := c.PostForm(ts.URL+"/analyze", url.Values{"idea": {idea}})
	require.NoError(t, err)
	resp.Body.Close()

	reply := waitAnalyzed(t, c, ts.URL)
	assert.False(t, reply.Blocked)
	assert.Equal(t, "swot", reply.ActiveTab)
	assert.Equal(t, "B", reply.Grade)

	_, body := get(t, c, ts.URL+"/report")
	assert.Contains(t, body, "Target Idea")
	assert.Contains(t, body, "정기 구독으로 안정적인 매출")

	want := map[string]string{
		"swot":                       "정기 구독으로 안정적인 매출",
		"competitiveLandscape":       "",
		"monetizationStrategy":       "",
		"targetAudience":             "",
		"marketingSalesStrategy":     "",
		"kpis":                       "월간 유지율 80%",
		"riskAssessment":             "경쟁 심화",
		"consumerReactionPrediction": "",
		"harshCritique":              "차별화 포인트가 더 필요합니다.",
	}
	for tab, text := range want {
		status, body := get(t, c, ts.URL+"/report?tab="+tab)
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, body, `id="tab-`+tab+`"`)
		assert.Equal(t, 1, strings.Count(body, `class="panel"`), tab)
		assert.NotContains(t, body, "분석이 제한되었습니다", tab)
		if text != "" {
			assert.Contains(t, body, text, tab)
		}
	}

	resp, err = c.PostForm(ts.URL+"/back", nil)
	require.NoError(t, err)
	resp.Body.Close()
	_, body = get(t, c, ts.URL+"/")
	assert.Contains(t, body, "리포트 생성하기")
}

func TestHTTP_SessionStatusWithoutCookie(t *testing.T) {
	ts := newTestServer(t, &mockGenerator{})

	resp, err := http.Get(ts.URL + "/api/session")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var e struct {
		Reason string `json:"reason"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	assert.Equal(t, "SESSION_NOT_FOUND", e.Reason)
}

func TestHTTP_Healthz(t *testing.T) {
	ts := newTestServer(t, &mockGenerator{})
	status, body := get(t, http.DefaultClient, ts.URL+"/healthz")
	assert.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok"}`, body)
}

func TestNewSessionOptions(t *testing.T) {
	opts := NewSessionOptions(
		&conf.Analyzer{Llm: &conf.LLM{Timeout: 30}},
		&conf.Gating{RejectionMarkers: []string{"rejected"}},
		&conf.Loading{Interval: "3s", PollInterval: "bogus"},
	)
	assert.Equal(t, 30*time.Second, opts.Timeout)
	assert.Equal(t, 3*time.Second, opts.LoadingInterval)
	assert.Equal(t, 2*time.Second, opts.PollInterval)
	assert.Equal(t, []string{"rejected"}, opts.Markers.Rejection)
}

func TestAnalyzerConfig(t *testing.T) {
	cfg := AnalyzerConfig(&conf.Analyzer{
		Llm:         &conf.LLM{Provider: "OpenAI", Model: "gpt-4o-mini", MaxRetries: 2},
		Search:      &conf.Search{Provider: "searxng", Searxng: &conf.SearXNG{BaseUrl: "http://localhost:8888"}},
		Concurrency: &conf.Concurrency{Rpm: 30},
	})
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 2, cfg.LLM.MaxRetries)
	assert.Equal(t, "http://localhost:8888", cfg.Search.SearXNG.BaseURL)
	assert.Equal(t, 30, cfg.Concurrency.RPM)
	assert.Equal(t, 1, cfg.Concurrency.QPS)

	def := AnalyzerConfig(nil)
	assert.Equal(t, "gemini", def.LLM.Provider)
	assert.Equal(t, 180*time.Second, def.GenerationTimeout())
}

func TestNewGenerator_WithoutKey(t *testing.T) {
	for _, k := range []string{"GEMINI_API_KEY", "GOOGLE_API_KEY", "API_KEY", "TAVILY_API_KEY"} {
		t.Setenv(k, "")
	}
	gen, cleanup, err := NewGenerator(&conf.Analyzer{}, log.DefaultLogger)
	require.NoError(t, err)
	defer cleanup()

	_, err = gen.Generate(context.Background(), engine.Request{Idea: "아이디어"})
	assert.Error(t, err)
}
