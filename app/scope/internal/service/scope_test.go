package service

import (
	"context"
	"net/http"
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
	"github.com/adamamaa/greenscope/app/scope/internal/usecase"
)

// mockGenerator 返回固定结果；gate 不为 nil 时等待放行
type mockGenerator struct {
	result *report.AnalysisResult
	gate   chan struct{}
}

func (m *mockGenerator) Generate(ctx context.Context, _ engine.Request) (*report.AnalysisResult, error) {
	if m.gate != nil {
		select {
		case <-m.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.result, nil
}

type fixture struct {
	svc *ScopeService
	uc  *usecase.SessionUseCase
}

func newFixture(t *testing.T, gen engine.Generator) *fixture {
	t.Helper()
	d, cleanupData, err := data.NewData(&conf.Session{Capacity: 8}, log.DefaultLogger)
	require.NoError(t, err)
	opts := usecase.Options{Timeout: 5 * time.Second, LoadingInterval: time.Hour, PollInterval: time.Second}
	uc, cleanupUC := usecase.NewSessionUseCase(data.NewSessionRepo(d, log.DefaultLogger), gen, opts, log.DefaultLogger)
	t.Cleanup(func() {
		cleanupUC()
		cleanupData()
	})

	rd, err := render.New()
	require.NoError(t, err)
	svc := NewScopeService(uc, rd, &conf.Session{}, opts, log.DefaultLogger)
	svc.now = func() time.Time { return time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC) }
	return &fixture{svc: svc, uc: uc}
}

func (f *fixture) do(h http.HandlerFunc, req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == DefaultCookieName {
			return c
		}
	}
	t.Fatalf("no %s cookie in response", DefaultCookieName)
	return nil
}

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (f *fixture) waitIdle(t *testing.T, id string) {
	t.Helper()
	require.Eventually(t, func() bool {
		snap, err := f.uc.Snapshot(context.Background(), id)
		return err == nil && !snap.Loading
	}, 2*time.Second, 5*time.Millisecond)
}

func gradeB() *report.AnalysisResult {
	r := report.Placeholder()
	r.SWOT.Strengths = "정기 구독으로 안정적인 매출"
	r.HarshCritique.Grade = report.GradeB
	r.HarshCritique.Critique = "차별화 포인트가 더 필요합니다."
	return r
}

func TestIndex_NewSessionSetsCookie(t *testing.T) {
	f := newFixture(t, &mockGenerator{result: gradeB()})

	rec := f.do(f.svc.Index, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "리포트 생성하기")
	c := sessionCookie(t, rec)
	assert.True(t, c.HttpOnly)

	// 已有会话时不再写 cookie
	rec = f.do(f.svc.Index, httptest.NewRequest(http.MethodGet, "/", nil), c)
	assert.Empty(t, rec.Result().Cookies())

	rec = f.do(f.svc.Index, httptest.NewRequest(http.MethodGet, "/missing", nil), c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAnalyze_EmptyIdeaRendersError(t *testing.T) {
	f := newFixture(t, &mockGenerator{result: gradeB()})

	rec := f.do(f.svc.Analyze, postForm("/analyze", url.Values{"idea": {"   "}}), nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "아이디어를 입력해주세요.")
}

func TestAnalyze_MethodNotAllowed(t *testing.T) {
	f := newFixture(t, &mockGenerator{result: gradeB()})

	rec := f.do(f.svc.Analyze, httptest.NewRequest(http.MethodGet, "/analyze", nil), nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodPost, rec.Header().Get("Allow"))
}

func TestAnalyzeAndReport(t *testing.T) {
	gate := make(chan struct{})
	f := newFixture(t, &mockGenerator{result: gradeB(), gate: gate})

	rec := f.do(f.svc.Index, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	c := sessionCookie(t, rec)

	rec = f.do(f.svc.Analyze, postForm("/analyze", url.Values{"idea": {"구독형 커피 박스"}}), c)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/report", rec.Header().Get("Location"))

	rec = f.do(f.svc.Report, httptest.NewRequest(http.MethodGet, "/report", nil), c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `data-poll="1000"`)
	assert.Contains(t, rec.Body.String(), "분석 진행 중")

	close(gate)
	f.waitIdle(t, c.Value)

	rec = f.do(f.svc.Report, httptest.NewRequest(http.MethodGet, "/report?tab=kpis", nil), c)
	body := rec.Body.String()
	assert.Contains(t, body, "Target Idea")
	assert.Contains(t, body, `id="tab-kpis"`)
	assert.NotContains(t, body, "data-poll")

	rec = f.do(f.svc.Report, httptest.NewRequest(http.MethodGet, "/report?tab=consumerReactionPrediction&rating=3", nil), c)
	assert.Contains(t, rec.Body.String(), `id="tab-consumerReactionPrediction"`)
	snap, err := f.uc.Snapshot(context.Background(), c.Value)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.State.SelectedRating)

	// 分析页时首页直接显示报告
	rec = f.do(f.svc.Index, httptest.NewRequest(http.MethodGet, "/", nil), c)
	assert.Contains(t, rec.Body.String(), "Target Idea")
}

func TestReport_WithoutAnalysisRedirects(t *testing.T) {
	f := newFixture(t, &mockGenerator{result: gradeB()})

	rec := f.do(f.svc.Report, httptest.NewRequest(http.MethodGet, "/report", nil), nil)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "/", rec.Header().Get("Location"))
}

func TestBack(t *testing.T) {
	f := newFixture(t, &mockGenerator{result: gradeB()})
	rec := f.do(f.svc.Index, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	c := sessionCookie(t, rec)

	f.do(f.svc.Analyze, postForm("/analyze", url.Values{"idea": {"구독형 커피 박스"}}), c)
	f.waitIdle(t, c.Value)

	rec = f.do(f.svc.Back, postForm("/back", nil), c)
	assert.Equal(t, http.StatusSeeOther, rec.Code)

	rec = f.do(f.svc.Index, httptest.NewRequest(http.MethodGet, "/", nil), c)
	body := rec.Body.String()
	assert.Contains(t, body, "리포트 생성하기")
	assert.Contains(t, body, "구독형 커피 박스")
}
