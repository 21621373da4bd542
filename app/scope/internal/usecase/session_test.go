package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/engine"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/llm"
	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/common/view"
	"github.com/adamamaa/greenscope/app/scope/internal/domain"
	"github.com/adamamaa/greenscope/app/scope/internal/repo"
)

// mockSessionRepo 模拟会话仓库
type mockSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*domain.Session
}

func newMockSessionRepo() *mockSessionRepo {
	return &mockSessionRepo{sessions: map[string]*domain.Session{}}
}

func (m *mockSessionRepo) Save(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.ID] = s
	return nil
}

func (m *mockSessionRepo) Get(_ context.Context, id string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionRepo) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// mockGenerator 返回预设结果；release 不为 nil 时阻塞到收到信号
type mockGenerator struct {
	mu      sync.Mutex
	calls   int
	ideas   []string
	result  *report.AnalysisResult
	err     error
	release chan struct{}
}

func (m *mockGenerator) Generate(ctx context.Context, req engine.Request) (*report.AnalysisResult, error) {
	m.mu.Lock()
	m.calls++
	m.ideas = append(m.ideas, req.Idea)
	release := m.release
	m.mu.Unlock()

	if release != nil {
		select {
		case <-release:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	return m.result, m.err
}

func (m *mockGenerator) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// verifyNoLeaks 忽略 genai 依赖的 opencensus 在 init 中启动的常驻 worker
func verifyNoLeaks(t *testing.T) {
	t.Helper()
	goleak.VerifyNone(t, goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"))
}

func blockedResult() *report.AnalysisResult {
	r := report.Placeholder()
	r.SWOT.Strengths = "분석이 거부되었습니다."
	r.HarshCritique.Grade = report.GradeF
	r.HarshCritique.Critique = "부적절한 요청으로 인해 분석이 거부되었습니다."
	return r
}

func gradeBResult() *report.AnalysisResult {
	r := report.Placeholder()
	r.SWOT.Strengths = "정기 구독으로 안정적인 매출"
	r.KPIs.PrimaryKPIs = "월간 유지율"
	r.HarshCritique.Grade = report.GradeB
	r.HarshCritique.Critique = "차별화 포인트가 더 필요합니다."
	return r
}

func newUseCase(t *testing.T, gen *mockGenerator) *SessionUseCase {
	t.Helper()
	uc, cleanup := NewSessionUseCase(newMockSessionRepo(), gen, Options{
		Timeout:         5 * time.Second,
		LoadingInterval: time.Hour,
	}, log.DefaultLogger)
	t.Cleanup(cleanup)
	return uc
}

func openSession(t *testing.T, uc *SessionUseCase) string {
	t.Helper()
	snap, err := uc.Open(context.Background(), "")
	require.NoError(t, err)
	require.NotEmpty(t, snap.ID)
	return snap.ID
}

func waitIdle(t *testing.T, uc *SessionUseCase, id string) *domain.Snapshot {
	t.Helper()
	var snap *domain.Snapshot
	require.Eventually(t, func() bool {
		s, err := uc.Snapshot(context.Background(), id)
		require.NoError(t, err)
		snap = s
		return !s.Loading
	}, 2*time.Second, 5*time.Millisecond)
	return snap
}

func TestSessionUseCase_BlockedIdea(t *testing.T) {
	defer verifyNoLeaks(t)
	gen := &mockGenerator{result: blockedResult(), release: make(chan struct{})}
	uc := newUseCase(t, gen)
	ctx := context.Background()
	id := openSession(t, uc)

	snap, err := uc.Submit(ctx, id, "drug marketplace app", "")
	require.NoError(t, err)
	assert.Equal(t, domain.PageAnalysis, snap.Page)

	snap, err = uc.SelectTab(ctx, id, view.TabKPIs)
	require.NoError(t, err)
	assert.Equal(t, view.TabKPIs, snap.State.ActiveTab)

	close(gen.release)
	snap = waitIdle(t, uc, id)
	assert.True(t, snap.Blocked)
	assert.Equal(t, view.TabHarshCritique, snap.State.ActiveTab)
	assert.Equal(t, "drug marketplace app", snap.Idea)
	assert.Empty(t, snap.Error)
	assert.Equal(t, report.GradeF, snap.Result.HarshCritique.Grade)

	// 拦截状态下切换页签不会再次被强制跳转
	snap, err = uc.SelectTab(ctx, id, view.TabSWOT)
	require.NoError(t, err)
	assert.Equal(t, view.TabSWOT, snap.State.ActiveTab)
	assert.True(t, snap.Blocked)
	uc.Close()
}

func TestSessionUseCase_GradeBIdea(t *testing.T) {
	defer verifyNoLeaks(t)
	gen := &mockGenerator{result: gradeBResult()}
	uc := newUseCase(t, gen)
	ctx := context.Background()
	id := openSession(t, uc)

	_, err := uc.Submit(ctx, id, "  구독형 커피 박스  ", "https://example.com/coffee")
	require.NoError(t, err)

	snap := waitIdle(t, uc, id)
	assert.False(t, snap.Blocked)
	assert.Equal(t, view.TabSWOT, snap.State.ActiveTab)
	assert.Equal(t, 5, snap.State.SelectedRating)
	assert.Equal(t, report.GradeB, snap.Result.HarshCritique.Grade)
	assert.Equal(t, "구독형 커피 박스", snap.Idea)
	assert.Equal(t, "https://example.com/coffee", snap.ReferenceURL)
	assert.Equal(t, []string{"구독형 커피 박스"}, gen.ideas)

	snap, err = uc.SelectRating(ctx, id, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.State.SelectedRating)
	snap, err = uc.SelectRating(ctx, id, 9)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.State.SelectedRating)
	uc.Close()
}

func TestSessionUseCase_NotConfiguredUsesPlaceholder(t *testing.T) {
	defer verifyNoLeaks(t)
	uc := newUseCase(t, &mockGenerator{err: llm.ErrNotConfigured})
	id := openSession(t, uc)

	_, err := uc.Submit(context.Background(), id, "반려동물 산책 앱", "")
	require.NoError(t, err)
	snap := waitIdle(t, uc, id)
	assert.Empty(t, snap.Error)
	assert.Equal(t, report.GradeC, snap.Result.HarshCritique.Grade)
	assert.Equal(t, report.NotAvailable, snap.Result.SWOT.Strengths)
	assert.False(t, snap.Blocked)
	uc.Close()
}

func TestSessionUseCase_FailureUsesErrorResult(t *testing.T) {
	defer verifyNoLeaks(t)
	uc := newUseCase(t, &mockGenerator{err: errors.New("failed after retries: json unmarshal")})
	id := openSession(t, uc)

	_, err := uc.Submit(context.Background(), id, "반려동물 산책 앱", "")
	require.NoError(t, err)
	snap := waitIdle(t, uc, id)
	assert.Equal(t, "failed after retries: json unmarshal", snap.Error)
	assert.Equal(t, report.AnalysisError, snap.Result.HarshCritique.Critique)
	assert.False(t, snap.Blocked)
	assert.Equal(t, view.TabSWOT, snap.State.ActiveTab)
	uc.Close()
}

func TestSessionUseCase_SubmitWhileLoadingIsIgnored(t *testing.T) {
	defer verifyNoLeaks(t)
	gen := &mockGenerator{result: gradeBResult(), release: make(chan struct{})}
	uc := newUseCase(t, gen)
	ctx := context.Background()
	id := openSession(t, uc)

	snap, err := uc.Submit(ctx, id, "첫 번째 아이디어", "")
	require.NoError(t, err)
	assert.True(t, snap.Loading)
	assert.Equal(t, view.LoadingSteps[0], snap.LoadingText)

	snap, err = uc.Submit(ctx, id, "두 번째 아이디어", "")
	require.NoError(t, err)
	assert.True(t, snap.Loading)
	assert.Equal(t, "첫 번째 아이디어", snap.Idea)

	close(gen.release)
	waitIdle(t, uc, id)
	assert.Equal(t, 1, gen.Calls())
	uc.Close()
}

func TestSessionUseCase_GoBackDiscardsStaleResult(t *testing.T) {
	defer verifyNoLeaks(t)
	gen := &mockGenerator{result: blockedResult(), release: make(chan struct{})}
	uc := newUseCase(t, gen)
	ctx := context.Background()
	id := openSession(t, uc)

	_, err := uc.Submit(ctx, id, "마약 거래 마켓플레이스 앱", "")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return gen.Calls() == 1 }, time.Second, time.Millisecond)

	snap, err := uc.GoBack(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PageInput, snap.Page)
	assert.False(t, snap.Loading)

	close(gen.release)
	uc.Close()

	snap, err = uc.Snapshot(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.PageInput, snap.Page)
	assert.Nil(t, snap.Result)
	assert.False(t, snap.Blocked)
	assert.Equal(t, view.Initial(), snap.State)
	assert.Equal(t, "마약 거래 마켓플레이스 앱", snap.Idea)
}

func TestSessionUseCase_ResubmitAfterGoBack(t *testing.T) {
	defer verifyNoLeaks(t)
	gen := &mockGenerator{result: gradeBResult(), release: make(chan struct{})}
	uc := newUseCase(t, gen)
	ctx := context.Background()
	id := openSession(t, uc)

	_, err := uc.Submit(ctx, id, "첫 번째 아이디어", "")
	require.NoError(t, err)
	_, err = uc.GoBack(ctx, id)
	require.NoError(t, err)
	_, err = uc.Submit(ctx, id, "두 번째 아이디어", "")
	require.NoError(t, err)

	close(gen.release)
	snap := waitIdle(t, uc, id)
	uc.Close()
	assert.Equal(t, 2, gen.Calls())
	assert.Equal(t, "두 번째 아이디어", snap.Idea)
	assert.Equal(t, report.GradeB, snap.Result.HarshCritique.Grade)
}

func TestSessionUseCase_Validation(t *testing.T) {
	uc := newUseCase(t, &mockGenerator{result: gradeBResult()})
	ctx := context.Background()
	id := openSession(t, uc)

	_, err := uc.Submit(ctx, id, " \n\t ", "")
	assert.ErrorIs(t, err, ErrEmptyIdea)

	long := make([]rune, 5001)
	for i := range long {
		long[i] = '가'
	}
	_, err = uc.Submit(ctx, id, string(long), "")
	assert.ErrorIs(t, err, ErrIdeaTooLong)

	_, err = uc.Submit(ctx, "missing", "아이디어", "")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	_, err = uc.Snapshot(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.Same(t, repo.ErrSessionNotFound, ErrSessionNotFound)
}

func TestSessionUseCase_OpenReusesOrCreates(t *testing.T) {
	uc := newUseCase(t, &mockGenerator{})
	ctx := context.Background()
	id := openSession(t, uc)

	snap, err := uc.Open(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, snap.ID)
	assert.Equal(t, domain.PageInput, snap.Page)

	snap, err = uc.Open(ctx, "expired")
	require.NoError(t, err)
	assert.NotEqual(t, "expired", snap.ID)
	assert.NotEqual(t, id, snap.ID)
}

func TestSessionUseCase_SubmitAfterClose(t *testing.T) {
	uc := newUseCase(t, &mockGenerator{})
	id := openSession(t, uc)
	uc.Close()

	_, err := uc.Submit(context.Background(), id, "아이디어", "")
	assert.ErrorIs(t, err, ErrShuttingDown)
}
