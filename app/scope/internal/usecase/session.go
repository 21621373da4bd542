package usecase

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/uuid"

	"github.com/adamamaa/greenscope/app/analyzer/pkg/engine"
	"github.com/adamamaa/greenscope/app/analyzer/pkg/llm"
	"github.com/adamamaa/greenscope/app/common/render"
	"github.com/adamamaa/greenscope/app/common/report"
	"github.com/adamamaa/greenscope/app/common/view"
	"github.com/adamamaa/greenscope/app/scope/internal/domain"
	"github.com/adamamaa/greenscope/app/scope/internal/repo"
)

var (
	ErrEmptyIdea       = errors.BadRequest("EMPTY_IDEA", "아이디어를 입력해주세요.")
	ErrIdeaTooLong     = errors.BadRequest("IDEA_TOO_LONG", "아이디어는 5000자 이내로 입력해주세요.")
	ErrSessionNotFound = repo.ErrSessionNotFound
	ErrShuttingDown    = errors.ServiceUnavailable("SHUTTING_DOWN", "service is shutting down")
)

// DefaultTimeout 单次分析的默认超时
const DefaultTimeout = 180 * time.Second

// Options 会话用例的运行参数
type Options struct {
	Markers report.Markers
	// Timeout 单次分析超时，与 HTTP 请求的生命周期无关
	Timeout         time.Duration
	LoadingInterval time.Duration
	PollInterval    time.Duration
}

// SessionUseCase 会话状态机：提交、切换页签、选择星级、返回输入页
type SessionUseCase struct {
	repo repo.SessionRepo
	gen  engine.Generator
	opts Options
	log  *log.Helper

	mu     sync.Mutex
	closed bool
	wg     sync.WaitGroup
}

// NewSessionUseCase 创建会话用例，cleanup 等待所有进行中的分析结束
func NewSessionUseCase(r repo.SessionRepo, gen engine.Generator, opts Options, logger log.Logger) (*SessionUseCase, func()) {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if len(opts.Markers.Rejection) == 0 && len(opts.Markers.Impropriety) == 0 {
		opts.Markers = report.DefaultMarkers
	}
	uc := &SessionUseCase{repo: r, gen: gen, opts: opts, log: log.NewHelper(logger)}
	return uc, uc.Close
}

// Markers 当前使用的拦截标记
func (uc *SessionUseCase) Markers() report.Markers {
	return uc.opts.Markers
}

// Open 返回已有会话，不存在时创建新会话
func (uc *SessionUseCase) Open(ctx context.Context, id string) (*domain.Snapshot, error) {
	if id != "" {
		s, err := uc.repo.Get(ctx, id)
		if err == nil {
			return uc.snapshot(s), nil
		}
		if !stderrors.Is(err, ErrSessionNotFound) {
			return nil, err
		}
	}

	s := domain.NewSession(uuid.NewString(), view.NewRotator(uc.opts.LoadingInterval))
	if err := uc.repo.Save(ctx, s); err != nil {
		return nil, err
	}
	uc.log.WithContext(ctx).Debugf("session created: %s", s.ID)
	return uc.snapshot(s), nil
}

// Snapshot 获取会话快照
func (uc *SessionUseCase) Snapshot(ctx context.Context, id string) (*domain.Snapshot, error) {
	s, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.snapshot(s), nil
}

// Submit 提交创意并在后台开始分析。分析进行中再次提交不做任何处理。
func (uc *SessionUseCase) Submit(ctx context.Context, id, idea, referenceURL string) (*domain.Snapshot, error) {
	idea = strings.TrimSpace(idea)
	if idea == "" {
		return nil, ErrEmptyIdea
	}
	if utf8.RuneCountInString(idea) > render.MaxIdeaLength {
		return nil, ErrIdeaTooLong
	}
	s, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.closed {
		return nil, ErrShuttingDown
	}

	s.Lock()
	if s.Loading {
		s.Unlock()
		uc.log.WithContext(ctx).Infof("analysis already running, submit ignored: %s", id)
		return uc.snapshot(s), nil
	}
	s.Epoch++
	epoch := s.Epoch
	s.Page = domain.PageAnalysis
	s.Idea = idea
	s.ReferenceURL = strings.TrimSpace(referenceURL)
	s.Result = report.Placeholder()
	s.Error = ""
	s.Loading = true
	s.State = view.Reduce(s.State, view.Reset{})
	s.Rotator.Start()
	s.Unlock()

	uc.wg.Add(1)
	go uc.analyze(s, epoch, engine.Request{Idea: idea, ReferenceURL: s.ReferenceURL})

	uc.log.WithContext(ctx).Infof("analysis started: session=%s epoch=%d", id, epoch)
	return uc.snapshot(s), nil
}

// analyze 使用独立于请求的上下文调用生成器，只有 epoch 仍然有效时才写回结果
func (uc *SessionUseCase) analyze(s *domain.Session, epoch uint64, req engine.Request) {
	defer uc.wg.Done()

	ctx, cancel := context.WithTimeout(context.Background(), uc.opts.Timeout)
	defer cancel()
	result, err := uc.gen.Generate(ctx, req)

	s.Lock()
	defer s.Unlock()
	if s.Epoch != epoch || !s.Loading {
		uc.log.Warnf("discarding stale analysis result: session=%s epoch=%d current=%d", s.ID, epoch, s.Epoch)
		return
	}

	switch {
	case stderrors.Is(err, llm.ErrNotConfigured):
		uc.log.Warnf("API key not configured, using placeholder result: session=%s", s.ID)
		s.Result = report.Placeholder()
	case err != nil:
		uc.log.Errorf("analysis failed: session=%s err=%v", s.ID, err)
		s.Result = report.ErrorResult()
		s.Error = err.Error()
	default:
		s.Result = result
	}
	s.Loading = false
	s.Rotator.Stop()

	blocked := uc.opts.Markers.Blocked(s.Result)
	s.State = view.Reduce(s.State, view.GatingObserved{Blocked: blocked})
	uc.log.Infof("analysis finished: session=%s grade=%s blocked=%v", s.ID, s.Result.HarshCritique.Grade, blocked)
}

// SelectTab 切换页签，未知页签被忽略
func (uc *SessionUseCase) SelectTab(ctx context.Context, id string, tab view.TabKey) (*domain.Snapshot, error) {
	return uc.dispatch(ctx, id, view.TabSelected{Tab: tab})
}

// SelectRating 选择消费者反应的星级，超出 1..5 的值被忽略
func (uc *SessionUseCase) SelectRating(ctx context.Context, id string, rating int) (*domain.Snapshot, error) {
	return uc.dispatch(ctx, id, view.RatingSelected{Rating: rating})
}

// GoBack 返回输入页。进行中的分析不会被取消，但其结果会被丢弃。
func (uc *SessionUseCase) GoBack(ctx context.Context, id string) (*domain.Snapshot, error) {
	s, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Lock()
	s.Epoch++
	s.Page = domain.PageInput
	s.Result = nil
	s.Error = ""
	s.Loading = false
	s.State = view.Reduce(s.State, view.Reset{})
	s.Rotator.Stop()
	s.Unlock()
	return uc.snapshot(s), nil
}

// Close 拒绝新的提交并等待进行中的分析结束
func (uc *SessionUseCase) Close() {
	uc.mu.Lock()
	uc.closed = true
	uc.mu.Unlock()
	uc.wg.Wait()
}

func (uc *SessionUseCase) dispatch(ctx context.Context, id string, ev view.Event) (*domain.Snapshot, error) {
	s, err := uc.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	s.Lock()
	s.State = view.Reduce(s.State, ev)
	s.Unlock()
	return uc.snapshot(s), nil
}

func (uc *SessionUseCase) snapshot(s *domain.Session) *domain.Snapshot {
	s.Lock()
	defer s.Unlock()
	snap := &domain.Snapshot{
		ID:           s.ID,
		Page:         s.Page,
		Idea:         s.Idea,
		ReferenceURL: s.ReferenceURL,
		Result:       s.Result,
		Loading:      s.Loading,
		Error:        s.Error,
		State:        s.State,
		Blocked:      uc.opts.Markers.Blocked(s.Result),
	}
	if s.Loading {
		snap.LoadingText = s.Rotator.Current()
	}
	return snap
}
