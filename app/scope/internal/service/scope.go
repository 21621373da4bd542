package service

import (
	"bytes"
	"context"
	nethttp "net/http"
	"strconv"
	"time"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/adamamaa/greenscope/app/common/render"
	"github.com/adamamaa/greenscope/app/common/view"
	"github.com/adamamaa/greenscope/app/scope/internal/conf"
	"github.com/adamamaa/greenscope/app/scope/internal/domain"
	"github.com/adamamaa/greenscope/app/scope/internal/usecase"
)

// DefaultCookieName 未配置时的会话 cookie 名称
const DefaultCookieName = "scope_session"

// ScopeService 页面与会话接口
type ScopeService struct {
	uc     *usecase.SessionUseCase
	rd     *render.Renderer
	cookie string
	poll   time.Duration
	now    func() time.Time
	log    *log.Helper
}

func NewScopeService(uc *usecase.SessionUseCase, rd *render.Renderer, c *conf.Session, opts usecase.Options, logger log.Logger) *ScopeService {
	cookie := DefaultCookieName
	if c != nil && c.CookieName != "" {
		cookie = c.CookieName
	}
	return &ScopeService{
		uc:     uc,
		rd:     rd,
		cookie: cookie,
		poll:   opts.PollInterval,
		now:    time.Now,
		log:    log.NewHelper(logger),
	}
}

// Index 输入页；会话已在分析页时直接显示报告
func (s *ScopeService) Index(w nethttp.ResponseWriter, r *nethttp.Request) {
	if r.URL.Path != "/" {
		nethttp.NotFound(w, r)
		return
	}
	if !allow(w, r, nethttp.MethodGet) {
		return
	}
	snap, err := s.session(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if snap.Page == domain.PageAnalysis {
		s.report(w, snap)
		return
	}
	s.input(w, nethttp.StatusOK, snap.Idea, snap.ReferenceURL, "")
}

// Analyze 提交创意
func (s *ScopeService) Analyze(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allow(w, r, nethttp.MethodPost) {
		return
	}
	if err := r.ParseForm(); err != nil {
		s.fail(w, errors.BadRequest("BAD_FORM", err.Error()))
		return
	}
	idea, ref := r.PostForm.Get("idea"), r.PostForm.Get("reference_url")

	snap, err := s.session(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if _, err := s.uc.Submit(r.Context(), snap.ID, idea, ref); err != nil {
		if se := errors.FromError(err); se.Code == nethttp.StatusBadRequest {
			s.input(w, nethttp.StatusBadRequest, idea, ref, se.Message)
			return
		}
		s.fail(w, err)
		return
	}
	nethttp.Redirect(w, r, "/report", nethttp.StatusSeeOther)
}

// Report 报告页，tab 和 rating 参数分别派发页签和星级事件
func (s *ScopeService) Report(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allow(w, r, nethttp.MethodGet) {
		return
	}
	snap, err := s.session(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if snap.Page != domain.PageAnalysis {
		nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
		return
	}

	q := r.URL.Query()
	if tab := q.Get("tab"); tab != "" {
		if snap, err = s.uc.SelectTab(r.Context(), snap.ID, view.TabKey(tab)); err != nil {
			s.fail(w, err)
			return
		}
	}
	if raw := q.Get("rating"); raw != "" {
		if rating, convErr := strconv.Atoi(raw); convErr == nil {
			if snap, err = s.uc.SelectRating(r.Context(), snap.ID, rating); err != nil {
				s.fail(w, err)
				return
			}
		}
	}
	s.report(w, snap)
}

// Back 返回输入页
func (s *ScopeService) Back(w nethttp.ResponseWriter, r *nethttp.Request) {
	if !allow(w, r, nethttp.MethodPost) {
		return
	}
	snap, err := s.session(w, r)
	if err != nil {
		s.fail(w, err)
		return
	}
	if _, err := s.uc.GoBack(r.Context(), snap.ID); err != nil {
		s.fail(w, err)
		return
	}
	nethttp.Redirect(w, r, "/", nethttp.StatusSeeOther)
}

// SessionReply /api/session 的响应
type SessionReply struct {
	ID             string `json:"id"`
	Page           string `json:"page"`
	Loading        bool   `json:"loading"`
	LoadingText    string `json:"loading_text,omitempty"`
	Blocked        bool   `json:"blocked"`
	ActiveTab      string `json:"active_tab"`
	SelectedRating int    `json:"selected_rating"`
	Grade          string `json:"grade,omitempty"`
	Error          string `json:"error,omitempty"`
}

// SessionStatus 页面轮询使用的会话快照
func (s *ScopeService) SessionStatus(ctx http.Context) error {
	c, err := ctx.Request().Cookie(s.cookie)
	if err != nil {
		return usecase.ErrSessionNotFound
	}
	h := ctx.Middleware(func(ctx context.Context, _ interface{}) (interface{}, error) {
		return s.sessionReply(ctx, c.Value)
	})
	out, err := h(ctx, nil)
	if err != nil {
		return err
	}
	return ctx.Result(nethttp.StatusOK, out)
}

func (s *ScopeService) sessionReply(ctx context.Context, id string) (*SessionReply, error) {
	snap, err := s.uc.Snapshot(ctx, id)
	if err != nil {
		return nil, err
	}
	reply := &SessionReply{
		ID:             snap.ID,
		Page:           string(snap.Page),
		Loading:        snap.Loading,
		LoadingText:    snap.LoadingText,
		Blocked:        snap.Blocked,
		ActiveTab:      string(snap.State.ActiveTab),
		SelectedRating: snap.State.SelectedRating,
		Error:          snap.Error,
	}
	if snap.Result != nil && !snap.Loading {
		reply.Grade = string(snap.Result.HarshCritique.Grade)
	}
	return reply, nil
}

// Healthz 存活检查
func (s *ScopeService) Healthz(ctx http.Context) error {
	return ctx.JSON(nethttp.StatusOK, map[string]string{"status": "ok"})
}

// session 读取 cookie 对应的会话，没有或已过期时创建新会话并写回 cookie
func (s *ScopeService) session(w nethttp.ResponseWriter, r *nethttp.Request) (*domain.Snapshot, error) {
	var id string
	if c, err := r.Cookie(s.cookie); err == nil {
		id = c.Value
	}
	snap, err := s.uc.Open(r.Context(), id)
	if err != nil {
		return nil, err
	}
	if snap.ID != id {
		nethttp.SetCookie(w, &nethttp.Cookie{
			Name:     s.cookie,
			Value:    snap.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: nethttp.SameSiteLaxMode,
		})
	}
	return snap, nil
}

func (s *ScopeService) input(w nethttp.ResponseWriter, status int, idea, ref, errMsg string) {
	page := render.NewInputPage(idea, ref, errMsg, false, s.now())
	s.write(w, status, func(buf *bytes.Buffer) error { return s.rd.Input(buf, page) })
}

func (s *ScopeService) report(w nethttp.ResponseWriter, snap *domain.Snapshot) {
	page := render.NewReportPage(render.ReportInput{
		Idea:         snap.Idea,
		Result:       snap.Result,
		State:        snap.State,
		Markers:      s.uc.Markers(),
		Loading:      snap.Loading,
		LoadingText:  snap.LoadingText,
		ErrorMessage: snap.Error,
		Mode:         render.ModeServer,
		Now:          s.now(),
		PollInterval: s.poll,
	})
	s.write(w, nethttp.StatusOK, func(buf *bytes.Buffer) error { return s.rd.Report(buf, page) })
}

// write 先渲染到缓冲区，模板出错时返回 500 而不是半截页面
func (s *ScopeService) write(w nethttp.ResponseWriter, status int, fn func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := fn(&buf); err != nil {
		s.log.Errorf("render page: %v", err)
		nethttp.Error(w, "internal error", nethttp.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func (s *ScopeService) fail(w nethttp.ResponseWriter, err error) {
	se := errors.FromError(err)
	if se.Code >= nethttp.StatusInternalServerError {
		s.log.Errorf("request failed: %v", err)
	}
	nethttp.Error(w, se.Message, int(se.Code))
}

func allow(w nethttp.ResponseWriter, r *nethttp.Request, method string) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	nethttp.Error(w, "method not allowed", nethttp.StatusMethodNotAllowed)
	return false
}
