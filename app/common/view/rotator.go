package view

import (
	"sync"
	"time"
)

// IdleText 尚未开始加载时显示的文本
const IdleText = "AI 분석 엔진 시동 중..."

// DefaultInterval 加载文本的切换间隔
const DefaultInterval = 5 * time.Second

// LoadingSteps 加载过程中依次显示的文本
var LoadingSteps = []string{
	"아이디어 해부 시작...",
	"안전 가이드라인 준수 여부 검토 중...",
	"SWOT 매트릭스 구성 중...",
	"경쟁 환경 스캐닝...",
	"수익 모델 잠재력 분석...",
	"타겟 고객 페르소나 정의 중...",
	"마케팅 전략 구상 중...",
	"소비자 반응 시뮬레이션 중...",
	"최종 보고서 생성 중...",
	"거의 다 됐습니다!",
}

// Rotator 按固定间隔轮换加载文本。
// Start 从第一条重新开始，Stop 停止轮换但保留当前文本，显示到最后一条后自动停止。
type Rotator struct {
	mu       sync.Mutex
	interval time.Duration
	step     int
	text     string
	stop     chan struct{}
	done     chan struct{}
}

// NewRotator interval 不大于 0 时使用 DefaultInterval
func NewRotator(interval time.Duration) *Rotator {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Rotator{interval: interval, text: IdleText}
}

// Start 重新开始轮换，之前的轮换会先被停止
func (r *Rotator) Start() {
	stop, done := make(chan struct{}), make(chan struct{})

	r.mu.Lock()
	oldStop, oldDone := r.stop, r.done
	r.stop, r.done = stop, done
	r.step, r.text = 0, LoadingSteps[0]
	r.mu.Unlock()

	if oldStop != nil {
		close(oldStop)
		<-oldDone
	}
	go r.run(stop, done)
}

// Stop 停止轮换并等待后台 goroutine 退出
func (r *Rotator) Stop() {
	r.mu.Lock()
	stop, done := r.stop, r.done
	r.stop, r.done = nil, nil
	r.mu.Unlock()

	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (r *Rotator) run(stop, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			r.mu.Lock()
			if r.stop != stop {
				r.mu.Unlock()
				return
			}
			r.step++
			r.text = LoadingSteps[r.step]
			last := r.step == len(LoadingSteps)-1
			r.mu.Unlock()
			if last {
				return
			}
		}
	}
}

// Current 当前显示的文本
func (r *Rotator) Current() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text
}

// Step 当前文本在 LoadingSteps 中的下标
func (r *Rotator) Step() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.step
}

// Running 是否仍在轮换
func (r *Rotator) Running() bool {
	r.mu.Lock()
	done := r.done
	r.mu.Unlock()
	if done == nil {
		return false
	}
	select {
	case <-done:
		return false
	default:
		return true
	}
}
