package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestInitial(t *testing.T) {
	s := Initial()
	assert.Equal(t, TabSWOT, s.ActiveTab)
	assert.Equal(t, 5, s.SelectedRating)
	assert.False(t, s.Blocked)
}

func TestReduce_TabAndGatingEdges(t *testing.T) {
	s := Initial()

	s = Reduce(s, TabSelected{Tab: TabKPIs})
	assert.Equal(t, TabKPIs, s.ActiveTab)

	s = Reduce(s, GatingObserved{Blocked: true})
	assert.Equal(t, TabHarshCritique, s.ActiveTab)

	// 拦截状态下仍可切换页签，重复的 true 不再强制跳转
	s = Reduce(s, TabSelected{Tab: TabSWOT})
	s = Reduce(s, GatingObserved{Blocked: true})
	assert.Equal(t, TabSWOT, s.ActiveTab)

	s = Reduce(s, GatingObserved{Blocked: false})
	assert.Equal(t, TabSWOT, s.ActiveTab)
	assert.False(t, s.Blocked)

	s = Reduce(s, GatingObserved{Blocked: true})
	assert.Equal(t, TabHarshCritique, s.ActiveTab)
}

func TestReduce_IgnoresInvalidInput(t *testing.T) {
	s := Initial()

	s = Reduce(s, TabSelected{Tab: "unknown"})
	assert.Equal(t, TabSWOT, s.ActiveTab)

	for _, r := range []int{0, 6, -1} {
		s = Reduce(s, RatingSelected{Rating: r})
		assert.Equal(t, DefaultRating, s.SelectedRating)
	}
	s = Reduce(s, RatingSelected{Rating: 2})
	assert.Equal(t, 2, s.SelectedRating)
}

func TestReduce_Reset(t *testing.T) {
	s := State{ActiveTab: TabRiskAssessment, SelectedRating: 1, Blocked: true}
	assert.Equal(t, Initial(), Reduce(s, Reset{}))
}

func TestTabs(t *testing.T) {
	require.Len(t, Tabs, 9)
	seen := map[TabKey]bool{}
	for _, tab := range Tabs {
		assert.False(t, seen[tab.Key], "duplicate tab %s", tab.Key)
		seen[tab.Key] = true
		assert.True(t, tab.Key.Valid())
		assert.NotEmpty(t, tab.Label)
	}
	assert.Equal(t, "⭐", TabConsumerReactionPrediction.Tab().Icon)
	assert.False(t, TabKey("nope").Valid())
}

func TestRotator_AdvancesAndSelfStops(t *testing.T) {
	r := NewRotator(5 * time.Millisecond)
	assert.Equal(t, IdleText, r.Current())

	r.Start()
	require.Eventually(t, func() bool { return !r.Running() }, 2*time.Second, time.Millisecond)
	assert.Equal(t, len(LoadingSteps)-1, r.Step())
	assert.Equal(t, "거의 다 됐습니다!", r.Current())
	r.Stop()
}

func TestRotator_StopKeepsTextAndRestart(t *testing.T) {
	r := NewRotator(time.Hour)
	r.Start()
	assert.True(t, r.Running())
	assert.Equal(t, LoadingSteps[0], r.Current())

	r.Stop()
	assert.False(t, r.Running())
	assert.Equal(t, LoadingSteps[0], r.Current())

	r.Stop()

	r.Start()
	r.Start()
	assert.Equal(t, 0, r.Step())
	r.Stop()
}

func TestRotator_RestartFromFirstStep(t *testing.T) {
	r := NewRotator(2 * time.Millisecond)
	r.Start()
	require.Eventually(t, func() bool { return r.Step() >= 2 }, 2*time.Second, time.Millisecond)
	r.Stop()
	stopped := r.Step()
	time.Sleep(10 * time.Millisecond)
	assert.Equal(t, stopped, r.Step())

	r.interval = time.Hour
	r.Start()
	defer r.Stop()
	assert.Equal(t, 0, r.Step())
	assert.Equal(t, LoadingSteps[0], r.Current())
}
