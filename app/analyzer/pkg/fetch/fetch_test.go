package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<!DOCTYPE html>
<html><head><title>커피 구독 시장</title></head>
<body>
<nav>메뉴 홈 소개</nav>
<article>
<h1>커피 구독 시장 동향</h1>
<p>국내 커피 구독 시장은 최근 3년간 빠르게 성장했습니다. 원두 정기 배송 서비스는 직장인과 홈카페 이용자를 중심으로 확산되고 있으며, 소규모 로스터리들도 구독 모델을 도입하고 있습니다.</p>
<p>업계는 개인화 추천과 유연한 배송 주기를 핵심 경쟁 요소로 보고 있습니다. 다만 고객 이탈률이 높아 초기 프로모션 이후의 유지 전략이 중요합니다.</p>
<p>전문가들은 향후 5년간 연평균 10% 이상의 성장을 예상합니다.</p>
</article>
</body></html>`

func TestReadableFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := NewReadable(5*time.Second, 0).Fetch(context.Background(), srv.URL+"/article")
	require.NoError(t, err)
	assert.Contains(t, text, "커피 구독 시장은 최근 3년간")
	assert.NotContains(t, text, "\n")
}

func TestReadableFetch_Truncates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(page))
	}))
	defer srv.Close()

	text, err := NewReadable(time.Second, 12).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, 12, len([]rune(text)))
}

func TestReadableFetch_Errors(t *testing.T) {
	r := NewReadable(0, 0)
	for _, u := range []string{"", "ftp://example.com/x", "not a url", "/relative"} {
		_, err := r.Fetch(context.Background(), u)
		assert.True(t, errors.Is(err, ErrUnsupportedURL), "url %q: %v", u, err)
	}

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, err := r.Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
}

func TestSanitize(t *testing.T) {
	in := "a\x00b \n\t c" + string([]byte{0xff, 0xfe}) + "d"
	assert.Equal(t, "ab cd", Sanitize(in))
	assert.Equal(t, "", Sanitize(strings.Repeat(" ", 4)))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "가나", Truncate("가나다", 2))
	assert.Equal(t, "가나다", Truncate("가나다", 0))
	assert.Equal(t, "가나다", Truncate("가나다", 10))
}
