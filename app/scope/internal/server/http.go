package server

import (
	"time"

	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"

	"github.com/adamamaa/greenscope/app/scope/internal/conf"
	"github.com/adamamaa/greenscope/app/scope/internal/service"
)

func NewHTTPServer(c *conf.Server, s *service.ScopeService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
		),
	}
	if c != nil && c.Http != nil {
		if c.Http.Addr != "" {
			opts = append(opts, http.Address(c.Http.Addr))
		}
		if c.Http.Timeout != "" {
			if d, err := time.ParseDuration(c.Http.Timeout); err == nil {
				opts = append(opts, http.Timeout(d))
			}
		}
	}

	srv := http.NewServer(opts...)

	// 页面
	srv.HandleFunc("/", s.Index)
	srv.HandleFunc("/analyze", s.Analyze)
	srv.HandleFunc("/report", s.Report)
	srv.HandleFunc("/back", s.Back)

	// JSON 接口走 kratos 路由，错误按 kratos 格式编码
	srv.Route("/api").GET("/session", s.SessionStatus)
	srv.Route("").GET("/healthz", s.Healthz)

	log.NewHelper(logger).Infof("scope http server routes registered")

	return srv
}
