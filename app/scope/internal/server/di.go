package server

import (
	"github.com/google/wire"

	"github.com/adamamaa/greenscope/app/common/render"
	"github.com/adamamaa/greenscope/app/scope/internal/data"
	"github.com/adamamaa/greenscope/app/scope/internal/service"
	"github.com/adamamaa/greenscope/app/scope/internal/usecase"
)

// ProviderSet 是 scope 服务的依赖注入 Provider 集合
var ProviderSet = wire.NewSet(
	// Server providers
	NewHTTPServer,
	NewGenerator,
	NewSessionOptions,

	// Data providers
	data.NewData,
	data.NewSessionRepo,

	// UseCase providers
	usecase.NewSessionUseCase,

	// Service providers
	render.New,
	service.NewScopeService,
)
