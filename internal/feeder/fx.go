package feeder

import (
	"github.com/smallbiznis/voltra/internal/feeder/repository"
	"github.com/smallbiznis/voltra/internal/feeder/service"
	"go.uber.org/fx"
)

var Module = fx.Module("feeder.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
