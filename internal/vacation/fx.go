package vacation

import (
	"github.com/smallbiznis/voltra/internal/vacation/repository"
	"github.com/smallbiznis/voltra/internal/vacation/service"
	"go.uber.org/fx"
)

var Module = fx.Module("vacation.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
