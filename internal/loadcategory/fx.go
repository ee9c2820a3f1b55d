package loadcategory

import (
	"github.com/smallbiznis/voltra/internal/loadcategory/repository"
	"github.com/smallbiznis/voltra/internal/loadcategory/service"
	"go.uber.org/fx"
)

var Module = fx.Module("loadcategory.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
	fx.Provide(service.NewDirectory),
)
