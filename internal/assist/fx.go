package assist

import (
	"github.com/smallbiznis/billora/internal/assist/genai"
	"github.com/smallbiznis/billora/internal/assist/service"
	"go.uber.org/fx"
)

var Module = fx.Module("assist.service",
	fx.Provide(genai.NewClient),
	fx.Provide(service.NewService),
)
