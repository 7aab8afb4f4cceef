package invoice

import (
	"github.com/smallbiznis/billora/internal/invoice/pdf"
	"github.com/smallbiznis/billora/internal/invoice/service"
	"go.uber.org/fx"
)

var Module = fx.Module("invoice.service",
	fx.Provide(pdf.NewRenderer),
	fx.Provide(service.NewService),
)
