package usecase

import (
	"context"

	"github.com/thefortaiagency/bendavis/internal/model"
)

type DashboardUsecase struct {
	metrics model.DashboardMetrics
}

func NewDashboardUsecase() *DashboardUsecase {
	return &DashboardUsecase{
		metrics: model.MockDashboardMetrics,
	}
}

func (d *DashboardUsecase) Metrics(_ context.Context) model.DashboardMetrics {
	return d.metrics
}
