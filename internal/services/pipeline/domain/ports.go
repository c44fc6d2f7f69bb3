package domain

import (
	"context"

	alertsdom "groundwatch/internal/services/alerts/domain"
	imgdom "groundwatch/internal/services/imagery/domain"
	infdom "groundwatch/internal/services/inference/domain"
	measdom "groundwatch/internal/services/measurements/domain"
)

// RunnerPort is the external port for one pipeline run
type RunnerPort interface {
	Run(ctx context.Context) RunReport
}

// Ports are dependencies injected into the pipeline module
type Ports struct {
	Catalog      imgdom.CatalogPort // required
	Segmenter    infdom.SegmenterPort
	History      measdom.ReaderPort
	Measurements measdom.WriterPort
	Alerts       alertsdom.WriterPort
}
