package usecase

import (
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/prometheus/client_golang/prometheus"

	"task-reminder-bot/internal/datetime"
	"task-reminder-bot/pkg/datemath"
	pkgLog "task-reminder-bot/pkg/log"
)

// maxZones bounds the number of per-timezone parsers kept around for requests that override the zone.
const maxZones = 64

type implUseCase struct {
	l        pkgLog.Logger
	dateMath *datemath.Parser
	opts     []datemath.Option
	zones    *lru.Cache[string, *datemath.Parser]
	metrics  *metrics
}

var _ datetime.UseCase = (*implUseCase)(nil)

// New creates the datetime UseCase. Metrics are registered on reg; opts are applied to every
// per-timezone parser created on demand.
func New(l pkgLog.Logger, dateMath *datemath.Parser, reg prometheus.Registerer, opts ...datemath.Option) (*implUseCase, error) {
	zones, err := lru.New[string, *datemath.Parser](maxZones)
	if err != nil {
		return nil, err
	}
	m, err := newMetrics(reg)
	if err != nil {
		return nil, err
	}
	return &implUseCase{
		l:        l,
		dateMath: dateMath,
		opts:     opts,
		zones:    zones,
		metrics:  m,
	}, nil
}
