package catalog

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"mangashelf/pkg/logging"
	"mangashelf/pkg/models"
	"mangashelf/pkg/utils"
)

// Loader fetches the catalog once from whichever source the environment
// selects.
type Loader struct {
	Local       Source
	Remote      Source
	Environment string
	Logger      *zap.Logger
}

func NewLoader(cfg utils.Config, logger *zap.Logger) *Loader {
	timeout := cfg.Source.FetchTimeout.Std()
	return &Loader{
		Local:       NewSource(cfg.Source.Local, timeout),
		Remote:      NewSource(cfg.Source.Remote, timeout),
		Environment: cfg.Environment,
		Logger:      logging.OrNop(logger),
	}
}

// Source returns the source Load will read from.
func (l *Loader) Source() Source {
	if utils.IsLocalEnvironment(l.Environment) && l.Local != nil {
		return l.Local
	}
	return l.Remote
}

// Load never fails. Any problem is logged at warn level and yields an empty
// collection so the page can still render its empty state.
func (l *Loader) Load(ctx context.Context) []models.Item {
	items, err := l.TryLoad(ctx)
	if err != nil {
		l.logger().Warn("catalog load failed, continuing with an empty collection", zap.Error(err))
		return []models.Item{}
	}
	return items
}

// TryLoad is Load with the failure surfaced as a *LoadError.
func (l *Loader) TryLoad(ctx context.Context) ([]models.Item, error) {
	src := l.Source()
	if src == nil {
		return nil, &LoadError{Source: "<none>", Err: errors.New("no source configured")}
	}
	log := l.logger().With(zap.String("source", src.Name()))

	data, err := src.Fetch(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}
	items, dropped, err := Decode(data)
	for _, d := range dropped {
		log.Warn("skipping catalog entry",
			zap.Int("index", d.Index),
			zap.String("id", d.ID),
			zap.String("reason", d.Reason),
		)
	}
	if err != nil {
		return nil, &LoadError{Source: src.Name(), Err: err}
	}

	log.Info("catalog loaded", zap.Int("items", len(items)), zap.Int("dropped", len(dropped)))
	return items, nil
}

func (l *Loader) logger() *zap.Logger {
	return logging.OrNop(l.Logger)
}
