package updatesettings

import (
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/settings"
	"beatwatch/internal/core/services"
	"context"
)

type Input struct {
	Muted bool
}

type Result struct {
	Settings settings.Settings
}

// service persists the new settings value and replaces the in-process view
// immediately, without waiting for the change notification to round-trip.
type service struct {
	log   logging.Logger
	repo  settings.Repository
	cache *settings.Cache
}

func New(
	log logging.Logger,
	repo settings.Repository,
	cache *settings.Cache,
) services.Service[Input, Result] {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if repo == nil {
		panic(e.NewNilArgumentError("repo"))
	}
	if cache == nil {
		panic(e.NewNilArgumentError("cache"))
	}
	return &service{log: log, repo: repo, cache: cache}
}

func (s *service) Run(ctx context.Context, input Input) (result Result, err error) {
	updated := settings.Settings{Muted: input.Muted}
	if err := s.repo.Set(ctx, updated); err != nil {
		logging.Error(ctx, s.log, err, logging.Entry("input", input))
		return result, err
	}
	s.cache.Replace(updated)

	s.log.Info(ctx, "Settings updated.", logging.Entry("muted", updated.Muted))
	result.Settings = updated
	return result, nil
}
