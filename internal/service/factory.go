package service

import (
	"log/slog"
	"time"

	"github.com/sathesh-kumar-v/comply/internal/engine"
	"github.com/sathesh-kumar-v/comply/internal/queue"
	"github.com/sathesh-kumar-v/comply/internal/store"
)

type Services struct {
	stores   *store.Stores
	producer queue.Producer
	weights  engine.Weights
	now      func() time.Time
	logger   *slog.Logger
}

func NewServices(stores *store.Stores, producer queue.Producer, weights engine.Weights, logger *slog.Logger) *Services {
	return &Services{
		stores:   stores,
		producer: producer,
		weights:  weights,
		now:      time.Now,
		logger:   logger,
	}
}

func (s *Services) Actions() ActionService {
	return NewActionService(s.stores.Actions(), s.producer, s.weights, s.now, s.logger)
}
