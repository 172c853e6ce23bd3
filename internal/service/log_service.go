package service

import (
	"context"
	"log/slog"

	"fpvsettling/ai-gateway/internal/domain"
	"fpvsettling/ai-gateway/internal/lib/logger/sl"
	"fpvsettling/ai-gateway/internal/repository"
)

// EventSink is the durable/visible destination of a log event.
type EventSink interface {
	Write(event domain.LogEvent) error
}

type LogService struct {
	sink EventSink
	repo repository.LogRepository
	log  *slog.Logger
}

func NewLogService(sink EventSink, repo repository.LogRepository, log *slog.Logger) *LogService {
	if repo == nil {
		repo = repository.NopLogRepository{}
	}
	return &LogService{
		sink: sink,
		repo: repo,
		log:  log.With(slog.String("component", "log-service")),
	}
}

// Record writes the event to the sink and then fans it out. Only a sink
// failure is reported to the caller.
func (s *LogService) Record(ctx context.Context, event domain.LogEvent) error {
	event = event.WithDefaults()
	if !event.Level.Known() {
		s.log.Debug("unrecognized log level", slog.String("level", string(event.Level)))
	}

	if err := s.sink.Write(event); err != nil {
		return err
	}

	if err := s.repo.SendLog(ctx, event); err != nil {
		s.log.Warn("log fan-out failed",
			slog.String("source", event.SourceName()),
			sl.Err(err),
		)
	}
	return nil
}
