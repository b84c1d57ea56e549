package services

import (
	"context"
	"log/slog"
	"strings"

	"gymlog/models"
	"gymlog/validator"
)

// LogRequest is the input for recording a set
type LogRequest struct {
	Exercise string  `json:"exercise" validate:"notblank,max=100,exercise"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=2000"`
	Reps     int     `json:"reps" validate:"gte=0,lte=1000"`
}

// LogService handles business logic for gym logs
type LogService struct {
	repo      LogRepository
	validator *validator.Validator
	log       *slog.Logger
}

// NewLogService creates a new log service
func NewLogService(repo LogRepository, v *validator.Validator, logger *slog.Logger) *LogService {
	if v == nil {
		v = validator.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &LogService{
		repo:      repo,
		validator: v,
		log:       logger.With("component", "logs"),
	}
}

// Record validates req and queues the entry for userID. The write is not
// confirmed; the entry shows up in Watch once stored.
func (ls *LogService) Record(userID int, req LogRequest) (models.LogEntry, error) {
	req.Exercise = strings.TrimSpace(req.Exercise)
	if err := ls.validator.Validate(&req); err != nil {
		return models.LogEntry{}, err
	}

	entry := models.NewLogEntry(req.Exercise, req.Weight, req.Reps, userID)
	ls.repo.InsertLog(entry)

	ls.log.Debug("log queued", "user_id", userID, "exercise", entry.Exercise)
	return entry, nil
}

// History returns the user's logs, newest first
func (ls *LogService) History(ctx context.Context, userID int) ([]models.LogEntry, error) {
	logs := ls.repo.GetAllLogsByUserIDBlocking(ctx, userID)
	if logs == nil {
		return nil, ErrReadFailed
	}
	return logs, nil
}

// Watch calls fn with the user's full log list now and after every change.
func (ls *LogService) Watch(userID int, fn func([]models.LogEntry)) (cancel func()) {
	return ls.repo.GetAllLogsByUserIDLive(userID).Observe(fn)
}
