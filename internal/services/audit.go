package services

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/LaBanHSPO/premium-bio-website/internal/models"

	"gorm.io/gorm"
)

// AuditService records admin actions (login, logout, config changes)
// asynchronously so a slow audit write never blocks a request.
type AuditService struct {
	db      *gorm.DB
	logger  *slog.Logger
	channel chan models.AuditLog
}

func NewAuditService(db *gorm.DB, logger *slog.Logger) *AuditService {
	return &AuditService{
		db:      db,
		logger:  logger,
		channel: make(chan models.AuditLog, 100),
	}
}

// Start drains the audit channel until the context is cancelled. Run it
// in its own goroutine from main.
func (s *AuditService) Start(ctx context.Context) {
	s.logger.Info("Audit worker starting")
	for {
		select {
		case entry := <-s.channel:
			if err := s.db.Create(&entry).Error; err != nil {
				s.logger.Error("Failed to write audit log", "action", entry.Action, "error", err)
			}
		case <-ctx.Done():
			s.logger.Info("Audit worker stopping")
			return
		}
	}
}

// LogAction queues an audit entry. When the buffer is full the entry is
// dropped with a warning.
func (s *AuditService) LogAction(username, action string, details interface{}, ip string) {
	detailBytes, _ := json.Marshal(details)

	entry := models.AuditLog{
		Username:  username,
		Action:    action,
		Details:   string(detailBytes),
		IPAddress: ip,
		Timestamp: time.Now(),
	}

	select {
	case s.channel <- entry:
	default:
		s.logger.Warn("Audit channel full, dropping entry", "action", action)
	}
}
