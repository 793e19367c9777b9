package service

import (
	"context"
	"fmt"
	"mime"
	"path"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/shenikar/armguard_console/internal/models"
	"github.com/shenikar/armguard_console/internal/normalize"
	"github.com/shenikar/armguard_console/internal/notify"
)

const (
	EvidencePageSize   = 9
	evidenceFetchLimit = 500
)

// EvidenceArchive - хранилище копий снимков (MinIO)
type EvidenceArchive interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

type EvidenceList struct {
	Page  models.Page[models.Evidence] `json:"page"`
	Today int                          `json:"today"`
}

// EvidenceFile - скачанный снимок
type EvidenceFile struct {
	Name        string
	ContentType string
	Data        []byte
}

// ArchivedEvidence - результат копирования снимка в архив
type ArchivedEvidence struct {
	ID  string `json:"id"`
	Key string `json:"key"`
	URL string `json:"url"`
}

// EvidenceService определяет контракт галереи доказательств
type EvidenceService interface {
	List(ctx context.Context, page, pageSize int) (*EvidenceList, error)
	Download(ctx context.Context, id string) (*EvidenceFile, error)
	Archive(ctx context.Context, actor Actor, id string) (*ArchivedEvidence, error)
	ArchiveEnabled() bool
}

type evidenceService struct {
	api     Backend
	archive EvidenceArchive
	reporter
	now func() time.Time
}

// NewEvidenceService; archive == nil отключает копирование в MinIO
func NewEvidenceService(api Backend, archive EvidenceArchive, audit AuditService, notifier notify.Notifier, logger *logrus.Logger) EvidenceService {
	return &evidenceService{
		api:      api,
		archive:  archive,
		reporter: reporter{audit: audit, notifier: notifier, logger: logger},
		now:      time.Now,
	}
}

func (s *evidenceService) ArchiveEnabled() bool {
	return s.archive != nil
}

func (s *evidenceService) fetch(ctx context.Context) ([]models.Evidence, error) {
	raw, err := s.api.ListIncidents(ctx, evidenceFetchLimit)
	if err != nil {
		return nil, err
	}
	return normalize.Evidence(raw, s.api.PublicBase()), nil
}

// List - инциденты со снимками, новые первыми
func (s *evidenceService) List(ctx context.Context, page, pageSize int) (*EvidenceList, error) {
	items, err := s.fetch(ctx)
	if err != nil {
		s.logger.WithFields(logrus.Fields{
			"service": "evidence",
			"method":  "List",
		}).WithError(err).Error("Failed to list evidence")
		s.notify(notify.LevelError, "Could not load evidence", "")
		return nil, fmt.Errorf("service: could not list evidence: %w", err)
	}

	out := &EvidenceList{}
	now := s.now()
	y, m, d := now.Date()
	for _, it := range items {
		if it.OccurredAt.IsZero() {
			continue
		}
		ty, tm, td := it.OccurredAt.In(now.Location()).Date()
		if ty == y && tm == m && td == d {
			out.Today++
		}
	}
	if pageSize < 1 {
		pageSize = EvidencePageSize
	}
	out.Page = models.Paginate(items, page, pageSize)
	return out, nil
}

func (s *evidenceService) find(ctx context.Context, id string) (*models.Evidence, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrInvalidID
	}
	items, err := s.fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("service: could not list evidence: %w", err)
	}
	for i := range items {
		if items[i].ID == id {
			return &items[i], nil
		}
	}
	return nil, fmt.Errorf("service: evidence %s: %w", id, ErrNotFound)
}

// Download скачивает снимок через backend с токеном сессии
func (s *evidenceService) Download(ctx context.Context, id string) (*EvidenceFile, error) {
	log := s.logger.WithFields(logrus.Fields{
		"service":     "evidence",
		"method":      "Download",
		"evidence_id": id,
	})

	ev, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	data, contentType, err := s.api.FetchEvidence(ctx, ev.EvidenceURL)
	if err != nil {
		log.WithError(err).Error("Failed to download evidence")
		s.notify(notify.LevelError, "Could not download evidence", "")
		return nil, fmt.Errorf("service: could not download evidence: %w", err)
	}
	return &EvidenceFile{
		Name:        "evidence-" + ev.ID + extensionFor(contentType),
		ContentType: contentType,
		Data:        data,
	}, nil
}

// Archive копирует снимок в архив; ключ evidence/<камера>/<id><ext>
func (s *evidenceService) Archive(ctx context.Context, actor Actor, id string) (*ArchivedEvidence, error) {
	if s.archive == nil {
		return nil, ErrArchiveDisabled
	}
	log := s.logger.WithFields(logrus.Fields{
		"service":     "evidence",
		"method":      "Archive",
		"evidence_id": id,
	})

	file, err := s.Download(ctx, id)
	if err != nil {
		return nil, err
	}
	ev, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	key := path.Join("evidence", ev.CameraID, ev.ID+extensionFor(file.ContentType))
	url, err := s.archive.Put(ctx, key, file.Data, file.ContentType)
	s.outcome(ctx, actor, "evidence.archive", id, err, "Evidence archived", "Could not archive evidence")
	if err != nil {
		log.WithError(err).Error("Failed to archive evidence")
		return nil, fmt.Errorf("service: could not archive evidence: %w", err)
	}

	log.WithField("key", key).Info("Evidence archived successfully")
	return &ArchivedEvidence{ID: ev.ID, Key: key, URL: url}, nil
}

func extensionFor(contentType string) string {
	media, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return ".jpg"
	}
	switch media {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	}
	if exts, err := mime.ExtensionsByType(media); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".jpg"
}
