// Package report provides the submission rules for citizen reports and
// the per-business thread view.
package report

import (
	"context"
	"errors"
	"slices"
	"strings"
	"time"
	"unicode/utf8"

	"fairprice/backend/internal/config"
	"fairprice/backend/internal/models"
	"fairprice/backend/internal/storage"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmptyBody   = errors.New("report body is empty")
	ErrBodyTooLong = errors.New("report body is too long")
)

// Notifier is told about every report after it has been written.
type Notifier interface {
	PublishReport(ctx context.Context, rep models.Report) error
}

// Service handles the business logic for reports.
type Service struct {
	Storage  storage.Storage
	Notifier Notifier
	Logger   logrus.FieldLogger
	Location *time.Location
	Now      func() time.Time
}

// NewService creates a new report service. notifier may be nil.
func NewService(s storage.Storage, notifier Notifier, logger logrus.FieldLogger, loc *time.Location) *Service {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	if loc == nil {
		loc = time.Local
	}
	return &Service{
		Storage:  s,
		Notifier: notifier,
		Logger:   logger,
		Location: loc,
		Now:      time.Now,
	}
}

// Submit appends a report. The body must be non-empty after trimming and at
// most config.MaxBodyLength characters; every other field is stored as given,
// including a business name that is not in the catalog. Nothing is written
// when validation fails.
//
// The feed is published on a context detached from ctx so that a client
// hanging up after the append does not drop the broadcast.
func (s *Service) Submit(ctx context.Context, businessName, nickname, kind, body string) (models.Report, error) {
	if strings.TrimSpace(body) == "" {
		return models.Report{}, ErrEmptyBody
	}
	if utf8.RuneCountInString(body) > config.MaxBodyLength {
		return models.Report{}, ErrBodyTooLong
	}

	rep := models.NewReport(businessName, nickname, kind, body, s.Now().In(s.Location))
	if err := s.Storage.AppendReport(ctx, rep); err != nil {
		config.LogError(s.Logger, "report", "Submit", "append report", rep.BusinessName, err)
		return models.Report{}, err
	}

	if s.Notifier != nil {
		if err := s.Notifier.PublishReport(context.WithoutCancel(ctx), rep); err != nil {
			config.LogError(s.Logger, "report", "Submit", "publish report", rep.BusinessName, err)
		}
	}

	s.Logger.WithFields(logrus.Fields{"business": rep.BusinessName, "kind": rep.Kind}).Info("report appended")
	return rep, nil
}

// Thread loads the log and returns the reports for one business, newest first.
func (s *Service) Thread(ctx context.Context, businessName string) ([]models.Report, error) {
	table, err := s.Storage.LoadReports(ctx)
	if err != nil {
		return nil, err
	}
	return ForBusiness(table.Reports, businessName), nil
}

// ForBusiness returns the reports whose business name equals name exactly,
// in reverse log order.
func ForBusiness(reports []models.Report, name string) []models.Report {
	out := make([]models.Report, 0)
	for _, r := range reports {
		if r.BusinessName == name {
			out = append(out, r)
		}
	}
	slices.Reverse(out)
	return out
}

// KnownKind reports whether kind is one of the kinds offered by the forms.
func KnownKind(kind string) bool {
	return slices.Contains(config.ReportKinds, kind)
}
