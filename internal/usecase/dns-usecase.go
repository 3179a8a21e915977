package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
	"go.uber.org/zap"
)

const (
	DefaultDNSRecordName = "bendavis"
	DefaultDNSRecordData = "76.76.21.21"
	DefaultDNSRecordTTL  = 600
)

// RegistrarClient is the domain registrar's record API.
type RegistrarClient interface {
	GetRecords(ctx context.Context, domain string, recordType model.DNSRecordType, name string) ([]model.DNSRecord, error)
	AddRecords(ctx context.Context, domain string, records []model.DNSRecord) error
	ReplaceRecords(
		ctx context.Context, domain string, recordType model.DNSRecordType, name string, records []model.DNSRecord,
	) error
}

type DNSUsecaseDeps struct {
	Registrar RegistrarClient
	Logger    *zap.Logger
}

type DNSUsecase struct {
	DNSUsecaseDeps
	cfg config.GoDaddy
}

func NewDNSUsecase(deps DNSUsecaseDeps, cfg config.GoDaddy) *DNSUsecase {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &DNSUsecase{
		DNSUsecaseDeps: deps,
		cfg:            cfg,
	}
}

func (d *DNSUsecase) Domain() string {
	return d.cfg.Domain
}

// Configure points record.Name at record.Data, creating the record when the
// registrar has none and replacing it otherwise.
func (d *DNSUsecase) Configure(ctx context.Context, record model.DNSRecord) (model.DNSAction, error) {
	existing, err := d.Registrar.GetRecords(ctx, d.cfg.Domain, record.Type, record.Name)
	if err != nil && !errors.Is(err, model.ErrDNSRecordNotFound) {
		return "", fmt.Errorf("failed to check existing %s record %s: %w", record.Type, record.Name, err)
	}

	logger := d.Logger.With(
		zap.String("domain", d.cfg.Domain),
		zap.String("type", string(record.Type)),
		zap.String("name", record.Name),
		zap.String("data", record.Data),
	)

	if err != nil || len(existing) == 0 {
		logger.Info("no existing record found, creating")
		if err = d.Registrar.AddRecords(ctx, d.cfg.Domain, []model.DNSRecord{record}); err != nil {
			return "", fmt.Errorf("failed to create %s record %s: %w", record.Type, record.Name, err)
		}
		return model.DNSActionCreated, nil
	}

	logger.Info("found existing record, updating")
	update := []model.DNSRecord{{Data: record.Data, TTL: record.TTL}}
	if err = d.Registrar.ReplaceRecords(ctx, d.cfg.Domain, record.Type, record.Name, update); err != nil {
		return "", fmt.Errorf("failed to update %s record %s: %w", record.Type, record.Name, err)
	}
	return model.DNSActionUpdated, nil
}

// Check returns the records currently registered for name. A missing record is
// reported as an empty list.
func (d *DNSUsecase) Check(ctx context.Context, recordType model.DNSRecordType, name string) ([]model.DNSRecord, error) {
	records, err := d.Registrar.GetRecords(ctx, d.cfg.Domain, recordType, name)
	if err != nil {
		if errors.Is(err, model.ErrDNSRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get %s record %s: %w", recordType, name, err)
	}
	return records, nil
}
