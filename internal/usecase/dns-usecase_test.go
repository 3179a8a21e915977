package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thefortaiagency/bendavis/config"
	"github.com/thefortaiagency/bendavis/internal/model"
)

type fakeRegistrar struct {
	existing []model.DNSRecord
	getErr   error
	writeErr error

	added    []model.DNSRecord
	replaced []model.DNSRecord
	domain   string
}

func (f *fakeRegistrar) GetRecords(
	_ context.Context, domain string, _ model.DNSRecordType, _ string,
) ([]model.DNSRecord, error) {
	f.domain = domain
	return f.existing, f.getErr
}

func (f *fakeRegistrar) AddRecords(_ context.Context, _ string, records []model.DNSRecord) error {
	f.added = records
	return f.writeErr
}

func (f *fakeRegistrar) ReplaceRecords(
	_ context.Context, _ string, _ model.DNSRecordType, _ string, records []model.DNSRecord,
) error {
	f.replaced = records
	return f.writeErr
}

var defaultRecord = model.DNSRecord{
	Type: model.DNSRecordA,
	Name: DefaultDNSRecordName,
	Data: DefaultDNSRecordData,
	TTL:  DefaultDNSRecordTTL,
}

func newTestDNS(r RegistrarClient) *DNSUsecase {
	return NewDNSUsecase(DNSUsecaseDeps{Registrar: r}, config.GoDaddy{Domain: "thefortaiagency.ai"})
}

func TestDNSUsecase_Configure(t *testing.T) {
	t.Run("creates when missing", func(t *testing.T) {
		r := &fakeRegistrar{getErr: model.ErrDNSRecordNotFound}

		action, err := newTestDNS(r).Configure(context.Background(), defaultRecord)

		require.NoError(t, err)
		assert.Equal(t, model.DNSActionCreated, action)
		assert.Equal(t, []model.DNSRecord{defaultRecord}, r.added)
		assert.Nil(t, r.replaced)
		assert.Equal(t, "thefortaiagency.ai", r.domain)
	})

	t.Run("creates when the list is empty", func(t *testing.T) {
		r := &fakeRegistrar{existing: []model.DNSRecord{}}

		action, err := newTestDNS(r).Configure(context.Background(), defaultRecord)

		require.NoError(t, err)
		assert.Equal(t, model.DNSActionCreated, action)
	})

	t.Run("updates an existing record", func(t *testing.T) {
		r := &fakeRegistrar{existing: []model.DNSRecord{{Data: "1.2.3.4", TTL: 3600}}}

		action, err := newTestDNS(r).Configure(context.Background(), defaultRecord)

		require.NoError(t, err)
		assert.Equal(t, model.DNSActionUpdated, action)
		assert.Equal(t, []model.DNSRecord{{Data: DefaultDNSRecordData, TTL: DefaultDNSRecordTTL}}, r.replaced)
		assert.Nil(t, r.added)
	})

	t.Run("lookup failure", func(t *testing.T) {
		r := &fakeRegistrar{getErr: errors.New("HTTP 401")}

		_, err := newTestDNS(r).Configure(context.Background(), defaultRecord)

		assert.Error(t, err)
		assert.Nil(t, r.added)
		assert.Nil(t, r.replaced)
	})

	t.Run("write failure", func(t *testing.T) {
		writeErr := errors.New("HTTP 422")
		r := &fakeRegistrar{getErr: model.ErrDNSRecordNotFound, writeErr: writeErr}

		_, err := newTestDNS(r).Configure(context.Background(), defaultRecord)

		assert.ErrorIs(t, err, writeErr)
	})
}

func TestDNSUsecase_Check(t *testing.T) {
	records, err := newTestDNS(&fakeRegistrar{getErr: model.ErrDNSRecordNotFound}).
		Check(context.Background(), model.DNSRecordA, "bendavis")
	require.NoError(t, err)
	assert.Empty(t, records)

	want := []model.DNSRecord{{Data: "76.76.21.21", TTL: 600}}
	records, err = newTestDNS(&fakeRegistrar{existing: want}).Check(context.Background(), model.DNSRecordA, "bendavis")
	require.NoError(t, err)
	assert.Equal(t, want, records)

	_, err = newTestDNS(&fakeRegistrar{getErr: errors.New("boom")}).Check(context.Background(), model.DNSRecordA, "x")
	assert.Error(t, err)
}

func TestDashboardUsecase_Metrics(t *testing.T) {
	m := NewDashboardUsecase().Metrics(context.Background())

	assert.Equal(t, 179, m.TotalSales)
	assert.Equal(t, int64(2400000), m.MonthlyRevenue)
	assert.Equal(t, 255, m.ServiceAppointments)
	assert.Equal(t, 92, m.CustomerSatisfaction)
	assert.Equal(t, 342, m.InventoryCount)
	assert.Equal(t, 68, m.LeadConversions)
}
