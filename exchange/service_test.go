package exchange

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	converter "go-currency-converter"
)

type mock struct {
	quote converter.Quote
	err   error
}

func (m *mock) Latest(_ context.Context, _ converter.Currency, _ converter.Currency) (converter.Quote, error) {
	return m.quote, m.err
}

func quote(rate converter.Rate) converter.Quote {
	return converter.Quote{
		Base:  converter.SEK,
		Rates: converter.Rates{converter.IDR: rate},
		Date:  time.Date(2025, 3, 14, 0, 0, 0, 0, time.UTC),
	}
}

func TestService_Convert(t *testing.T) {
	service := &service{
		provider: &mock{},
		last:     quote(2000),
	}

	type args struct {
		amount converter.Amount
		from   converter.Currency
		to     converter.Currency
	}
	tests := []struct {
		name    string
		args    args
		want    converter.Exchanged
		wantErr bool
	}{
		{
			"sek -> idr",
			args{10.0, converter.SEK, converter.IDR},
			converter.Exchanged{Rate: 2000, Amount: 20000},
			false,
		},
		{
			"idr -> sek",
			args{5000.0, converter.IDR, converter.SEK},
			converter.Exchanged{Rate: 0.0005, Amount: 2.5},
			false,
		},
		{
			"sek -> sek",
			args{7.0, converter.SEK, converter.SEK},
			converter.Exchanged{Rate: 1, Amount: 7},
			false,
		},
		{
			"sek -> usd",
			args{10.0, converter.SEK, "USD"},
			converter.Exchanged{},
			true,
		},
		{
			"eur -> idr",
			args{10.0, "EUR", converter.IDR},
			converter.Exchanged{},
			true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := service.Convert(context.Background(), tt.args.amount, tt.args.from, tt.args.to)
			if (err != nil) != tt.wantErr {
				t.Errorf("Convert() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			assert.InDelta(t, float64(tt.want.Rate), float64(got.Rate), 1e-12)
			assert.InDelta(t, float64(tt.want.Amount), float64(got.Amount), 1e-9)
		})
	}
}

func TestService_ConvertUnsupported(t *testing.T) {
	s := NewService(&mock{}, 1500, nil)
	_, err := s.Convert(context.Background(), 1, "USD", converter.SEK)
	assert.ErrorIs(t, err, ErrUnsupportedCurrency)
}

func TestService_DefaultRate(t *testing.T) {
	s := NewService(&mock{}, 1500, nil)

	got := s.Rate(context.Background())

	assert.Equal(t, converter.SEK, got.Base)
	assert.Equal(t, converter.Rate(1500), got.Rates[converter.IDR])
	assert.WithinDuration(t, time.Now(), got.Date, time.Minute)
}

func TestService_Refresh(t *testing.T) {
	provider := &mock{quote: quote(1612.5)}
	s := NewService(provider, 1500, nil)

	got, err := s.Refresh(context.Background())

	require.NoError(t, err)
	assert.Equal(t, quote(1612.5), got)
	assert.Equal(t, quote(1612.5), s.Rate(context.Background()))
}

func TestService_RefreshKeepsPreviousRate(t *testing.T) {
	provider := &mock{quote: quote(1612.5)}
	s := NewService(provider, 1500, nil)
	_, err := s.Refresh(context.Background())
	require.NoError(t, err)

	provider.err = errors.New("no network")
	got, err := s.Refresh(context.Background())

	assert.Error(t, err)
	assert.Equal(t, quote(1612.5), got)
	assert.Equal(t, quote(1612.5), s.Rate(context.Background()))

	provider.err = nil
	provider.quote = quote(0)
	_, err = s.Refresh(context.Background())
	assert.Error(t, err)
	assert.Equal(t, converter.Rate(1612.5), s.Rate(context.Background()).Rates[converter.IDR])
}

func TestService_Table(t *testing.T) {
	s := NewService(&mock{}, 1500, []converter.Amount{20, 50, 100})

	rows := s.Table(context.Background())

	assert.Equal(t, []Row{
		{SEK: 20, IDR: 30000},
		{SEK: 50, IDR: 75000},
		{SEK: 100, IDR: 150000},
	}, rows)
}
