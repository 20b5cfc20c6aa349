package earnings

import (
	"sort"
	"time"

	bookingRepo "fixly/database/repository/booking"
	earningsRepo "fixly/database/repository/earnings"
	providerRepo "fixly/database/repository/provider"
	"fixly/models"
	"fixly/utils"
	"fixly/utils/apperr"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// Summary periods.
const (
	PeriodWeek  = "week"
	PeriodMonth = "month"
	PeriodYear  = "year"
)

// ListResult is one page of ledger records with window totals.
type ListResult struct {
	Records         []models.EarningsRecord `json:"records"`
	TotalCommission float64                 `json:"totalCommission"`
	TotalBookings   int                     `json:"totalBookings"`
	Pagination      models.Pagination       `json:"pagination"`
}

// EarningsService maintains the platform commission ledger.
type EarningsService interface {
	// RecordCommission folds a booking's commission into the ledger record
	// for its calendar date.
	RecordCommission(date time.Time, bookingID string, commission float64) error
	// Summary aggregates the ledger over a rolling week, month or year.
	Summary(period string) (*models.EarningsSummary, error)
	// List returns one page of ledger records, newest date first. Zero
	// from/to bounds leave that side of the window open.
	List(from, to time.Time, page, limit int) (*ListResult, error)
	// UpdateNotes attaches an operator note to a ledger record.
	UpdateNotes(id, notes string) (*models.EarningsRecord, error)
	// RunRollup sweeps completed bookings whose commission has not been
	// recorded yet, returning how many were processed.
	RunRollup() (int, error)
}

// DefaultEarningsService is the production implementation of EarningsService.
type DefaultEarningsService struct {
	EarningsRepo earningsRepo.EarningsRepository
	BookingRepo  bookingRepo.BookingRepository
	ProviderRepo providerRepo.ProviderRepository
}

func (s *DefaultEarningsService) RecordCommission(date time.Time, bookingID string, commission float64) error {
	return s.EarningsRepo.AddCommission(date, bookingID, commission)
}

func (s *DefaultEarningsService) Summary(period string) (*models.EarningsSummary, error) {
	now := time.Now().UTC()
	var from time.Time
	switch period {
	case PeriodWeek:
		from = now.AddDate(0, 0, -7)
	case PeriodMonth:
		from = now.AddDate(0, -1, 0)
	case PeriodYear:
		from = now.AddDate(-1, 0, 0)
	default:
		return nil, apperr.Newf(apperr.Validation, "unknown summary period %q", period)
	}
	to := now.AddDate(0, 0, 1) // include today's record

	records, err := s.EarningsRepo.ListBetween(from, to)
	if err != nil {
		return nil, err
	}
	return BuildSummary(period, from, now, records), nil
}

// BuildSummary folds ledger records into period buckets: daily keys for week
// and month windows, monthly keys for the year window. Keys sort ascending.
func BuildSummary(period string, from, to time.Time, records []models.EarningsRecord) *models.EarningsSummary {
	keyFormat := "2006-01-02"
	if period == PeriodYear {
		keyFormat = "2006-01"
	}

	byKey := map[string]*models.EarningsBucket{}
	summary := &models.EarningsSummary{Period: period, From: from, To: to}
	for _, r := range records {
		key := r.Date.UTC().Format(keyFormat)
		bucket, ok := byKey[key]
		if !ok {
			bucket = &models.EarningsBucket{Key: key}
			byKey[key] = bucket
		}
		bucket.Commission += r.TotalCommissionEarned
		bucket.Bookings += r.TotalBookings
		summary.TotalCommission += r.TotalCommissionEarned
		summary.TotalBookings += r.TotalBookings
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	summary.Buckets = make([]models.EarningsBucket, 0, len(keys))
	for _, k := range keys {
		summary.Buckets = append(summary.Buckets, *byKey[k])
	}
	return summary
}

func (s *DefaultEarningsService) List(from, to time.Time, page, limit int) (*ListResult, error) {
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return nil, apperr.New(apperr.Validation, "the end of the date range is before its start")
	}
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = utils.DefaultPageSize
	}
	records, total, err := s.EarningsRepo.List(from, to, page, limit)
	if err != nil {
		return nil, err
	}

	result := &ListResult{
		Records:    records,
		Pagination: models.NewPagination(total, page, limit),
	}
	for _, r := range records {
		result.TotalCommission += r.TotalCommissionEarned
		result.TotalBookings += r.TotalBookings
	}
	return result, nil
}

func (s *DefaultEarningsService) UpdateNotes(id, notes string) (*models.EarningsRecord, error) {
	record, err := s.EarningsRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, apperr.Newf(apperr.NotFound, "earnings record %s not found", id)
	}

	update := bson.M{"$set": bson.M{"notes": notes, "updatedAt": time.Now().UTC()}}
	if err := s.EarningsRepo.UpdateWithDocument(id, update); err != nil {
		return nil, err
	}
	record.Notes = notes
	return record, nil
}

func (s *DefaultEarningsService) RunRollup() (int, error) {
	bookings, err := s.BookingRepo.ListCompletedUnpaid(0)
	if err != nil {
		return 0, err
	}

	processed := 0
	for _, b := range bookings {
		if err := s.EarningsRepo.AddCommission(b.UpdatedAt, b.ID, b.CommissionAmount); err != nil {
			utils.GetLogger().Error("Failed to record booking commission",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}

		update := bson.M{"$set": bson.M{"commissionPaid": true, "updatedAt": time.Now().UTC()}}
		if err := s.BookingRepo.UpdateWithDocument(b.ID, update); err != nil {
			utils.GetLogger().Error("Failed to mark booking commission as paid",
				zap.String("bookingId", b.ID), zap.Error(err))
			continue
		}

		providerUpdate := bson.M{"$inc": bson.M{
			"totalEarnings":       b.ProviderEarning,
			"totalCommissionPaid": b.CommissionAmount,
		}}
		if err := s.ProviderRepo.UpdateWithDocument(b.ProviderID, providerUpdate); err != nil {
			utils.GetLogger().Error("Failed to update provider earnings totals",
				zap.String("providerId", b.ProviderID), zap.Error(err))
		}
		processed++
	}
	return processed, nil
}
