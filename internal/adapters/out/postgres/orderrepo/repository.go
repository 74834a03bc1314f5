package orderrepo

import (
	"context"
	"errors"
	"time"

	"oms/internal/core/domain/model/order"
	"oms/internal/core/ports"
	"oms/internal/pkg/errs"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// newestFirst is the ordering of every list result.
const newestFirst = "order_date DESC, order_id DESC"

// GormOrderRepository implements ports.OrderRepository using GORM.
//
// Duplicate order numbers are detected through gorm.ErrDuplicatedKey, so the
// connection must be opened with gorm.Config{TranslateError: true}.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id order.ID, aggregate any)
}

var _ ports.OrderRepository = (*GormOrderRepository)(nil)

// NewGormOrderRepository creates a new GORM order repository.
// tracker may be nil for repositories used outside a unit of work.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts a new order and assigns the generated identifier to it.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return errs.NewConflictErrorWithCause("orderNo", dto.OrderNo, err)
		}
		return err
	}

	if err := aggregate.AssignID(order.ID(dto.ID)); err != nil {
		return err
	}

	r.track(aggregate)
	return nil
}

// Update saves every mutable column of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_id = ?", dto.ID).
		Select("*").
		Omit("order_id", "order_no", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("orderId", aggregate.ID())
	}

	r.track(aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id order.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx), id)
}

// GetForUpdate retrieves an order by ID and locks its row with SELECT ... FOR UPDATE.
func (r *GormOrderRepository) GetForUpdate(ctx context.Context, id order.ID) (*order.Order, error) {
	return r.get(r.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}), id)
}

// FindByUserID retrieves all orders of a user.
func (r *GormOrderRepository) FindByUserID(ctx context.Context, userID int64) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).Where("user_id = ?", userID))
}

// FindByUserIDAndStatusIn retrieves a user's orders in any of the given statuses.
func (r *GormOrderRepository) FindByUserIDAndStatusIn(
	ctx context.Context,
	userID int64,
	statuses []order.Status,
) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Where("status IN ?", statusNames(statuses)))
}

// FindByFilters retrieves orders matching every present criterion of filter.
func (r *GormOrderRepository) FindByFilters(ctx context.Context, filter ports.OrderFilter) ([]*order.Order, error) {
	query := r.db.WithContext(ctx)

	if userID, ok := filter.UserID.Get(); ok {
		query = query.Where("user_id = ?", userID)
	}
	if securityID, ok := filter.SecurityID.Get(); ok {
		query = query.Where("security_id = ?", securityID)
	}
	if len(filter.Statuses) > 0 {
		query = query.Where("status IN ?", statusNames(filter.Statuses))
	}
	if start, ok := filter.StartDate.Get(); ok {
		query = query.Where("order_date >= ?", start)
	}
	if end, ok := filter.EndDate.Get(); ok {
		query = query.Where("order_date <= ?", end)
	}

	return r.find(query)
}

// FindExpirable retrieves active orders whose valid-until time is before now.
// Rows are locked; rows already locked by another transaction are skipped.
func (r *GormOrderRepository) FindExpirable(ctx context.Context, now time.Time) ([]*order.Order, error) {
	return r.find(r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status IN ?", statusNames(order.ActiveStatuses())).
		Where("valid_until IS NOT NULL AND valid_until < ?", now))
}

// CountPlacedBetween counts orders placed within [start, end].
func (r *GormOrderRepository) CountPlacedBetween(ctx context.Context, start time.Time, end time.Time) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("order_date BETWEEN ? AND ?", start, end).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormOrderRepository) get(query *gorm.DB, id order.ID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := query.First(&dto, "order_id = ?", int64(id)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("orderId", id)
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormOrderRepository) find(query *gorm.DB) ([]*order.Order, error) {
	var dtos []OrderDTO
	if err := query.Order(newestFirst).Find(&dtos).Error; err != nil {
		return nil, err
	}

	return toDomainList(dtos)
}

func (r *GormOrderRepository) track(aggregate *order.Order) {
	if r.tracker != nil {
		r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	}
}

func statusNames(statuses []order.Status) []string {
	names := make([]string, 0, len(statuses))
	for _, s := range statuses {
		names = append(names, s.String())
	}
	return names
}
