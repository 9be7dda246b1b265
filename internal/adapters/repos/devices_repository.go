package repos

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/architeacher/device-registry/internal/domain/model"
	"github.com/architeacher/device-registry/pkg/logger"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const devicesTable = "devices"

var (
	psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	deviceColumns = []string{"id", "name", "brand", "state", "creation_time"}
)

type (
	// PoolOps defines the interface for database operations.
	// This allows injecting mock implementations for testing.
	PoolOps interface {
		QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
		Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
		Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
		Ping(ctx context.Context) error
	}

	// DevicesRepository handles device persistence operations.
	DevicesRepository struct {
		pool    PoolOps
		scanner Scanner
		logger  logger.Logger
	}

	deviceRow struct {
		ID           int64     `db:"id"`
		Name         string    `db:"name"`
		Brand        string    `db:"brand"`
		State        string    `db:"state"`
		CreationTime time.Time `db:"creation_time"`
	}
)

// NewDevicesRepository creates a new DevicesRepository with the given dependencies.
func NewDevicesRepository(pool PoolOps, scanner Scanner, log logger.Logger) *DevicesRepository {
	return &DevicesRepository{
		pool:    pool,
		scanner: scanner,
		logger:  log,
	}
}

// Create inserts the device and fills in its database-assigned ID.
// creation_time is written once here and never touched by Update.
func (r *DevicesRepository) Create(ctx context.Context, device *model.Device) error {
	query, args, err := psql.Insert(devicesTable).
		Columns("name", "brand", "state", "creation_time").
		Values(
			device.Name,
			device.Brand,
			device.State.String(),
			device.CreationTime,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert query: %w", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	device.ID = model.DeviceID(id)

	return nil
}

func (r *DevicesRepository) FindByID(ctx context.Context, id model.DeviceID) (*model.Device, error) {
	query, args, err := psql.Select(deviceColumns...).
		From(devicesTable).
		Where(sq.Eq{"id": int64(id)}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var row deviceRow
	if err := r.scanner.ScanOne(&row, rows); err != nil {
		if r.scanner.IsNotFound(err) {
			return nil, model.DeviceNotFoundError{ID: id}
		}

		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	return convertRowToDevice(row)
}

func (r *DevicesRepository) FindByBrand(ctx context.Context, brand string) ([]*model.Device, error) {
	return r.queryDevices(ctx, psql.Select(deviceColumns...).
		From(devicesTable).
		Where(sq.Expr("LOWER(brand) = LOWER(?)", brand)).
		OrderBy("id"))
}

func (r *DevicesRepository) FindByState(ctx context.Context, state model.State) ([]*model.Device, error) {
	return r.queryDevices(ctx, psql.Select(deviceColumns...).
		From(devicesTable).
		Where(sq.Eq{"state": state.String()}).
		OrderBy("id"))
}

func (r *DevicesRepository) FindAll(ctx context.Context) ([]*model.Device, error) {
	return r.queryDevices(ctx, psql.Select(deviceColumns...).
		From(devicesTable).
		OrderBy("id"))
}

func (r *DevicesRepository) Update(ctx context.Context, device *model.Device) error {
	query, args, err := psql.Update(devicesTable).
		Set("name", device.Name).
		Set("brand", device.Brand).
		Set("state", device.State.String()).
		Where(sq.Eq{"id": int64(device.ID)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build update query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	if result.RowsAffected() == 0 {
		return model.DeviceNotFoundError{ID: device.ID}
	}

	return nil
}

func (r *DevicesRepository) Delete(ctx context.Context, id model.DeviceID) error {
	query, args, err := psql.Delete(devicesTable).
		Where(sq.Eq{"id": int64(id)}).
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build delete query: %w", err)
	}

	result, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	if result.RowsAffected() == 0 {
		return model.DeviceNotFoundError{ID: id}
	}

	return nil
}

func (r *DevicesRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *DevicesRepository) queryDevices(ctx context.Context, builder sq.SelectBuilder) ([]*model.Device, error) {
	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build select query: %w", err)
	}

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}
	defer rows.Close()

	var deviceRows []deviceRow
	if err := r.scanner.ScanAll(&deviceRows, rows); err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrDatabaseQuery, err)
	}

	devices := make([]*model.Device, 0, len(deviceRows))
	for index := range deviceRows {
		device, err := convertRowToDevice(deviceRows[index])
		if err != nil {
			return nil, err
		}

		devices = append(devices, device)
	}

	return devices, nil
}

func convertRowToDevice(row deviceRow) (*model.Device, error) {
	state, err := model.ParseState(row.State)
	if err != nil {
		return nil, fmt.Errorf("failed to parse device state: %w", err)
	}

	return &model.Device{
		ID:           model.DeviceID(row.ID),
		Name:         row.Name,
		Brand:        row.Brand,
		State:        state,
		CreationTime: row.CreationTime,
	}, nil
}
