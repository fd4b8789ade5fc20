package storage

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/schema"

	"ticket-booking/internal/config"
	"ticket-booking/internal/logger"
	"ticket-booking/internal/models"
)

// SQLStore keeps bookings in MySQL or SQLite through bun.
type SQLStore struct {
	db     *bun.DB
	log    *logger.Logger
	driver string
	// dateOrder sorts by the raw bytes of the date column, independent of
	// the column collation.
	dateOrder string
}

func NewSQLStore(cfg config.DatabaseConfig, log *logger.Logger) (*SQLStore, error) {
	var (
		dialect   schema.Dialect
		dateOrder string
	)
	switch cfg.Driver {
	case "mysql":
		dialect = mysqldialect.New()
		dateOrder = "CAST(`date` AS BINARY) DESC"
	case "sqlite3", "sqlite":
		cfg.Driver = "sqlite3"
		dialect = sqlitedialect.New()
		dateOrder = `"date" DESC`
	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}

	log.LogDatabase("CONNECT", cfg.Driver, "Opening booking store")

	sqldb, err := sql.Open(cfg.Driver, cfg.URL)
	if err != nil {
		log.Error("DATABASE", "Failed to open connection: "+err.Error())
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqldb.SetMaxOpenConns(cfg.MaxOpenConns)
	sqldb.SetMaxIdleConns(cfg.MaxIdleConns)
	sqldb.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := sqldb.Ping(); err != nil {
		log.Error("DATABASE", "Failed to ping database: "+err.Error())
		_ = sqldb.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &SQLStore{
		db:        bun.NewDB(sqldb, dialect),
		log:       log,
		driver:    cfg.Driver,
		dateOrder: dateOrder,
	}

	if err := store.initTables(context.Background()); err != nil {
		log.Error("DATABASE", "Failed to initialize tables: "+err.Error())
		_ = store.db.Close()
		return nil, fmt.Errorf("failed to initialize tables: %w", err)
	}

	log.LogDatabase("SUCCESS", cfg.Driver, "Connection established and tables initialized")
	return store, nil
}

func (s *SQLStore) initTables(ctx context.Context) error {
	s.log.LogDatabase("MIGRATE", s.driver, "Creating bookings table if not exists")

	_, err := s.db.NewCreateTable().
		Model((*models.Booking)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create bookings table: %w", err)
	}

	s.log.LogDatabase("SUCCESS", s.driver, "Bookings table ready")
	return nil
}

func (s *SQLStore) SaveBooking(ctx context.Context, booking *models.Booking) error {
	if err := booking.Validate(); err != nil {
		s.log.Warn("DATABASE", fmt.Sprintf("Rejected booking for order %s: %v", booking.OrderID, err))
		return fmt.Errorf("%w: %v", ErrInvalidRecord, err)
	}

	s.log.LogDatabase("INSERT", s.driver, fmt.Sprintf("Saving booking for order %s", booking.OrderID))

	if _, err := s.db.NewInsert().Model(booking).Exec(ctx); err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to save booking for order %s: %s", booking.OrderID, err.Error()))
		return fmt.Errorf("failed to save booking: %w", err)
	}

	s.log.LogDatabase("SUCCESS", s.driver, fmt.Sprintf("Booking %d saved for order %s", booking.ID, booking.OrderID))
	return nil
}

func (s *SQLStore) ListBookings(ctx context.Context) ([]*models.Booking, error) {
	s.log.LogDatabase("SELECT", s.driver, "Listing bookings by date")

	bookings := make([]*models.Booking, 0)
	err := s.db.NewSelect().
		Model(&bookings).
		OrderExpr(s.dateOrder).
		OrderExpr("? ASC", bun.Ident("id")).
		Scan(ctx)
	if err != nil {
		s.log.Error("DATABASE", fmt.Sprintf("Failed to list bookings: %s", err.Error()))
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	s.log.LogDatabase("SUCCESS", s.driver, fmt.Sprintf("Listed %d bookings", len(bookings)))
	return bookings, nil
}

func (s *SQLStore) HealthCheck(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *SQLStore) Close() error {
	s.log.LogDatabase("CLOSE", s.driver, "Closing connection")
	return s.db.Close()
}
