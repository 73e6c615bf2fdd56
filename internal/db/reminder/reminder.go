package reminder

import (
	c "beatwatch/internal/core/domain/common"
	e "beatwatch/internal/core/domain/errors"
	"beatwatch/internal/core/domain/logging"
	"beatwatch/internal/core/domain/reminder"
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4/pgxpool"
)

const (
	changeChannel = "reminder_events"

	pgUniqueConstraintErrCode = "23505"
)

// PgxEventStore keeps the reminder list in Postgres. Save replaces the whole
// list inside one transaction and raises a NOTIFY, so every process sharing
// the database observes the change through Watch.
type PgxEventStore struct {
	pool *pgxpool.Pool
	log  logging.Logger
}

func NewPgxEventStore(pool *pgxpool.Pool, log logging.Logger) *PgxEventStore {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	return &PgxEventStore{pool: pool, log: log}
}

func (s *PgxEventStore) Load(ctx context.Context) ([]reminder.Event, error) {
	rows, err := s.pool.Query(
		ctx,
		`SELECT id, title, description, mode, start_date, start_time,
		        swatch_time, reminder_time, dismissed, created_at
		 FROM reminder_event
		 ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]reminder.Event, 0)
	for rows.Next() {
		var (
			ev           reminder.Event
			mode         string
			swatchTime   sql.NullFloat64
			reminderTime sql.NullTime
		)
		err := rows.Scan(
			&ev.ID,
			&ev.Title,
			&ev.Description,
			&mode,
			&ev.StartDate,
			&ev.StartTime,
			&swatchTime,
			&reminderTime,
			&ev.Dismissed,
			&ev.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		ev.Mode, err = reminder.ParseMode(mode)
		if err != nil {
			return nil, err
		}
		ev.SwatchTime = c.NewOptional(swatchTime.Float64, swatchTime.Valid)
		ev.ReminderTime = c.NewOptional(reminderTime.Time, reminderTime.Valid)
		events = append(events, ev)
	}
	return events, rows.Err()
}

func (s *PgxEventStore) Save(ctx context.Context, events []reminder.Event) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM reminder_event`); err != nil {
		return err
	}
	for _, ev := range events {
		_, err := tx.Exec(
			ctx,
			`INSERT INTO reminder_event
			    (id, title, description, mode, start_date, start_time,
			     swatch_time, reminder_time, dismissed, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			int64(ev.ID),
			ev.Title,
			ev.Description,
			ev.Mode.String(),
			ev.StartDate,
			ev.StartTime,
			sql.NullFloat64{Float64: ev.SwatchTime.Value, Valid: ev.SwatchTime.IsPresent},
			sql.NullTime{Time: ev.ReminderTime.Value, Valid: ev.ReminderTime.IsPresent},
			ev.Dismissed,
			ev.CreatedAt,
		)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueConstraintErrCode {
			return e.NewInvalidStateError("duplicate reminder event ID")
		}
		if err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `SELECT pg_notify($1, '')`, changeChannel); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// Watch holds a dedicated connection on LISTEN and signals once per
// notification. Signals are coalesced: a receiver that is still busy
// reloading misses nothing because it reloads the full list anyway.
func (s *PgxEventStore) Watch(ctx context.Context) (<-chan struct{}, error) {
	conn, err := s.pool.Acquire(ctx)
	if err != nil {
		return nil, err
	}
	if _, err := conn.Exec(ctx, `LISTEN `+changeChannel); err != nil {
		conn.Release()
		return nil, err
	}

	changes := make(chan struct{}, 1)
	go func() {
		defer conn.Release()
		defer close(changes)
		for {
			if _, err := conn.Conn().WaitForNotification(ctx); err != nil {
				if ctx.Err() == nil {
					logging.Error(ctx, s.log, err)
				}
				return
			}
			select {
			case changes <- struct{}{}:
			default:
			}
		}
	}()
	return changes, nil
}
