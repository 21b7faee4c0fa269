// File: database/repository/poll/poll_sqlite.go
package pollRepo

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"slotpoll/models"
)

type sqlitePollRepo struct {
	db *sql.DB
}

// NewSQLitePollRepo opens (or creates) a SQLite-backed PollRepository and
// runs migrations.
func NewSQLitePollRepo(path string) (PollRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	r := &sqlitePollRepo{db: db}
	if err := r.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}
	return r, nil
}

func (r *sqlitePollRepo) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS polls (
			id                TEXT PRIMARY KEY,
			title             TEXT NOT NULL,
			duration_minutes  INTEGER NOT NULL,
			date_range_start  DATE NOT NULL,
			date_range_end    DATE NOT NULL,
			status            TEXT DEFAULT 'open' CHECK(status IN ('open', 'finalized')),
			finalized_slot_id TEXT,
			creator_id        TEXT NOT NULL,
			admin_key_hash    TEXT NOT NULL,
			created_at        DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS slots (
			id      TEXT PRIMARY KEY,
			poll_id TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			day     DATE NOT NULL,
			start_minute INTEGER NOT NULL,
			end_minute   INTEGER NOT NULL
		);

		CREATE TABLE IF NOT EXISTS responses (
			poll_id        TEXT NOT NULL REFERENCES polls(id) ON DELETE CASCADE,
			slot_id        TEXT NOT NULL,
			participant_id TEXT NOT NULL,
			availability   TEXT NOT NULL CHECK(availability IN ('yes', 'maybe', 'no')),
			PRIMARY KEY (poll_id, slot_id, participant_id)
		);

		CREATE INDEX IF NOT EXISTS idx_slots_poll ON slots(poll_id);
		CREATE INDEX IF NOT EXISTS idx_polls_creator ON polls(creator_id);
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}
	return nil
}

func (r *sqlitePollRepo) CreatePollWithSlots(ctx context.Context, poll *models.Poll, slots []models.TimeSlot) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	// Slot generation must execute at most once per poll.
	var existing int
	err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM slots WHERE poll_id = ?`, poll.ID).Scan(&existing)
	if err != nil {
		return fmt.Errorf("checking existing slots: %w", err)
	}
	if existing > 0 {
		return nil
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO polls (id, title, duration_minutes, date_range_start, date_range_end,
			status, finalized_slot_id, creator_id, admin_key_hash, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		poll.ID,
		poll.Title,
		poll.DurationMinutes,
		poll.DateRangeStart,
		poll.DateRangeEnd,
		poll.Status,
		nullIfEmpty(poll.FinalizedSlotID),
		poll.CreatorID,
		poll.AdminKeyHash,
		poll.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting poll: %w", err)
	}

	for _, slot := range slots {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO slots (id, poll_id, day, start_minute, end_minute) VALUES (?, ?, ?, ?, ?)
		`, slot.ID, poll.ID, slot.Day, slot.Start, slot.End)
		if err != nil {
			return fmt.Errorf("inserting slot: %w", err)
		}
	}

	return tx.Commit()
}

func (r *sqlitePollRepo) GetPoll(ctx context.Context, pollID string) (*models.Poll, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, title, duration_minutes, date_range_start, date_range_end,
			status, COALESCE(finalized_slot_id, ''), creator_id, admin_key_hash, created_at
		FROM polls WHERE id = ?
	`, pollID)

	var poll models.Poll
	var createdAt string
	err := row.Scan(
		&poll.ID,
		&poll.Title,
		&poll.DurationMinutes,
		&poll.DateRangeStart,
		&poll.DateRangeEnd,
		&poll.Status,
		&poll.FinalizedSlotID,
		&poll.CreatorID,
		&poll.AdminKeyHash,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrPollNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scanning poll: %w", err)
	}
	if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
		poll.CreatedAt = t
	}
	return &poll, nil
}

func (r *sqlitePollRepo) GetSlots(ctx context.Context, pollID string) ([]models.TimeSlot, error) {
	if _, err := r.GetPoll(ctx, pollID); err != nil {
		return nil, err
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, poll_id, day, start_minute, end_minute FROM slots
		WHERE poll_id = ? ORDER BY day, start_minute
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("querying slots: %w", err)
	}
	defer rows.Close()

	var slots []models.TimeSlot
	for rows.Next() {
		var slot models.TimeSlot
		if err := rows.Scan(&slot.ID, &slot.PollID, &slot.Day, &slot.Start, &slot.End); err != nil {
			return nil, fmt.Errorf("scanning slot: %w", err)
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

func (r *sqlitePollRepo) GetResponses(ctx context.Context, pollID string) ([]models.Response, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT poll_id, slot_id, participant_id, availability FROM responses WHERE poll_id = ?
	`, pollID)
	if err != nil {
		return nil, fmt.Errorf("querying responses: %w", err)
	}
	defer rows.Close()

	var responses []models.Response
	for rows.Next() {
		var resp models.Response
		if err := rows.Scan(&resp.PollID, &resp.SlotID, &resp.ParticipantID, &resp.Availability); err != nil {
			return nil, fmt.Errorf("scanning response: %w", err)
		}
		responses = append(responses, resp)
	}
	return responses, rows.Err()
}

func (r *sqlitePollRepo) UpsertResponse(ctx context.Context, resp models.Response) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO responses (poll_id, slot_id, participant_id, availability)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (poll_id, slot_id, participant_id)
		DO UPDATE SET availability = excluded.availability
	`, resp.PollID, resp.SlotID, resp.ParticipantID, resp.Availability)
	if err != nil {
		return fmt.Errorf("upserting response: %w", err)
	}
	return nil
}

func (r *sqlitePollRepo) FinalizePoll(ctx context.Context, pollID, slotID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE polls SET status = 'finalized', finalized_slot_id = ?
		WHERE id = ? AND (status = 'open' OR finalized_slot_id = ?)
	`, slotID, pollID, slotID)
	if err != nil {
		return fmt.Errorf("finalizing poll: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if affected == 0 {
		var exists int
		if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM polls WHERE id = ?`, pollID).Scan(&exists); err != nil {
			return fmt.Errorf("checking poll existence: %w", err)
		}
		if exists == 0 {
			return ErrPollNotFound
		}
		return ErrFinalizeConflict
	}
	return nil
}

func (r *sqlitePollRepo) DeletePoll(ctx context.Context, pollID string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `DELETE FROM polls WHERE id = ?`, pollID)
	if err != nil {
		return fmt.Errorf("deleting poll: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("getting affected rows: %w", err)
	}
	if affected == 0 {
		return ErrPollNotFound
	}

	// Foreign keys may be off; cascade by hand.
	if _, err := tx.ExecContext(ctx, `DELETE FROM slots WHERE poll_id = ?`, pollID); err != nil {
		return fmt.Errorf("deleting slots: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM responses WHERE poll_id = ?`, pollID); err != nil {
		return fmt.Errorf("deleting responses: %w", err)
	}
	return tx.Commit()
}

func (r *sqlitePollRepo) ListPollsByCreator(ctx context.Context, creatorID string) ([]models.Poll, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, duration_minutes, date_range_start, date_range_end,
			status, COALESCE(finalized_slot_id, ''), creator_id, admin_key_hash, created_at
		FROM polls WHERE creator_id = ? ORDER BY created_at DESC
	`, creatorID)
	if err != nil {
		return nil, fmt.Errorf("querying polls: %w", err)
	}
	defer rows.Close()

	var polls []models.Poll
	for rows.Next() {
		var poll models.Poll
		var createdAt string
		err := rows.Scan(
			&poll.ID,
			&poll.Title,
			&poll.DurationMinutes,
			&poll.DateRangeStart,
			&poll.DateRangeEnd,
			&poll.Status,
			&poll.FinalizedSlotID,
			&poll.CreatorID,
			&poll.AdminKeyHash,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning poll: %w", err)
		}
		if t, err := time.Parse(time.RFC3339, createdAt); err == nil {
			poll.CreatedAt = t
		}
		polls = append(polls, poll)
	}
	return polls, rows.Err()
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
