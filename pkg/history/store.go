package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"galaxypoker-server/pkg/holdem"
)

// Store persists completed hands for audit and review
type Store struct {
	db *sql.DB
}

// New returns a store backed by the provided database
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// HandRecord is a persisted hand
type HandRecord struct {
	ID        int64           `json:"id"`
	TableUUID string          `json:"tableUuid"`
	HandUUID  string          `json:"handUuid"`
	WonByFold bool            `json:"wonByFold"`
	Pot       int             `json:"pot"`
	Result    json.RawMessage `json:"result"`
	ActionLog json.RawMessage `json:"actionLog"`
	Created   time.Time       `json:"created"`
}

// SaveHand records a completed hand along with its full audit trail
func (s *Store) SaveHand(ctx context.Context, tableUUID string, result *holdem.GameResult, log []*holdem.LogEntry) error {
	resultJSON, err := json.Marshal(result)
	if err != nil {
		return err
	}

	logJSON, err := json.Marshal(log)
	if err != nil {
		return err
	}

	const query = `
INSERT INTO hands (table_uuid, hand_uuid, won_by_fold, pot, result, action_log)
VALUES ($1, $2, $3, $4, $5, $6)`

	_, err = s.db.ExecContext(ctx, query, tableUUID, result.HandID, result.WonByFold, result.TotalPaid(), resultJSON, logJSON)
	return err
}

// GetHands returns the hands played at a table, most recent first
func (s *Store) GetHands(ctx context.Context, tableUUID string, offset int64, limit int) ([]*HandRecord, error) {
	const query = `
SELECT id, table_uuid, hand_uuid, won_by_fold, pot, result, action_log, created
FROM hands
WHERE table_uuid = $1
ORDER BY id DESC
OFFSET $2 LIMIT $3`

	rows, err := s.db.QueryContext(ctx, query, tableUUID, offset, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]*HandRecord, 0)
	for rows.Next() {
		var record HandRecord
		if err := rows.Scan(&record.ID, &record.TableUUID, &record.HandUUID, &record.WonByFold,
			&record.Pot, &record.Result, &record.ActionLog, &record.Created); err != nil {
			return nil, err
		}

		records = append(records, &record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}

// GetHand returns a single hand by its UUID
func (s *Store) GetHand(ctx context.Context, handUUID string) (*HandRecord, error) {
	const query = `
SELECT id, table_uuid, hand_uuid, won_by_fold, pot, result, action_log, created
FROM hands
WHERE hand_uuid = $1`

	var record HandRecord
	row := s.db.QueryRowContext(ctx, query, handUUID)
	if err := row.Scan(&record.ID, &record.TableUUID, &record.HandUUID, &record.WonByFold,
		&record.Pot, &record.Result, &record.ActionLog, &record.Created); err != nil {
		return nil, err
	}

	return &record, nil
}
