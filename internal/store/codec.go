package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/raygarage/garage/internal/model"
)

// stateKey is the well-known key the whole vehicle collection lives under.
const stateKey = "garage.vehicles"

// garageState is the shape of the persisted blob: the entire collection,
// nested records and attachments included. There is no version field; a
// blob that no longer decodes is treated the same as no saved data.
type garageState struct {
	Vehicles []model.Vehicle `json:"vehicles"`
}

// loadVehicles reads and decodes the stored collection. ok is false when no
// blob exists or the blob fails to decode; both mean "nothing saved". err
// reports only real database failures.
func (s *Store) loadVehicles() (vehicles []model.Vehicle, ok bool, err error) {
	var data []byte
	row := s.db.QueryRow(`SELECT data FROM garage_state WHERE key = ?`, stateKey)
	if err := row.Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	var state garageState
	if err := json.Unmarshal(data, &state); err != nil {
		// Corrupt or incompatible blob: same as nothing saved.
		return nil, false, nil
	}
	return state.Vehicles, true, nil
}

// saveVehicles serializes the full collection and overwrites the stored
// blob. There are no incremental or partial writes.
func (s *Store) saveVehicles(vehicles []model.Vehicle) error {
	data, err := json.Marshal(garageState{Vehicles: vehicles})
	if err != nil {
		return err
	}
	_, err = s.db.Exec(`
		INSERT INTO garage_state (key, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at
	`, stateKey, data, time.Now().UTC().Format(time.RFC3339))
	return err
}
