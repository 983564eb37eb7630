package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"humanizepro/internal/domain"
)

// Upsert writes the whole project row, versions embedded as JSONB by value.
func (db *DB) Upsert(ctx context.Context, p domain.Project) error {
	flags, err := json.Marshal(p.Flags)
	if err != nil {
		return fmt.Errorf("marshal flags: %w", err)
	}
	versions, err := json.Marshal(p.Versions)
	if err != nil {
		return fmt.Errorf("marshal versions: %w", err)
	}
	_, err = db.Pool.Exec(ctx, `
        INSERT INTO projects (id, title, input_text, output_text, language, tone, intensity, flags, versions, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        ON CONFLICT (id) DO UPDATE SET
            title = EXCLUDED.title,
            input_text = EXCLUDED.input_text,
            output_text = EXCLUDED.output_text,
            language = EXCLUDED.language,
            tone = EXCLUDED.tone,
            intensity = EXCLUDED.intensity,
            flags = EXCLUDED.flags,
            versions = EXCLUDED.versions,
            updated_at = EXCLUDED.updated_at
    `, p.ID, p.Title, p.InputText, p.OutputText, p.Language, string(p.Tone), p.Intensity, flags, versions, p.CreatedAt, p.UpdatedAt)
	return err
}

// Remove deletes the project row. Deleting an absent row is not an error:
// the sync queue may deliver a delete after a failed upsert.
func (db *DB) Remove(ctx context.Context, id string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

// List returns all persisted projects, newest first, for rehydrating the
// in-memory collection at startup.
func (db *DB) List(ctx context.Context) ([]domain.Project, error) {
	rows, err := db.Pool.Query(ctx, `
        SELECT id, title, input_text, output_text, language, tone, intensity, flags, versions, created_at, updated_at
        FROM projects
        ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Project
	for rows.Next() {
		var p domain.Project
		var tone string
		var flags, versions []byte
		if err := rows.Scan(&p.ID, &p.Title, &p.InputText, &p.OutputText, &p.Language, &tone, &p.Intensity, &flags, &versions, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Tone = domain.ParseTone(tone)
		if err := json.Unmarshal(flags, &p.Flags); err != nil {
			return nil, fmt.Errorf("unmarshal flags for %s: %w", p.ID, err)
		}
		if err := json.Unmarshal(versions, &p.Versions); err != nil {
			return nil, fmt.Errorf("unmarshal versions for %s: %w", p.ID, err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
