package adapters

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"

	"facegen-baseline/internal/ports"
	"facegen-baseline/internal/types"
)

const patchSchema = `
CREATE TABLE IF NOT EXISTS patch_meta (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS npc_overrides (
  form_key  TEXT PRIMARY KEY,
  editor_id TEXT NOT NULL DEFAULT '',
  payload   TEXT NOT NULL
);`

// PatchSQLiteAdapter persists the patch plugin in a SQLite database.
// Overrides are upserted by form key.
type PatchSQLiteAdapter struct {
	Path string
}

func NewPatchSQLiteAdapter(path string) PatchSQLiteAdapter {
	return PatchSQLiteAdapter{Path: path}
}

func (a PatchSQLiteAdapter) WritePatch(ctx context.Context, mod *types.Mod) error {
	if mod == nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patch mod is nil")
	}
	if strings.TrimSpace(a.Path) != "" {
		if err := os.MkdirAll(filepath.Dir(a.Path), 0755); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to create patch directory").
				WithCause(err)
		}
	}
	db, err := a.open(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return sqliteError("begin patch transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	masters := make([]string, 0, len(mod.Masters))
	for _, master := range mod.Masters {
		masters = append(masters, string(master))
	}
	meta := map[string]string{
		"mod_key": string(mod.ModKey),
		"masters": strings.Join(masters, ","),
	}
	for key, value := range meta {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO patch_meta (key, value) VALUES (?, ?)
			 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
			key, value,
		); err != nil {
			return sqliteError("write patch meta", err)
		}
	}
	// the patch replaces whatever an earlier run stored
	if _, err := tx.ExecContext(ctx, `DELETE FROM npc_overrides`); err != nil {
		return sqliteError("clear overrides", err)
	}
	for _, npc := range mod.Npcs {
		if npc == nil {
			continue
		}
		payload, err := yaml.Marshal(npc)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to encode override").
				WithCause(err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO npc_overrides (form_key, editor_id, payload) VALUES (?, ?, ?)
			 ON CONFLICT(form_key) DO UPDATE SET editor_id = excluded.editor_id, payload = excluded.payload`,
			npc.FormKey.String(), npc.EditorID, string(payload),
		); err != nil {
			return sqliteError("write override", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return sqliteError("commit patch transaction", err)
	}
	return nil
}

func (a PatchSQLiteAdapter) ReadPatch(path string) (*types.Mod, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("patch database not found").
			WithCause(err)
	}
	ctx := context.Background()
	db, err := NewPatchSQLiteAdapter(path).open(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	mod := &types.Mod{}
	rows, err := db.QueryContext(ctx, `SELECT key, value FROM patch_meta`)
	if err != nil {
		return nil, sqliteError("read patch meta", err)
	}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			_ = rows.Close()
			return nil, sqliteError("scan patch meta", err)
		}
		switch key {
		case "mod_key":
			mod.ModKey = types.ModKey(value)
		case "masters":
			for _, master := range strings.Split(value, ",") {
				if strings.TrimSpace(master) != "" {
					mod.Masters = append(mod.Masters, types.ModKey(master))
				}
			}
		}
	}
	_ = rows.Close()

	rows, err = db.QueryContext(ctx, `SELECT payload FROM npc_overrides ORDER BY form_key`)
	if err != nil {
		return nil, sqliteError("read overrides", err)
	}
	defer rows.Close()
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, sqliteError("scan override", err)
		}
		var npc types.Npc
		if err := yaml.Unmarshal([]byte(payload), &npc); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to decode override").
				WithCause(err)
		}
		mod.Npcs = append(mod.Npcs, &npc)
	}
	if err := rows.Err(); err != nil {
		return nil, sqliteError("iterate overrides", err)
	}
	return mod, nil
}

func (a PatchSQLiteAdapter) open(ctx context.Context) (*sql.DB, error) {
	if strings.TrimSpace(a.Path) == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("patch database path is empty")
	}
	db, err := sql.Open("sqlite", filepath.Clean(a.Path)+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, sqliteError("open patch database", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, sqliteError("ping patch database", err)
	}
	if _, err := db.ExecContext(ctx, patchSchema); err != nil {
		_ = db.Close()
		return nil, sqliteError("apply patch schema", err)
	}
	return db, nil
}

func sqliteError(action string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to " + action).
		WithCause(err)
}

var _ ports.PatchWriterPort = PatchSQLiteAdapter{}
var _ ports.PatchReaderPort = PatchSQLiteAdapter{}
