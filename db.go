package blockcard

import (
	"crypto/sha1"
	"database/sql"
	"fmt"
	"time"

	"github.com/bodgit/blockcard/frame"
	"github.com/bodgit/blockcard/sheet"
	_ "github.com/mattn/go-sqlite3"
)

// AssetDB stores encoded animations in a SQLite database. Frames shared
// between animations are stored once.
type AssetDB struct {
	db *sql.DB
}

func NewAssetDB(file string) (*AssetDB, error) {
	db, err := sql.Open("sqlite3", fmt.Sprintf("%s?_foreign_keys=on", file))
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS frame (id INTEGER PRIMARY KEY NOT NULL, sha1 TEXT NOT NULL UNIQUE, data BLOB NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS animation (id INTEGER PRIMARY KEY NOT NULL, name TEXT NOT NULL UNIQUE, delay INTEGER NOT NULL)"); err != nil {
		return nil, err
	}

	if _, err = db.Exec("CREATE TABLE IF NOT EXISTS animation_frame (animation_id INTEGER NOT NULL, position INTEGER NOT NULL, frame_id INTEGER NOT NULL, PRIMARY KEY(animation_id, position), FOREIGN KEY(animation_id) REFERENCES animation(id) ON DELETE CASCADE, FOREIGN KEY(frame_id) REFERENCES frame(id))"); err != nil {
		return nil, err
	}

	return &AssetDB{
		db: db,
	}, nil
}

func (db *AssetDB) Close() error {
	return db.db.Close()
}

// ImportSheet stores the frames of s under name, replacing any animation
// with the same name. Every frame must decode.
func (db *AssetDB) ImportSheet(name string, s *sheet.Sheet) error {
	for i, f := range s.Frames {
		if _, err := frame.Decode(f); err != nil {
			return fmt.Errorf("frame %d: %w", i, err)
		}
	}

	tx, err := db.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err = tx.Exec("DELETE FROM animation WHERE name = ?", name); err != nil {
		return err
	}

	result, err := tx.Exec("INSERT INTO animation (name, delay) VALUES (?, ?)", name, s.Delay.Milliseconds())
	if err != nil {
		return err
	}
	animation, err := result.LastInsertId()
	if err != nil {
		return err
	}

	for i, f := range s.Frames {
		id, err := addFrame(tx, f)
		if err != nil {
			return err
		}
		if _, err = tx.Exec("INSERT INTO animation_frame (animation_id, position, frame_id) VALUES (?, ?, ?)", animation, i, id); err != nil {
			return err
		}
	}

	if _, err = tx.Exec("DELETE FROM frame WHERE id NOT IN (SELECT frame_id FROM animation_frame)"); err != nil {
		return err
	}

	return tx.Commit()
}

func addFrame(tx *sql.Tx, b []byte) (int64, error) {
	sha := fmt.Sprintf("%X", sha1.Sum(b))

	var id int64
	switch err := tx.QueryRow("SELECT id FROM frame WHERE sha1 = ?", sha).Scan(&id); err {
	case sql.ErrNoRows:
		result, err := tx.Exec("INSERT INTO frame (sha1, data) VALUES (?, ?)", sha, compress(b))
		if err != nil {
			return 0, err
		}
		return result.LastInsertId()
	case nil:
		return id, nil
	default:
		return 0, err
	}
}

// Sheet returns the named animation, or nil if it doesn't exist.
func (db *AssetDB) Sheet(name string) (*sheet.Sheet, error) {
	var id, delay int64
	switch err := db.db.QueryRow("SELECT id, delay FROM animation WHERE name = ?", name).Scan(&id, &delay); err {
	case sql.ErrNoRows:
		return nil, nil
	case nil:
	default:
		return nil, err
	}

	rows, err := db.db.Query("SELECT f.data FROM animation_frame AS af JOIN frame AS f ON af.frame_id = f.id WHERE af.animation_id = ? ORDER BY af.position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	s := sheet.New(time.Duration(delay) * time.Millisecond)
	for rows.Next() {
		var data []byte
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		b, err := decompress(data)
		if err != nil {
			return nil, err
		}
		s.Add(b)
	}

	return s, rows.Err()
}

// Animations returns the names of all stored animations.
func (db *AssetDB) Animations() ([]string, error) {
	rows, err := db.db.Query("SELECT name FROM animation ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}

	return names, rows.Err()
}
