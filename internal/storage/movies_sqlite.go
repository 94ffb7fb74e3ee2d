package storage

import (
	"database/sql"
	"fmt"
	"strings"

	"github.com/uwuok/movie-management-system/internal/movie"
)

// selectMovieFields contains the standard field list for SELECT queries.
const selectMovieFields = `id, title, director, genre, year, rating`

// titleMatch is the WHERE clause shared by every substring operation.
// LIKE is case-insensitive for ASCII letters in SQLite.
const titleMatch = `title LIKE ? ESCAPE '\'`

// likePattern turns a raw substring into a LIKE pattern, escaping the
// LIKE metacharacters so they match literally.
func likePattern(substring string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(substring) + "%"
}

// Create validates m and inserts it, returning the assigned id.
func (d *DB) Create(m movie.Movie) (int64, error) {
	m = m.Normalize()
	if err := movie.Validate(m); err != nil {
		return 0, err
	}

	res, err := d.db.Exec(`
		INSERT INTO movies (title, director, genre, year, rating)
		VALUES (?, ?, ?, ?, ?)
	`, m.Title, m.Director, m.Genre, m.Year, m.Rating)
	if err != nil {
		return 0, &StorageError{Op: "inserting movie", Err: err}
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, &StorageError{Op: "reading inserted id", Err: err}
	}
	return id, nil
}

// CreateBatch inserts all movies in a single transaction. Every movie is
// validated before anything is written; if any insert fails the whole
// batch is rolled back.
func (d *DB) CreateBatch(movies []movie.Movie) ([]int64, error) {
	normalized := make([]movie.Movie, len(movies))
	for i, m := range movies {
		normalized[i] = m.Normalize()
		if err := movie.Validate(normalized[i]); err != nil {
			return nil, fmt.Errorf("movie %d (%s): %w", i+1, normalized[i].Title, err)
		}
	}

	ids := make([]int64, 0, len(movies))
	if len(movies) == 0 {
		return ids, nil
	}

	err := d.withTx("inserting movies", func(tx *sql.Tx) error {
		stmt, err := tx.Prepare(`
			INSERT INTO movies (title, director, genre, year, rating)
			VALUES (?, ?, ?, ?, ?)
		`)
		if err != nil {
			return &StorageError{Op: "preparing movie insert", Err: err}
		}
		defer stmt.Close()

		for _, m := range normalized {
			res, err := stmt.Exec(m.Title, m.Director, m.Genre, m.Year, m.Rating)
			if err != nil {
				return &StorageError{Op: fmt.Sprintf("inserting movie %q", m.Title), Err: err}
			}
			id, err := res.LastInsertId()
			if err != nil {
				return &StorageError{Op: "reading inserted id", Err: err}
			}
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return ids, nil
}

// FindAll returns every movie ordered by id. An empty table yields an
// empty slice.
func (d *DB) FindAll() ([]movie.Movie, error) {
	rows, err := d.db.Query(`SELECT ` + selectMovieFields + ` FROM movies ORDER BY id`)
	if err != nil {
		return nil, &StorageError{Op: "listing movies", Err: err}
	}
	defer rows.Close()

	return scanMovies(rows)
}

// FindByTitleContains returns movies whose title contains substring,
// ignoring ASCII case. An empty substring matches every movie.
func (d *DB) FindByTitleContains(substring string) ([]movie.Movie, error) {
	rows, err := d.db.Query(`
		SELECT `+selectMovieFields+`
		FROM movies
		WHERE `+titleMatch+`
		ORDER BY id
	`, likePattern(substring))
	if err != nil {
		return nil, &StorageError{Op: "searching movies", Err: err}
	}
	defer rows.Close()

	return scanMovies(rows)
}

// FindByID retrieves a movie by id. Returns nil, nil when it doesn't exist.
func (d *DB) FindByID(id int64) (*movie.Movie, error) {
	row := d.db.QueryRow(`SELECT `+selectMovieFields+` FROM movies WHERE id = ?`, id)
	m, err := scanMovie(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, &StorageError{Op: "getting movie", Err: err}
	}
	return &m, nil
}

// Titles returns the set of titles currently stored.
func (d *DB) Titles() (map[string]bool, error) {
	rows, err := d.db.Query(`SELECT title FROM movies`)
	if err != nil {
		return nil, &StorageError{Op: "listing titles", Err: err}
	}
	defer rows.Close()

	titles := make(map[string]bool)
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, &StorageError{Op: "scanning title", Err: err}
		}
		titles[title] = true
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "listing titles", Err: err}
	}
	return titles, nil
}

// Count returns the total number of movies.
func (d *DB) Count() (int, error) {
	var count int
	if err := d.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&count); err != nil {
		return 0, &StorageError{Op: "counting movies", Err: err}
	}
	return count, nil
}

// Update replaces every field except id of each movie whose title contains
// titleFilter. m must already hold the final values; nothing is merged.
// Returns the number of rows changed.
func (d *DB) Update(titleFilter string, m movie.Movie) (int64, error) {
	m = m.Normalize()
	if err := movie.Validate(m); err != nil {
		return 0, err
	}

	res, err := d.db.Exec(`
		UPDATE movies
		SET title = ?, director = ?, genre = ?, year = ?, rating = ?
		WHERE `+titleMatch,
		m.Title, m.Director, m.Genre, m.Year, m.Rating, likePattern(titleFilter))
	if err != nil {
		return 0, &StorageError{Op: "updating movies", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "reading affected rows", Err: err}
	}
	return n, nil
}

// DeleteAll removes every movie and returns how many were removed.
func (d *DB) DeleteAll() (int64, error) {
	var n int64
	err := d.withTx("deleting all movies", func(tx *sql.Tx) error {
		res, err := tx.Exec(`DELETE FROM movies`)
		if err != nil {
			return &StorageError{Op: "deleting all movies", Err: err}
		}
		n, err = res.RowsAffected()
		if err != nil {
			return &StorageError{Op: "reading affected rows", Err: err}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return n, nil
}

// DeleteByTitleContains removes movies whose title contains substring.
func (d *DB) DeleteByTitleContains(substring string) (int64, error) {
	res, err := d.db.Exec(`DELETE FROM movies WHERE `+titleMatch, likePattern(substring))
	if err != nil {
		return 0, &StorageError{Op: "deleting movies", Err: err}
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, &StorageError{Op: "reading affected rows", Err: err}
	}
	return n, nil
}

// scanner interface for sql.Row and sql.Rows
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanMovie(s scanner) (movie.Movie, error) {
	var m movie.Movie
	err := s.Scan(&m.ID, &m.Title, &m.Director, &m.Genre, &m.Year, &m.Rating)
	return m, err
}

func scanMovies(rows *sql.Rows) ([]movie.Movie, error) {
	movies := []movie.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, &StorageError{Op: "scanning movie", Err: err}
		}
		movies = append(movies, m)
	}
	if err := rows.Err(); err != nil {
		return nil, &StorageError{Op: "reading movies", Err: err}
	}
	return movies, nil
}
