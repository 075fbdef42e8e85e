package recording

import (
	"bufio"
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"strings"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/errors"
	"github.com/swdee/go-poseoverlay/geometry"
	"github.com/swdee/go-poseoverlay/pose"
)

// ErrNotFound is returned when a recorded frame does not exist
var ErrNotFound = errors.New("recording: frame not found")

// maxLineSize is the largest JSON line accepted on import
const maxLineSize = 4 << 20

// Frame is the detector output recorded for a single video frame
type Frame struct {
	// Index is the video frame index the poses were detected on
	Index int64
	// Video is the size of the frame the keypoints are relative to
	Video geometry.Dimensions
	Poses []pose.Pose
}

// Store keeps recorded detector output in a SQLite database
type Store struct {
	conn *sql.DB
	mu   sync.RWMutex
}

// Open creates or opens the recording database at path
func Open(path string) (*Store, error) {

	conn, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")

	if err != nil {
		return nil, errors.Wrap(err, "open database")
	}

	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)

	s := &Store{conn: conn}

	if err := s.migrate(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "migrate database")
	}

	return s, nil
}

// migrate creates the tables if they don't exist
func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS frames (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		frame_index INTEGER NOT NULL UNIQUE,
		video_width REAL NOT NULL,
		video_height REAL NOT NULL,
		poses TEXT NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_frames_frame_index ON frames(frame_index);
	`

	_, err := s.conn.Exec(schema)
	return err
}

// Close closes the database
func (s *Store) Close() error {
	return s.conn.Close()
}

// Append records a frame, replacing any frame already recorded at the same
// index
func (s *Store) Append(ctx context.Context, f Frame) error {

	data, err := json.Marshal(f.Poses)

	if err != nil {
		return errors.Wrap(err, "encode poses")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.conn.ExecContext(ctx, `
		INSERT INTO frames (frame_index, video_width, video_height, poses)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(frame_index) DO UPDATE SET
			video_width = excluded.video_width,
			video_height = excluded.video_height,
			poses = excluded.poses`,
		f.Index, f.Video.Width, f.Video.Height, string(data))

	return errors.Wrapf(err, "insert frame %d", f.Index)
}

// Count returns the number of recorded frames
func (s *Store) Count(ctx context.Context) (int, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	err := s.conn.QueryRowContext(ctx, "SELECT COUNT(*) FROM frames").Scan(&n)

	return n, errors.Wrap(err, "count frames")
}

// nextIndex returns the frame index following the highest recorded
func (s *Store) nextIndex(ctx context.Context) (int64, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int64
	err := s.conn.QueryRowContext(ctx,
		"SELECT COALESCE(MAX(frame_index) + 1, 0) FROM frames").Scan(&n)

	return n, errors.Wrap(err, "next frame index")
}

// Frame returns the recorded frame at position n in frame index order
func (s *Store) Frame(ctx context.Context, n int) (Frame, error) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		f    Frame
		data string
	)

	err := s.conn.QueryRowContext(ctx, `
		SELECT frame_index, video_width, video_height, poses
		FROM frames ORDER BY frame_index LIMIT 1 OFFSET ?`, n).
		Scan(&f.Index, &f.Video.Width, &f.Video.Height, &data)

	if err == sql.ErrNoRows {
		return Frame{}, errors.Wrapf(ErrNotFound, "position %d", n)
	}

	if err != nil {
		return Frame{}, errors.Wrapf(err, "query position %d", n)
	}

	if err := json.Unmarshal([]byte(data), &f.Poses); err != nil {
		return Frame{}, errors.Wrapf(err, "decode frame %d", f.Index)
	}

	for i := range f.Poses {
		f.Poses[i].Index()
	}

	return f, nil
}

// Recorded returns the poses recorded at position n and the video size they
// were detected on
func (s *Store) Recorded(ctx context.Context, n int) ([]pose.Pose, geometry.Dimensions, error) {

	f, err := s.Frame(ctx, n)

	if err != nil {
		return nil, geometry.Dimensions{}, err
	}

	return f.Poses, f.Video, nil
}

// Import reads pose detection output, one JSON array of poses per line as
// produced by estimatePoses, and records each line as the next frame after
// those already stored.  Blank lines are ignored.  Returns the number of
// frames imported.
func (s *Store) Import(ctx context.Context, r io.Reader, video geometry.Dimensions) (int, error) {

	next, err := s.nextIndex(ctx)

	if err != nil {
		return 0, err
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	imported := 0
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())

		if text == "" {
			continue
		}

		var poses []pose.Pose

		if err := json.Unmarshal([]byte(text), &poses); err != nil {
			return imported, errors.Wrapf(err, "line %d", line)
		}

		f := Frame{
			Index: next + int64(imported),
			Video: video,
			Poses: poses,
		}

		if err := s.Append(ctx, f); err != nil {
			return imported, err
		}

		imported++
	}

	if err := scanner.Err(); err != nil {
		return imported, errors.Wrap(err, "read input")
	}

	return imported, nil
}
