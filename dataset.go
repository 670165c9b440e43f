package rplot

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/gobwas/glob"
	"github.com/tidwall/buntdb"
)

var ErrNegativeTimestamp = errors.New(`timestamps before the epoch cannot be stored`)

// Dataset persists metrics in a buntdb file.  Each series is stored under
// "metrics:<unique name>:id" with one "metrics:<unique name>:values:<ns>" key
// per point, the nanosecond epoch zero-padded so keys sort chronologically.
type Dataset struct {
	StoreZeroes bool
	filename    string
	db          *buntdb.DB
}

// OpenDataset opens (or creates) the dataset at filename.  The special name
// ":memory:" keeps everything in memory.
func OpenDataset(filename string) (*Dataset, error) {
	out := &Dataset{
		StoreZeroes: true,
		filename:    filename,
	}

	if conn, err := buntdb.Open(out.filename); err == nil {
		out.db = conn
	} else {
		return nil, err
	}

	return out, nil
}

func (self *Dataset) Close() error {
	return self.db.Close()
}

// GetNames returns the unique names of every stored series matching the given
// glob, where '.' separates name components.
func (self *Dataset) GetNames(pattern string) ([]string, error) {
	matcher, err := glob.Compile(pattern, '.')

	if err != nil {
		return nil, err
	}

	names := make([]string, 0)

	if err := self.db.View(func(tx *buntdb.Tx) error {
		return tx.AscendKeys(`metrics:*:id`, func(key, value string) bool {
			if matcher.Match(value) {
				names = append(names, value)
			}

			return true
		})
	}); err != nil {
		return nil, err
	}

	return names, nil
}

// Write stores a single point for metric.
func (self *Dataset) Write(metric *Metric, point Point) error {
	return self.db.Update(func(tx *buntdb.Tx) error {
		return self.set(tx, metric.GetUniqueName(), point)
	})
}

// WriteMetric stores every point of metric in one transaction.
func (self *Dataset) WriteMetric(metric *Metric) error {
	name := metric.GetUniqueName()

	return self.db.Update(func(tx *buntdb.Tx) error {
		for _, point := range metric.Points() {
			if err := self.set(tx, name, point); err != nil {
				return err
			}
		}

		return nil
	})
}

// Range loads the points between start (inclusive) and end (exclusive) of
// every series matching any of the patterns.  A zero start means the epoch
// and a zero end means now.
func (self *Dataset) Range(start time.Time, end time.Time, patterns ...string) ([]*Metric, error) {
	names, err := self.expand(patterns...)

	if err != nil {
		return nil, err
	}

	metrics := make([]*Metric, 0, len(names))

	if err := self.db.View(func(tx *buntdb.Tx) error {
		for _, name := range names {
			metric := NewMetric(name)

			if err := self.ascend(tx, name, start, end, func(point Point) bool {
				metric.PushPoint(point)
				return true
			}); err != nil {
				return err
			}

			metrics = append(metrics, metric)
		}

		return nil
	}); err != nil {
		return nil, err
	}

	return metrics, nil
}

// Source exposes one stored series as a DataSource.  Nothing is read until
// the source is traversed, and each traversal reads the dataset afresh.
func (self *Dataset) Source(name string, start time.Time, end time.Time) DataSource {
	return SourceFunc(func(yield PointFunc) {
		if err := self.db.View(func(tx *buntdb.Tx) error {
			return self.ascend(tx, name, start, end, yield)
		}); err != nil {
			log.Errorf("read %s: %v", name, err)
		}
	})
}

// Remove deletes every series matching the patterns and returns how many
// were removed.
func (self *Dataset) Remove(patterns ...string) (int, error) {
	names, err := self.expand(patterns...)

	if err != nil {
		return 0, err
	}

	return len(names), self.db.Update(func(tx *buntdb.Tx) error {
		for _, name := range names {
			keys := []string{idKey(name)}

			if err := tx.AscendKeys(valuePrefix(name)+`*`, func(key, value string) bool {
				keys = append(keys, key)
				return true
			}); err != nil {
				return err
			}

			if err := deleteKeys(tx, keys); err != nil {
				return err
			}
		}

		return nil
	})
}

// TrimBefore deletes points older than the given time from matching series.
func (self *Dataset) TrimBefore(before time.Time, patterns ...string) (int, error) {
	return self.trim(time.Time{}, before, patterns...)
}

// TrimAfter deletes points at or after the given time from matching series.
func (self *Dataset) TrimAfter(after time.Time, patterns ...string) (int, error) {
	return self.trim(after, time.Unix(0, maxNanos), patterns...)
}

// Compact rewrites the append-only file to drop deleted and overwritten keys.
func (self *Dataset) Compact() error {
	return self.db.Shrink()
}

func (self *Dataset) Backup(w io.Writer) error {
	return self.db.Save(w)
}

// Restore replaces the entire contents of the dataset with a backup.  The
// backup is staged in memory first, since buntdb only loads into in-memory
// databases.
func (self *Dataset) Restore(r io.Reader) error {
	staging, err := buntdb.Open(`:memory:`)

	if err != nil {
		return err
	}

	defer staging.Close()

	if err := staging.Load(r); err != nil {
		return err
	}

	return staging.View(func(stx *buntdb.Tx) error {
		return self.db.Update(func(tx *buntdb.Tx) error {
			if err := tx.DeleteAll(); err != nil {
				return err
			}

			var setErr error

			if err := stx.Ascend(``, func(key, value string) bool {
				_, _, setErr = tx.Set(key, value, nil)
				return setErr == nil
			}); err != nil {
				return err
			}

			return setErr
		})
	})
}

func (self *Dataset) trim(start time.Time, end time.Time, patterns ...string) (int, error) {
	names, err := self.expand(patterns...)

	if err != nil {
		return 0, err
	}

	removed := 0

	err = self.db.Update(func(tx *buntdb.Tx) error {
		keys := make([]string, 0)

		for _, name := range names {
			prefix := valuePrefix(name)

			if err := tx.AscendRange(``, rangeKey(prefix, start), rangeKey(prefix, end), func(key, value string) bool {
				keys = append(keys, key)
				return true
			}); err != nil {
				return err
			}
		}

		removed = len(keys)
		return deleteKeys(tx, keys)
	})

	return removed, err
}

func (self *Dataset) set(tx *buntdb.Tx, name string, point Point) error {
	if !self.StoreZeroes && point.Y == 0 {
		return nil
	}

	if point.X < 0 {
		return fmt.Errorf("%s: %w", name, ErrNegativeTimestamp)
	}

	if _, _, err := tx.Set(idKey(name), name, nil); err != nil {
		return err
	}

	key := fmt.Sprintf("%s%020d", valuePrefix(name), point.Time().UnixNano())
	_, _, err := tx.Set(key, strconv.FormatFloat(point.Y, 'g', -1, 64), nil)

	return err
}

func (self *Dataset) ascend(tx *buntdb.Tx, name string, start time.Time, end time.Time, fn PointFunc) error {
	prefix := valuePrefix(name)

	if end.IsZero() {
		end = time.Now()
	}

	return tx.AscendRange(``, rangeKey(prefix, start), rangeKey(prefix, end), func(key, value string) bool {
		nanos, err := strconv.ParseInt(strings.TrimPrefix(key, prefix), 10, 64)

		if err != nil {
			log.Errorf("epoch parse error %s: %v", key, err)
			return true
		}

		y, err := strconv.ParseFloat(value, 64)

		if err != nil {
			log.Errorf("value parse error %s: %v", key, err)
			return true
		}

		return fn(Point{
			X: TimeToEpoch(time.Unix(0, nanos)),
			Y: y,
		})
	})
}

func (self *Dataset) expand(patterns ...string) ([]string, error) {
	seen := make(map[string]bool)
	names := make([]string, 0)

	for _, pattern := range patterns {
		matches, err := self.GetNames(pattern)

		if err != nil {
			return nil, err
		}

		for _, name := range matches {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}

	return names, nil
}

const maxNanos = int64(^uint64(0) >> 1)

func idKey(name string) string {
	return fmt.Sprintf("metrics:%s:id", name)
}

func valuePrefix(name string) string {
	return fmt.Sprintf("metrics:%s:values:", name)
}

func rangeKey(prefix string, tm time.Time) string {
	nanos := int64(0)

	if !tm.IsZero() && tm.Unix() > 0 {
		nanos = tm.UnixNano()
	}

	return fmt.Sprintf("%s%020d", prefix, nanos)
}

func deleteKeys(tx *buntdb.Tx, keys []string) error {
	for _, key := range keys {
		if _, err := tx.Delete(key); err != nil && err != buntdb.ErrNotFound {
			return err
		}
	}

	return nil
}
