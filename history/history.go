// Package history keeps track of the lectures that were already downloaded.
package history

import (
	"fmt"
	"sort"
	"time"

	"github.com/echo360-dl/echo360/filesystem"
	"github.com/echo360-dl/echo360/where"
	"github.com/hashicorp/go-multierror"
	"github.com/metafates/gache"
	"github.com/samber/lo"
)

var cacher = gache.New[map[string]*Record](
	&gache.Options{
		Path:       where.History(),
		FileSystem: &filesystem.GacheFs{},
	},
)

// Get returns every record, keyed by course and filename.
func Get() (map[string]*Record, error) {
	cached, expired, err := cacher.Get()
	if err != nil {
		return nil, err
	}
	if expired || cached == nil {
		return make(map[string]*Record), nil
	}
	return cached, nil
}

// Of returns the records of a course, oldest first.
func Of(course string) ([]*Record, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	records := lo.Filter(lo.Values(saved), func(r *Record, _ int) bool {
		return r.Course == course
	})
	sort.Slice(records, func(i, j int) bool {
		return records[i].DownloadedAt.Before(records[j].DownloadedAt)
	})
	return records, nil
}

// Save records that filename of course was downloaded into directory from url.
// Saving the same file again refreshes its record.
func Save(course, filename, directory, url string) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	record := &Record{
		Course:       course,
		Filename:     filename,
		URL:          url,
		Directory:    directory,
		DownloadedAt: time.Now(),
	}
	saved[record.encode()] = record

	return cacher.Set(saved)
}

// Remove deletes a record.
func Remove(record *Record) error {
	saved, err := Get()
	if err != nil {
		return err
	}

	delete(saved, record.encode())
	return cacher.Set(saved)
}

// Courses returns the name of every course with a record, sorted.
func Courses() ([]string, error) {
	saved, err := Get()
	if err != nil {
		return nil, err
	}

	courses := lo.Uniq(lo.Map(lo.Values(saved), func(r *Record, _ int) string { return r.Course }))
	sort.Strings(courses)
	return courses, nil
}

// Forget removes every record of course and returns how many there were.
func Forget(course string) (int, error) {
	records, err := Of(course)
	if err != nil {
		return 0, err
	}

	var result error
	for _, r := range records {
		if err := Remove(r); err != nil {
			result = multierror.Append(result, multierror.Prefix(err, fmt.Sprintf("[%s]", r.Filename)))
		}
	}
	return len(records), result
}
