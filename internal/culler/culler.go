// Package culler finds registered files that are gone from disk.
package culler

import (
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/nikbrunner/tagbox/internal/model"
)

// Status represents whether a registered file still exists.
type Status int

const (
	Present    Status = iota // path exists
	Missing                  // path doesn't exist
	Unreadable               // stat failed for another reason, e.g. permissions
)

func (s Status) String() string {
	switch s {
	case Present:
		return "present"
	case Missing:
		return "missing"
	default:
		return "unreadable"
	}
}

// Result holds the check result for a single file.
type Result struct {
	File   model.File
	Status Status
	Error  string // stat error for unreadable files
}

// ProgressFunc is called after each file is checked.
// completed is the number of files checked so far, total is the total count.
type ProgressFunc func(completed, total int)

// StatFunc reports file info for a path. os.Stat by default.
type StatFunc func(path string) (fs.FileInfo, error)

// CheckFiles stats all file paths concurrently. Results keep the order of files.
func CheckFiles(files []model.File, concurrency int, stat StatFunc, onProgress ProgressFunc) []Result {
	if len(files) == 0 {
		return nil
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if stat == nil {
		stat = os.Stat
	}

	results := make([]Result, len(files))
	jobs := make(chan int, len(files))
	var wg sync.WaitGroup

	// Progress tracking
	var progressMu sync.Mutex
	completed := 0

	for w := 0; w < concurrency; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = checkFile(stat, files[idx])

				if onProgress != nil {
					progressMu.Lock()
					completed++
					onProgress(completed, len(files))
					progressMu.Unlock()
				}
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

func checkFile(stat StatFunc, file model.File) Result {
	result := Result{File: file}

	_, err := stat(file.Path)
	switch {
	case err == nil:
		result.Status = Present
	case errors.Is(err, fs.ErrNotExist):
		result.Status = Missing
	default:
		result.Status = Unreadable
		result.Error = err.Error()
	}
	return result
}

// Filter returns the results with the given status.
func Filter(results []Result, status Status) []Result {
	var out []Result
	for _, r := range results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}
