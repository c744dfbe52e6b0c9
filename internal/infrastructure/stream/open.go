package stream

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/gofrs/flock"

	"MovieSync/internal/ports"
)

// Outputs is the open destination pair for one batch run, plus the file lock
// that keeps a second run off the same pair.
type Outputs struct {
	Success *os.File
	Failure *os.File

	lock *flock.Flock
}

// OpenOutputs opens the success and failure streams for appending. Without
// reuse consent an existing destination is fatal before any row is processed;
// with it, the previous content is kept and new rows appended (so a resumed
// run extends its predecessor's streams). successPath may be empty when the
// successes go to a live store instead of a file.
//
// A flock beside the failure stream rejects concurrent runs against the same
// destination pair; within one run the streams are appended to strictly in
// row order, so no further locking discipline applies.
func OpenOutputs(successPath, failurePath string, reuse bool) (*Outputs, error) {
	lock := flock.New(failurePath + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire run lock %s: %w", lock.Path(), err)
	}
	if !locked {
		return nil, fmt.Errorf("another run holds %s", lock.Path())
	}

	outputs := &Outputs{lock: lock}

	outputs.Failure, err = openStream(failurePath, reuse)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	if successPath != "" {
		outputs.Success, err = openStream(successPath, reuse)
		if err != nil {
			_ = outputs.Failure.Close()
			_ = lock.Unlock()
			return nil, err
		}
	}

	return outputs, nil
}

// Close releases the streams and the run lock.
func (o *Outputs) Close() error {
	var errs []error
	if o.Success != nil {
		errs = append(errs, o.Success.Close())
	}
	if o.Failure != nil {
		errs = append(errs, o.Failure.Close())
	}
	if o.lock != nil {
		errs = append(errs, o.lock.Unlock())
	}
	return errors.Join(errs...)
}

func openStream(path string, reuse bool) (*os.File, error) {
	flags := os.O_WRONLY | os.O_CREATE | os.O_APPEND
	if !reuse {
		flags |= os.O_EXCL
	}

	f, err := os.OpenFile(path, flags, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return nil, fmt.Errorf("%w: %s (pass --overwrite to reuse it)", ports.ErrOutputExists, path)
	}
	if err != nil {
		return nil, fmt.Errorf("open output %s: %w", path, err)
	}
	return f, nil
}
