package cmake

import (
	"bufio"
	"errors"
	"fmt"
	"os"
)

// File is an Emitter bound to a file on disk. It must be finalized with Close.
type File struct {
	*Emitter
	path string
	f    *os.File
	buf  *bufio.Writer
}

// Create truncates or creates the file at path and returns an emitter for it.
func Create(path string) (*File, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", path, err)
	}
	buf := bufio.NewWriter(f)
	return &File{
		Emitter: NewEmitter(buf),
		path:    path,
		f:       f,
		buf:     buf,
	}, nil
}

// Path returns the file location.
func (f *File) Path() string {
	return f.path
}

// Close flushes and closes the file. It reports the first emit error, a
// flush or close failure, or ErrUnclosedBlock when a Begin directive was
// never ended. The file handle is released in every case.
func (f *File) Close() error {
	var errs []error
	if err := f.Err(); err != nil {
		errs = append(errs, err)
	}
	if f.OpenBlocks() > 0 {
		errs = append(errs, fmt.Errorf("%w: %d open in %s", ErrUnclosedBlock, f.OpenBlocks(), f.path))
	}
	if err := f.buf.Flush(); err != nil {
		errs = append(errs, fmt.Errorf("flush %s: %w", f.path, err))
	}
	if err := f.f.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close %s: %w", f.path, err))
	}
	return errors.Join(errs...)
}

// WriteFile creates path, runs fill against its emitter and finalizes the
// file on every exit path, including when fill returns an error.
func WriteFile(path string, fill func(e *Emitter) error) (err error) {
	f, err := Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fill(f.Emitter)
}
