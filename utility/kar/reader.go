// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package kar

import (
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"sort"

	"github.com/pierrec/lz4"
	"golang.org/x/exp/mmap"
)

// Open opens the kar archive read from r, which holds size bytes.
// It will also check if the source is actually a kar archive, and
// returns ErrFileFormat when the header or the index do not fit in it.
func Open(r io.ReaderAt, size int64) (*Archive, error) {
	headerSize, err := readPreamble(r)
	if err != nil {
		return nil, err
	}
	dataOffset := MagicLength + HeaderSizeNumberLength + headerSize
	if headerSize > size || dataOffset > size {
		return nil, fmt.Errorf("%w: header of %d bytes in %d byte archive", ErrFileFormat, headerSize, size)
	}

	headerBytes := make([]byte, headerSize)
	if num, err := r.ReadAt(headerBytes, MagicLength+HeaderSizeNumberLength); int64(num) < headerSize {
		return nil, ErrFileFormat
	} else if err != nil && err != io.EOF {
		return nil, err
	}

	header, err := decodeHeader(headerBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrFileFormat, err)
	}
	for _, e := range header.Index {
		if e.Offset < 0 || e.CompressedSize < 0 || e.Size < 0 ||
			dataOffset+e.Offset+e.CompressedSize > size {
			return nil, fmt.Errorf("%w: entry %s out of bounds", ErrFileFormat, e.Name)
		}
	}

	ar := Archive{
		reader:     r,
		header:     header,
		dataOffset: dataOffset,
		index:      make(map[string]IndexEntry, len(header.Index)),
	}
	for _, e := range header.Index {
		ar.index[e.Name] = e
	}
	return &ar, nil
}

// OpenFile memory maps the archive at path and opens it.
// The returned Archive has to be closed.
func OpenFile(path string) (*Archive, error) {
	mapped, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}
	ar, err := Open(mapped, int64(mapped.Len()))
	if err != nil {
		mapped.Close()
		return nil, err
	}
	ar.closer = mapped
	return ar, nil
}

// Archive provides concurrent io for a kar file, and can provide
// an io.Reader for each file separately to perform actions on.
type Archive struct {
	reader     io.ReaderAt
	closer     io.Closer
	header     Header
	dataOffset int64
	index      map[string]IndexEntry
}

// Header returns the decoded archive header
func (a *Archive) Header() Header {
	return a.header
}

// List returns the names of all files, sorted
func (a *Archive) List() []string {
	names := make([]string, 0, len(a.index))
	for name := range a.index {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a file with the given name exists
func (a *Archive) Has(name string) bool {
	_, ok := a.index[filepath.ToSlash(name)]
	return ok
}

// Open returns a Reader for a file in the Archive
func (a *Archive) Open(name string) (*Reader, error) {
	entry, ok := a.index[filepath.ToSlash(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	section := io.NewSectionReader(a.reader, a.dataOffset+entry.Offset, entry.CompressedSize)
	return &Reader{
		entry:  entry,
		reader: lz4.NewReader(section),
	}, nil
}

// ReadAll returns the entire contents of a file with a given name
func (a *Archive) ReadAll(name string) ([]byte, error) {
	r, err := a.Open(name)
	if err != nil {
		return nil, err
	}
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if int64(len(data)) != r.entry.Size {
		return nil, fmt.Errorf("%w: %s has %d bytes, expected %d", ErrFileFormat, name, len(data), r.entry.Size)
	}
	return data, nil
}

// Find is the same as ReadAll, it lets the Archive serve as a resource box
func (a *Archive) Find(name string) ([]byte, error) {
	return a.ReadAll(name)
}

// FindString returns the contents of a file as a string
func (a *Archive) FindString(name string) (string, error) {
	data, err := a.ReadAll(name)
	return string(data), err
}

// Close releases the memory mapping, if the archive was opened with OpenFile
func (a *Archive) Close() error {
	if a.closer == nil {
		return nil
	}
	return a.closer.Close()
}

// Reader is a reader for a single file in an Archive.
// Abstracts away the location that needs to be known.
type Reader struct {
	entry  IndexEntry
	reader io.Reader
}

// Read reads already decompressed data
func (r *Reader) Read(p []byte) (n int, err error) {
	return r.reader.Read(p)
}

// Size returns the decompressed size of the file
func (r *Reader) Size() int64 {
	return r.entry.Size
}
