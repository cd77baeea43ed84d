// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package kar is an api for an lz4 backed file format.
// It's purpose is to be well suited for streaming resources
// from it. It's designed to be memory mapped, so (unlike tar) it knows
// where all the files are located before they're read. This nescesitates
// a bit of an unusual setup, where the archive itself is not compressed in
// any form, rather every file is individually compressed, so it could be immediately
// read from it's place and decompressed on the fly. This somewhat compromises
// space efficiency, but space efficiency is not the primary goal of this
// package. It instead focuses on getting resources from disk to a usable
// state as fast as possible. It can be read from concurrently.
//
// Layout: 4 byte magic, little endian int64 header size, gob encoded
// Header, then the compressed entries. Entry offsets are relative to
// the end of the Header.
package kar

import (
	"bytes"
	"encoding/binary"
	"encoding/gob"
	"errors"
	"io"
)

// package errors
var (
	ErrFileFormat = errors.New("corrupted or not a kar archive")
	ErrNotFound   = errors.New("file not found in kar archive")
	ErrTempFail   = errors.New("temporary folder or file operation failed")
)

// Sizes relevant to the header of file
const (
	MagicLength            = 4
	HeaderSizeNumberLength = 8
)

var magic = [MagicLength]byte{'K', 'A', 'R', '\x00'}

// IndexEntry is info for one file in the file index.
type IndexEntry struct {
	Name           string
	Offset         int64
	Size           int64
	CompressedSize int64
}

// Header is the file header for kar files.
type Header struct {
	Author      string
	DateCreated int64
	Version     int64
	Index       []IndexEntry
}

// encode serialises the header with gob
func (h Header) encode() ([]byte, error) {
	var encoded bytes.Buffer
	if err := gob.NewEncoder(&encoded).Encode(h); err != nil {
		return nil, err
	}
	return encoded.Bytes(), nil
}

func decodeHeader(raw []byte) (Header, error) {
	var h Header
	err := gob.NewDecoder(bytes.NewReader(raw)).Decode(&h)
	return h, err
}

// writePreamble writes the magic and the size of the encoded header
func writePreamble(w io.Writer, headerSize int64) (int64, error) {
	var preamble [MagicLength + HeaderSizeNumberLength]byte
	copy(preamble[:], magic[:])
	binary.LittleEndian.PutUint64(preamble[MagicLength:], uint64(headerSize))
	n, err := w.Write(preamble[:])
	return int64(n), err
}

// readPreamble checks the magic and returns the size of the encoded header
func readPreamble(r io.ReaderAt) (int64, error) {
	var preamble [MagicLength + HeaderSizeNumberLength]byte
	n, err := r.ReadAt(preamble[:], 0)
	if n < len(preamble) || !bytes.Equal(preamble[:MagicLength], magic[:]) {
		return 0, ErrFileFormat
	} else if err != nil && err != io.EOF {
		return 0, err
	}
	size := int64(binary.LittleEndian.Uint64(preamble[MagicLength:]))
	if size <= 0 {
		return 0, ErrFileFormat
	}
	return size, nil
}
