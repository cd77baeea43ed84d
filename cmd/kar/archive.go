// Copyright (c) 2019 devblok
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	"github.com/devblok/koruview/utility/kar"
)

func newBar(max int64, bytes, silent bool, description string) *progressbar.ProgressBar {
	switch {
	case silent && bytes:
		return progressbar.DefaultBytesSilent(max, description)
	case silent:
		return progressbar.DefaultSilent(max, description)
	case bytes:
		return progressbar.DefaultBytes(max, description)
	}
	return progressbar.Default(max, description)
}

// compressDirectory bundles every file under dir into an archive at dst.
// Names in the archive are relative to dir, with forward slashes.
func compressDirectory(dir, dst, author string, version int64, silent bool) error {
	if _, err := os.Stat(dst); err == nil {
		return errors.New("destination file exists, will not overwrite")
	}

	var filesToCompress []string
	if err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		filesToCompress = append(filesToCompress, path)
		return nil
	}); err != nil {
		return err
	}
	if len(filesToCompress) == 0 {
		return fmt.Errorf("nothing to compress in %s", dir)
	}

	karBuilder, err := kar.NewBuilder(kar.Header{
		Author:      author,
		DateCreated: time.Now().Unix(),
		Version:     version,
	})
	if err != nil {
		return err
	}
	defer karBuilder.Close()

	bar := newBar(int64(len(filesToCompress)), false, silent, "compressing")
	for _, ftc := range filesToCompress {
		name, err := filepath.Rel(dir, ftc)
		if err != nil {
			return err
		}
		if err := addFile(karBuilder, name, ftc); err != nil {
			return err
		}
		bar.Add(1)
	}

	dstWriter, err := os.Create(dst)
	if err != nil {
		return err
	}
	written, err := karBuilder.WriteTo(dstWriter)
	if closeErr := dstWriter.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}

	log.WithFields(log.Fields{
		"path":  dst,
		"files": karBuilder.Len(),
		"bytes": written,
	}).Info("Archive written")
	return nil
}

func addFile(b *kar.Builder, name, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return b.Add(name, f)
}

// extractArchive writes every file of the archive into dir
func extractArchive(path, dir string, silent bool) error {
	archive, err := kar.OpenFile(path)
	if err != nil {
		return err
	}
	defer archive.Close()

	var total int64
	for _, entry := range archive.Header().Index {
		total += entry.Size
	}

	bar := newBar(total, true, silent, "extracting")
	for _, name := range archive.List() {
		target := filepath.Join(dir, filepath.FromSlash(name))
		if !strings.HasPrefix(target, filepath.Clean(dir)+string(os.PathSeparator)) {
			return fmt.Errorf("%w: %s escapes the destination", kar.ErrFileFormat, name)
		}
		if err := extractFile(archive, name, target, bar); err != nil {
			return err
		}
	}

	log.WithFields(log.Fields{
		"path":  dir,
		"files": len(archive.List()),
	}).Info("Archive extracted")
	return nil
}

func extractFile(archive *kar.Archive, name, target string, progress io.Writer) error {
	r, err := archive.Open(name)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	f, err := os.Create(target)
	if err != nil {
		return err
	}
	written, err := io.Copy(io.MultiWriter(f, progress), r)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return err
	}
	if written != r.Size() {
		return fmt.Errorf("%w: %s has %d bytes, expected %d", kar.ErrFileFormat, name, written, r.Size())
	}
	return nil
}

// listArchive prints the header and the index of an archive
func listArchive(path string, w io.Writer) error {
	archive, err := kar.OpenFile(path)
	if err != nil {
		return err
	}
	defer archive.Close()

	header := archive.Header()
	fmt.Fprintf(w, "author: %s\nversion: %d\ncreated: %s\n",
		header.Author, header.Version, time.Unix(header.DateCreated, 0).UTC().Format(time.RFC3339))
	for _, entry := range header.Index {
		fmt.Fprintf(w, "%10d %10d %s\n", entry.Size, entry.CompressedSize, entry.Name)
	}
	return nil
}
