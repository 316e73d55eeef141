package suite

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/inhies/go-bytesize"
	"github.com/klauspost/compress/zstd"
)

// Source is a line-oriented suite file, possibly compressed.
type Source interface {
	Open() error
	Close() error
	Scan() bool
	Text() string
	Err() error
	// The size (or estimated size in case of archives) of the data
	Size() bytesize.ByteSize
	// Decompressed bytes handed out so far.
	BytesRead() bytesize.ByteSize
}

// countingReader keeps track of the bytes read through it.
type countingReader struct {
	reader    io.Reader
	bytesRead bytesize.ByteSize
}

func (cr *countingReader) Read(p []byte) (int, error) {
	n, err := cr.reader.Read(p)
	cr.bytesRead += bytesize.ByteSize(uint64(n))
	return n, err
}

type format int

const (
	formatPlain format = iota
	formatZst
	formatBzip2
)

// fileSource reads a plain, .zst or .bz2 file line by line. For archives the
// size is estimated from the compression ratio seen so far.
type fileSource struct {
	path   string
	format format

	file   *os.File
	in     *countingReader
	out    *countingReader
	lines  *bufio.Scanner
	size   bytesize.ByteSize
	closer func() error
}

// NewSource picks a Source for path by its extension.
func NewSource(path string) (Source, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst":
		return &fileSource{path: path, format: formatZst}, nil
	case ".bz2":
		return &fileSource{path: path, format: formatBzip2}, nil
	case ".epd", ".txt", "":
		return &fileSource{path: path, format: formatPlain}, nil
	default:
		return nil, fmt.Errorf("unsupported suite format: %s", path)
	}
}

func (s *fileSource) Open() error {
	file, err := os.Open(s.path)
	if err != nil {
		return err
	}
	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return err
	}

	s.file = file
	s.size = bytesize.ByteSize(stat.Size())
	s.in = &countingReader{reader: file}
	s.closer = file.Close

	var data io.Reader = s.in
	switch s.format {
	case formatZst:
		dec, err := zstd.NewReader(s.in)
		if err != nil {
			file.Close()
			return fmt.Errorf("error opening zst: %w", err)
		}
		data = dec
		s.closer = func() error {
			dec.Close()
			return file.Close()
		}
	case formatBzip2:
		dec, err := bzip2.NewReader(s.in, nil)
		if err != nil {
			file.Close()
			return fmt.Errorf("error opening bz2: %w", err)
		}
		data = dec
		s.closer = func() error {
			dec.Close()
			return file.Close()
		}
	}

	s.out = &countingReader{reader: data}
	s.lines = bufio.NewScanner(bufio.NewReader(s.out))
	return nil
}

func (s *fileSource) Close() error {
	if s.closer == nil {
		return nil
	}
	err := s.closer()
	s.closer = nil
	return err
}

func (s *fileSource) Scan() bool {
	return s.lines.Scan()
}

func (s *fileSource) Text() string {
	return s.lines.Text()
}

func (s *fileSource) Err() error {
	return s.lines.Err()
}

func (s *fileSource) Size() bytesize.ByteSize {
	if s.format != formatPlain && s.in != nil && s.in.bytesRead > 0 {
		return s.size * s.out.bytesRead / s.in.bytesRead
	}
	return s.size
}

func (s *fileSource) BytesRead() bytesize.ByteSize {
	if s.out == nil {
		return 0
	}
	return s.out.bytesRead
}
