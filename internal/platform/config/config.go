package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"

	"benchreview/pkg/platform/sentinel"
)

// DefaultRecordFile is the record file expected inside a dataset directory.
const DefaultRecordFile = "table_tests.jsonl"

// PDFDir is the dataset subdirectory holding the source documents.
const PDFDir = "pdfs"

// Server captures process level configuration for the review service.
type Server struct {
	DatasetDir string
	RecordFile string
	Host       string
	Port       int
	Debug      bool
	Watch      bool
}

// FromEnv builds a Server config from environment variables so main stays lean.
// Command line flags override these values.
func FromEnv() Server {
	host := os.Getenv("REVIEW_HOST")
	if host == "" {
		host = "127.0.0.1"
	}

	port := 5000
	if v, err := strconv.Atoi(os.Getenv("REVIEW_PORT")); err == nil && v > 0 {
		port = v
	}

	recordFile := os.Getenv("REVIEW_RECORD_FILE")
	if recordFile == "" {
		recordFile = DefaultRecordFile
	}

	return Server{
		RecordFile: recordFile,
		Host:       host,
		Port:       port,
		Debug:      os.Getenv("REVIEW_DEBUG") == "true",
		Watch:      os.Getenv("REVIEW_WATCH") == "true",
	}
}

// Addr is the listen address.
func (s Server) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// RecordPath is the absolute location of the record file.
func (s Server) RecordPath() string {
	return filepath.Join(s.DatasetDir, s.RecordFile)
}

// PDFPath is the directory documents are served from.
func (s Server) PDFPath() string {
	return filepath.Join(s.DatasetDir, PDFDir)
}

// Validate checks the dataset layout. Any error here is fatal at startup.
func (s Server) Validate() error {
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("invalid port %d", s.Port)
	}
	if s.RecordFile == "" || filepath.Base(s.RecordFile) != s.RecordFile {
		return fmt.Errorf("record file must be a plain file name, got %q", s.RecordFile)
	}
	if err := requireDir(s.DatasetDir, "dataset directory"); err != nil {
		return err
	}
	if err := requireDir(s.PDFPath(), "pdfs directory"); err != nil {
		return err
	}

	info, err := os.Stat(s.RecordPath())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("dataset file %s: %w", s.RecordPath(), sentinel.ErrNotFound)
		}
		return fmt.Errorf("dataset file %s: %w", s.RecordPath(), err)
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("dataset file %s is not a regular file", s.RecordPath())
	}
	return nil
}

func requireDir(path, what string) error {
	if path == "" {
		return fmt.Errorf("%s is required", what)
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s %s: %w", what, path, sentinel.ErrNotFound)
		}
		return fmt.Errorf("%s %s: %w", what, path, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s %s is not a directory", what, path)
	}
	return nil
}
