package repository

import (
	"bufio"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"irrigator/internal/logger"
	"irrigator/internal/models"

	"github.com/spf13/afero"
)

// CredentialFiles keeps each credential field in its own plain-text file
// (ssid.txt, pass.txt, ip.txt) under root.
type CredentialFiles struct {
	fs   afero.Fs
	root string
	log  *logger.Logger

	mountOnce sync.Once
	mounted   bool
}

var _ CredentialStore = (*CredentialFiles)(nil)

const credentialFileMode = 0o600

// NewCredentialFiles creates a store over fs. Nothing is touched until the
// first Load or Save.
func NewCredentialFiles(fs afero.Fs, root string, log *logger.Logger) *CredentialFiles {
	return &CredentialFiles{fs: fs, root: root, log: logger.OrNop(log)}
}

// mount prepares the storage root exactly once. After a failed mount every
// Load returns "" and every Save fails.
func (s *CredentialFiles) mount() bool {
	s.mountOnce.Do(func() {
		if err := s.fs.MkdirAll(s.root, 0o700); err != nil {
			s.log.Errorw("storage_mount_failed", "root", s.root, "err", err)
			return
		}
		s.mounted = true
		s.log.Infow("storage_mounted", "root", s.root)
	})
	return s.mounted
}

func (s *CredentialFiles) path(field models.Field) string {
	return filepath.Join(s.root, string(field)+".txt")
}

// Load returns the first line of the field's file, or "" when storage is
// unavailable or the file cannot be read.
func (s *CredentialFiles) Load(field models.Field) string {
	if !s.mount() {
		return ""
	}
	p := s.path(field)
	f, err := s.fs.Open(p)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.Warnw("credential_read_failed", "path", p, "err", err)
		}
		return ""
	}
	defer func() { _ = f.Close() }()

	line, err := bufio.NewReader(f).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		s.log.Warnw("credential_read_failed", "path", p, "err", err)
		return ""
	}
	return strings.TrimRight(line, "\r\n")
}

// Save overwrites the field's file with value.
func (s *CredentialFiles) Save(field models.Field, value string) bool {
	if !s.mount() {
		return false
	}
	p := s.path(field)
	if err := afero.WriteFile(s.fs, p, []byte(value), credentialFileMode); err != nil {
		s.log.Errorw("credential_write_failed", "path", p, "err", err)
		return false
	}
	s.log.Debugw("credential_written", "path", p)
	return true
}
