package service

import (
	"context"
	"crypto/md5"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"irrigator/internal/device"
	"irrigator/internal/logger"
	"irrigator/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
)

// UpdatePhase names the step of a firmware update that failed.
type UpdatePhase string

const (
	PhaseAuth    UpdatePhase = "auth"
	PhaseBegin   UpdatePhase = "begin"
	PhaseConnect UpdatePhase = "connect"
	PhaseReceive UpdatePhase = "receive"
	PhaseEnd     UpdatePhase = "end"
)

// UpdateError is a failed firmware update.
type UpdateError struct {
	Phase UpdatePhase
	Err   error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("%s failed: %v", e.Phase, e.Err)
}

func (e *UpdateError) Unwrap() error { return e.Err }

// Domain errors for the update flow.
var (
	ErrUpdateDisabled = errors.New("update channel disabled")
	ErrBadSecret      = errors.New("invalid update secret")
	ErrBadToken       = errors.New("invalid or expired update token")
	ErrImageSize      = errors.New("invalid image size")
	ErrImageDigest    = errors.New("image digest mismatch")
)

// MaxImageSize bounds an uploaded image.
const MaxImageSize = 4 << 20

const (
	imageName   = "firmware.bin"
	stagingName = "firmware.bin.part"
	tokenSubj   = "ota"
)

// FirmwareConfig configures the update channel.
type FirmwareConfig struct {
	// SecretHash is the bcrypt hash of the shared secret.
	SecretHash string
	TokenTTL   time.Duration
	Dir        string
}

// FirmwareService receives firmware images. An update is authenticated with
// the shared secret, which yields a short-lived token for the upload. The
// image is staged and only committed when it is complete and its digest
// matches; anything else leaves the running image untouched.
type FirmwareService struct {
	cfg        FirmwareConfig
	fs         afero.Fs
	rebooter   device.Rebooter
	journal    *JournalService
	log        *logger.Logger
	signingKey []byte
}

func NewFirmwareService(cfg FirmwareConfig, fs afero.Fs, rebooter device.Rebooter, journal *JournalService, log *logger.Logger) (*FirmwareService, error) {
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate signing key: %w", err)
	}
	return &FirmwareService{
		cfg:        cfg,
		fs:         fs,
		rebooter:   rebooter,
		journal:    journal,
		log:        logger.OrNop(log),
		signingKey: key,
	}, nil
}

// Enabled reports whether a secret is configured.
func (s *FirmwareService) Enabled() bool {
	return s.cfg.SecretHash != ""
}

// HashSecret returns the bcrypt hash to configure for secret.
func HashSecret(secret string) (string, error) {
	if strings.TrimSpace(secret) == "" {
		return "", errors.New("secret is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash secret: %w", err)
	}
	return string(hash), nil
}

// Authenticate checks secret and returns an upload token.
func (s *FirmwareService) Authenticate(secret string) (string, error) {
	if !s.Enabled() {
		return "", s.fail(PhaseAuth, ErrUpdateDisabled)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.cfg.SecretHash), []byte(secret)); err != nil {
		return "", s.fail(PhaseAuth, ErrBadSecret)
	}
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   tokenSubj,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
	})
	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", s.fail(PhaseAuth, err)
	}
	s.log.Infow("ota_authenticated")
	return signed, nil
}

func (s *FirmwareService) verifyToken(raw string) error {
	token, err := jwt.ParseWithClaims(raw, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil || !token.Valid {
		return ErrBadToken
	}
	if sub, _ := token.Claims.GetSubject(); sub != tokenSubj {
		return ErrBadToken
	}
	return nil
}

// Apply receives an image of size bytes whose md5 is md5hex, commits it and
// requests a reboot.
func (s *FirmwareService) Apply(ctx context.Context, token string, image io.Reader, size int64, md5hex string) error {
	if err := s.verifyToken(token); err != nil {
		return s.fail(PhaseAuth, err)
	}

	want, err := hex.DecodeString(md5hex)
	if err != nil || len(want) != md5.Size {
		return s.fail(PhaseBegin, fmt.Errorf("bad digest %q: %w", md5hex, ErrImageDigest))
	}
	if size <= 0 || size > MaxImageSize {
		return s.fail(PhaseBegin, fmt.Errorf("%d bytes: %w", size, ErrImageSize))
	}
	s.log.Infow("ota_update_started", "size", size)

	if err := s.fs.MkdirAll(s.cfg.Dir, 0o755); err != nil {
		return s.fail(PhaseConnect, err)
	}
	staging := filepath.Join(s.cfg.Dir, stagingName)
	f, err := s.fs.Create(staging)
	if err != nil {
		return s.fail(PhaseConnect, err)
	}
	discard := func() { _ = s.fs.Remove(staging) }

	sum := md5.New()
	n, err := io.Copy(io.MultiWriter(f, sum), &progressReader{r: io.LimitReader(image, size+1), ctx: ctx, total: size, log: s.log})
	closeErr := f.Close()
	switch {
	case err != nil:
		discard()
		return s.fail(PhaseReceive, err)
	case n != size:
		discard()
		return s.fail(PhaseReceive, fmt.Errorf("received %d of %d bytes: %w", n, size, ErrImageSize))
	case closeErr != nil:
		discard()
		return s.fail(PhaseEnd, closeErr)
	}

	if got := sum.Sum(nil); hex.EncodeToString(got) != strings.ToLower(md5hex) {
		discard()
		return s.fail(PhaseEnd, ErrImageDigest)
	}
	if err := s.fs.Rename(staging, filepath.Join(s.cfg.Dir, imageName)); err != nil {
		discard()
		return s.fail(PhaseEnd, err)
	}

	s.log.Infow("ota_update_finished", "size", size)
	s.journal.Record(ctx, models.EventUpdate, "firmware updated", map[string]any{"size": size, "md5": strings.ToLower(md5hex)})
	s.rebooter.Reboot("firmware update")
	return nil
}

func (s *FirmwareService) fail(phase UpdatePhase, err error) error {
	s.log.Errorw("ota_update_failed", "phase", phase, "err", err)
	return &UpdateError{Phase: phase, Err: err}
}

// progressReader logs progress in 10% steps and stops on cancellation.
type progressReader struct {
	r     io.Reader
	ctx   context.Context
	total int64
	read  int64
	step  int64
	log   *logger.Logger
}

func (p *progressReader) Read(b []byte) (int, error) {
	if err := p.ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.r.Read(b)
	p.read += int64(n)
	if pct := p.read * 100 / p.total; pct/10 > p.step && pct <= 100 {
		p.step = pct / 10
		p.log.Debugw("ota_progress", "percent", pct)
	}
	return n, err
}
