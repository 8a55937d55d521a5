// Package export seals account data into a passphrase-protected file
// for transfer between machines. Keys derive from the passphrase with
// Argon2id and the payload is encrypted with AES-256-GCM.
package export

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"errors"
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"go.uber.org/zap"
	"golang.org/x/crypto/argon2"

	"github.com/alitenna123lyr-svg/g-account-manager-sub000/internal/model"
)

// ErrMalformed marks export files that cannot be parsed.
var ErrMalformed = errors.New("malformed export file")

// ErrWrongPassphrase marks decryption failures. GCM authentication does
// not distinguish a wrong passphrase from a corrupted payload.
var ErrWrongPassphrase = errors.New("wrong passphrase or corrupted data")

const (
	formatVersion = 1

	saltLen     = 16
	kdfTime     = uint32(3)
	kdfMemoryKB = uint32(64 * 1024)
	kdfThreads  = uint8(4)
	keyLen      = uint32(32)
)

// envelope is the on-disk export format. Byte fields serialize as
// base64 so the file stays a single readable JSON document.
type envelope struct {
	Version  int    `json:"version"`
	KDF      string `json:"kdf"`
	Cipher   string `json:"cipher"`
	Salt     []byte `json:"salt"`
	Time     uint32 `json:"time"`
	MemoryKB uint32 `json:"memory_kb"`
	Threads  uint8  `json:"threads"`
	Data     []byte `json:"data"`
}

// Exporter seals and opens encrypted state exports.
type Exporter struct {
	log *zap.Logger
}

func New(log *zap.Logger) *Exporter {
	if log == nil {
		log = zap.NewNop()
	}
	return &Exporter{log: log}
}

// Seal serializes state and encrypts it under the passphrase.
func (e *Exporter) Seal(state *model.State, passphrase string) ([]byte, error) {
	plaintext, err := json.Marshal(state)
	if err != nil {
		return nil, err
	}

	salt := make([]byte, saltLen)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("generating salt: %w", err)
	}

	key := deriveKey(passphrase, salt)
	defer wipeBytes(key)

	ciphertext, err := encrypt(key, plaintext)
	if err != nil {
		return nil, err
	}

	e.log.Info("sealed export",
		zap.Int("accounts", len(state.Accounts)),
		zap.Int("groups", len(state.Groups)))

	return json.MarshalIndent(envelope{
		Version:  formatVersion,
		KDF:      "argon2id",
		Cipher:   "aes-256-gcm",
		Salt:     salt,
		Time:     kdfTime,
		MemoryKB: kdfMemoryKB,
		Threads:  kdfThreads,
		Data:     ciphertext,
	}, "", "  ")
}

// Open decrypts an export produced by Seal and returns the contained
// state, normalized for use.
func (e *Exporter) Open(data []byte, passphrase string) (*model.State, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if env.Version != formatVersion || len(env.Salt) == 0 || len(env.Data) == 0 {
		return nil, ErrMalformed
	}

	key := argon2.IDKey([]byte(passphrase), env.Salt, env.Time, env.MemoryKB, env.Threads, keyLen)
	defer wipeBytes(key)

	plaintext, err := decrypt(key, env.Data)
	if err != nil {
		return nil, ErrWrongPassphrase
	}

	state := model.NewState()
	if err := json.Unmarshal(plaintext, state); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	state.Normalize()
	return state, nil
}

// SealToFile writes an encrypted export to path with private permissions.
func (e *Exporter) SealToFile(state *model.State, passphrase, path string) error {
	data, err := e.Seal(state, passphrase)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0600)
}

// OpenFile reads and decrypts an export file.
func (e *Exporter) OpenFile(path, passphrase string) (*model.State, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return e.Open(data, passphrase)
}

func deriveKey(passphrase string, salt []byte) []byte {
	return argon2.IDKey([]byte(passphrase), salt, kdfTime, kdfMemoryKB, kdfThreads, keyLen)
}

func encrypt(key, plaintext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	nonce := make([]byte, gcm.NonceSize())
	if _, err := rand.Read(nonce); err != nil {
		return nil, err
	}
	return gcm.Seal(nonce, nonce, plaintext, nil), nil
}

func decrypt(key, ciphertext []byte) ([]byte, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}
	if len(ciphertext) < gcm.NonceSize() {
		return nil, ErrMalformed
	}
	nonce, rest := ciphertext[:gcm.NonceSize()], ciphertext[gcm.NonceSize():]
	return gcm.Open(nil, nonce, rest, nil)
}

// wipeBytes zeroes key material once it is no longer needed.
func wipeBytes(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
