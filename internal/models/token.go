package models

import (
	"crypto/rand"
	"crypto/sha256"
	"database/sql/driver"
	"encoding/base64"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/crypto/nacl/secretbox"
)

const nonceSize = 24

var (
	tokenKeyMu sync.RWMutex
	tokenKey   = deriveKey("CHANGE_ME")
)

// SetTokenSecret replaces the secret used to seal access tokens.
func SetTokenSecret(secret string) {
	tokenKeyMu.Lock()
	defer tokenKeyMu.Unlock()
	tokenKey = deriveKey(secret)
}

func deriveKey(secret string) [32]byte {
	return sha256.Sum256([]byte(secret))
}

func currentKey() [32]byte {
	tokenKeyMu.RLock()
	defer tokenKeyMu.RUnlock()
	return tokenKey
}

// EncryptedString is stored sealed with secretbox and base64 encoded.
type EncryptedString string

func (s EncryptedString) Value() (driver.Value, error) {
	sealed, err := Seal(string(s))
	if err != nil {
		return nil, err
	}
	return sealed, nil
}

func (s *EncryptedString) Scan(src any) error {
	var text string
	switch v := src.(type) {
	case string:
		text = v
	case []byte:
		text = string(v)
	default:
		return fmt.Errorf("cannot scan %T into EncryptedString", src)
	}
	plain, err := Open(text)
	if err != nil {
		return err
	}
	*s = EncryptedString(plain)
	return nil
}

// Seal encrypts plaintext with the current token secret.
func Seal(plaintext string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := rand.Read(nonce[:]); err != nil {
		return "", fmt.Errorf("failed to read nonce: %w", err)
	}
	key := currentKey()
	box := secretbox.Seal(nonce[:], []byte(plaintext), &nonce, &key)
	return base64.StdEncoding.EncodeToString(box), nil
}

// Open decrypts a value produced by Seal.
func Open(sealed string) (string, error) {
	box, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", fmt.Errorf("failed to decode sealed token: %w", err)
	}
	if len(box) < nonceSize+secretbox.Overhead {
		return "", errors.New("sealed token too short")
	}
	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	key := currentKey()
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &key)
	if !ok {
		return "", errors.New("failed to open sealed token")
	}
	return string(plain), nil
}

// RemoteToken is an access credential of a RemoteAccount, keyed by
// (RemoteAccountID, TokenType). Deleting the account deletes its tokens.
type RemoteToken struct {
	RemoteAccountID int64
	TokenType       string
	AccessToken     EncryptedString
	// Secret is only used by OAuth 1.
	Secret  string
	Created time.Time
	Updated time.Time
}

func NewRemoteToken(remoteAccountID int64, accessToken string, now time.Time) *RemoteToken {
	return &RemoteToken{
		RemoteAccountID: remoteAccountID,
		TokenType:       "",
		AccessToken:     EncryptedString(accessToken),
		Secret:          "",
		Created:         now,
		Updated:         now,
	}
}
