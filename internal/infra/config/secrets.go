package config

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/crypto/argon2"

	"zeroclaw/internal/domain"
)

const (
	// encPrefix marks a field value as encrypted at rest.
	encPrefix = "enc2:"
	// SecretKeyFile holds the hex passphrase next to the config document.
	SecretKeyFile = ".secret_key"
)

// IsEncrypted reports whether v carries the encrypted-value prefix.
func IsEncrypted(v string) bool {
	return strings.HasPrefix(v, encPrefix)
}

// EncryptValue encrypts a value using AES-256-GCM with an Argon2id-derived key.
func EncryptValue(plaintext, passphrase string) (string, error) {
	salt := make([]byte, 16)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("generate nonce: %w", err)
	}

	sealed := gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	// enc2: + hex(salt) + ":" + hex(nonce+ciphertext)
	return encPrefix + hex.EncodeToString(salt) + ":" + hex.EncodeToString(sealed), nil
}

// DecryptValue reverses EncryptValue.
func DecryptValue(encrypted, passphrase string) (string, error) {
	parts := strings.SplitN(strings.TrimPrefix(encrypted, encPrefix), ":", 2)
	if len(parts) != 2 {
		return "", fmt.Errorf("invalid encrypted format")
	}
	salt, err := hex.DecodeString(parts[0])
	if err != nil {
		return "", fmt.Errorf("decode salt: %w", err)
	}
	data, err := hex.DecodeString(parts[1])
	if err != nil {
		return "", fmt.Errorf("decode ciphertext: %w", err)
	}

	gcm, err := newGCM(passphrase, salt)
	if err != nil {
		return "", err
	}
	if len(data) < gcm.NonceSize() {
		return "", fmt.Errorf("ciphertext too short")
	}
	nonce, ciphertext := data[:gcm.NonceSize()], data[gcm.NonceSize():]
	plaintext, err := gcm.Open(nil, nonce, ciphertext, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrDecryption, err)
	}
	return string(plaintext), nil
}

func newGCM(passphrase string, salt []byte) (cipher.AEAD, error) {
	key := argon2.IDKey([]byte(passphrase), salt, 1, 64*1024, 4, 32)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}

// secretKey returns the passphrase stored in dir, creating it when create is set.
func secretKey(dir string, create bool) (string, error) {
	path := filepath.Join(dir, SecretKeyFile)
	data, err := os.ReadFile(path)
	if err == nil {
		return strings.TrimSpace(string(data)), nil
	}
	if !os.IsNotExist(err) || !create {
		return "", fmt.Errorf("read secret key: %w", err)
	}

	raw := make([]byte, 32)
	if _, err := io.ReadFull(rand.Reader, raw); err != nil {
		return "", fmt.Errorf("generate secret key: %w", err)
	}
	key := hex.EncodeToString(raw)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(key), 0o600); err != nil {
		return "", fmt.Errorf("write secret key: %w", err)
	}
	return key, nil
}

// secretFields returns pointers to every populated secret-bearing field.
func secretFields(cfg *Config) []*string {
	var out []*string
	add := func(p *string) {
		if p != nil && *p != "" {
			out = append(out, p)
		}
	}
	add(cfg.APIKey)
	add(cfg.Composio.APIKey)

	ch := &cfg.Channels
	if ch.Telegram != nil {
		add(&ch.Telegram.BotToken)
	}
	if ch.Discord != nil {
		add(&ch.Discord.BotToken)
	}
	if ch.Slack != nil {
		add(&ch.Slack.BotToken)
		add(ch.Slack.AppToken)
	}
	if ch.Matrix != nil {
		add(&ch.Matrix.AccessToken)
	}
	if ch.WhatsApp != nil {
		add(ch.WhatsApp.AccessToken)
		add(ch.WhatsApp.AppSecret)
	}
	if ch.Linq != nil {
		add(&ch.Linq.APIToken)
		add(ch.Linq.SigningSecret)
	}
	if ch.IRC != nil {
		add(ch.IRC.ServerPassword)
		add(ch.IRC.NickservPassword)
	}
	if ch.Webhook != nil {
		add(ch.Webhook.Secret)
	}
	if ch.NextcloudTalk != nil {
		add(&ch.NextcloudTalk.AppToken)
		add(ch.NextcloudTalk.WebhookSecret)
	}
	if ch.DingTalk != nil {
		add(&ch.DingTalk.ClientSecret)
	}
	if ch.QQ != nil {
		add(&ch.QQ.AppSecret)
	}
	if ch.Lark != nil {
		add(&ch.Lark.AppSecret)
		add(ch.Lark.EncryptKey)
	}
	if ch.Feishu != nil {
		add(&ch.Feishu.AppSecret)
		add(ch.Feishu.EncryptKey)
	}
	if ch.Nostr != nil {
		add(&ch.Nostr.PrivateKey)
	}

	if cfg.Tunnel.Cloudflare != nil {
		add(&cfg.Tunnel.Cloudflare.Token)
	}
	if cfg.Tunnel.Ngrok != nil {
		add(&cfg.Tunnel.Ngrok.AuthToken)
	}
	return out
}

// encryptSecrets encrypts plaintext secret fields in place. Values that are
// already encrypted are left alone.
func encryptSecrets(cfg *Config) error {
	fields := secretFields(cfg)
	pending := fields[:0]
	for _, f := range fields {
		if !IsEncrypted(*f) {
			pending = append(pending, f)
		}
	}
	if len(pending) == 0 {
		return nil
	}
	key, err := secretKey(cfg.Dir(), true)
	if err != nil {
		return err
	}
	for _, f := range pending {
		enc, err := EncryptValue(*f, key)
		if err != nil {
			return fmt.Errorf("encrypt secret: %w", err)
		}
		*f = enc
	}
	return nil
}

// decryptSecrets decrypts every enc2: field in place.
func decryptSecrets(cfg *Config) error {
	var key string
	for _, f := range secretFields(cfg) {
		if !IsEncrypted(*f) {
			continue
		}
		if key == "" {
			k, err := secretKey(cfg.Dir(), false)
			if err != nil {
				return domain.NewDomainError("config.decryptSecrets", domain.ErrDecryption, err.Error())
			}
			key = k
		}
		plain, err := DecryptValue(*f, key)
		if err != nil {
			return err
		}
		*f = plain
	}
	return nil
}
