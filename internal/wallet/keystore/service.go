package keystore

import (
	"bytes"

	"github.com/pkg/errors"
)

type service struct {
	scrypt ScryptParams
}

// NewService creates a keystore service using the default scrypt cost for new
// keystore files.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewService() Service {
	return NewServiceWithParams(DefaultScryptParams())
}

// NewServiceWithParams creates a keystore service with explicit scrypt parameters.
// Decryption always uses the parameters recorded in the keystore document.
//
//nolint:ireturn // Returning interface is intentional for dependency injection
func NewServiceWithParams(params ScryptParams) Service {
	return &service{scrypt: params}
}

// ParseFormat validates a configured format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatAuto, FormatFernet, FormatKeystore:
		return f, nil
	default:
		return FormatAuto, errors.Wrapf(ErrUnknownFormat, "%q", s)
	}
}

// DetectFormat guesses the format of blob.
func DetectFormat(blob []byte) Format {
	if bytes.HasPrefix(bytes.TrimSpace(blob), []byte("{")) {
		return FormatKeystore
	}

	return FormatFernet
}

func (s *service) Encrypt(plaintext []byte, key string, format Format) ([]byte, error) {
	switch format {
	case FormatAuto, FormatFernet:
		return encryptFernet(plaintext, key)
	case FormatKeystore:
		return s.encryptKeystore(plaintext, key)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func (s *service) Decrypt(blob []byte, key string, format Format) ([]byte, error) {
	if format == FormatAuto {
		format = DetectFormat(blob)
	}

	switch format {
	case FormatFernet:
		return decryptFernet(blob, key)
	case FormatKeystore:
		return s.decryptKeystore(blob, key)
	default:
		return nil, errors.Wrapf(ErrUnknownFormat, "%q", format)
	}
}

func (s *service) GenerateFernetKey() (string, error) {
	return generateFernetKey()
}
