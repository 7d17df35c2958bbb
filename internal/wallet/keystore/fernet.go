package keystore

import (
	"bytes"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/pkg/errors"
)

// noExpiry disables the token age check in VerifyAndDecrypt.
const noExpiry time.Duration = -1

func fernetKey(key string) (*fernet.Key, error) {
	k, err := fernet.DecodeKey(string(bytes.TrimSpace([]byte(key))))
	if err != nil {
		// the decode error may echo key material, drop it
		return nil, errors.WithStack(ErrInvalidKey)
	}

	return k, nil
}

func encryptFernet(plaintext []byte, key string) ([]byte, error) {
	k, err := fernetKey(key)
	if err != nil {
		return nil, err
	}

	tok, err := fernet.EncryptAndSign(plaintext, k)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encrypt with fernet")
	}

	return tok, nil
}

// decryptFernet verifies and opens a Fernet token. Tokens never expire here: the
// seed file is written once at deployment time.
func decryptFernet(blob []byte, key string) ([]byte, error) {
	k, err := fernetKey(key)
	if err != nil {
		return nil, err
	}

	msg := fernet.VerifyAndDecrypt(bytes.TrimSpace(blob), noExpiry, []*fernet.Key{k})
	if msg == nil {
		return nil, errors.WithStack(ErrAuthentication)
	}

	return msg, nil
}

func generateFernetKey() (string, error) {
	var k fernet.Key
	if err := k.Generate(); err != nil {
		return "", errors.Wrap(err, "failed to generate fernet key")
	}

	return k.Encode(), nil
}
