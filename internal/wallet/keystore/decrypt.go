package keystore

import (
	"crypto/aes"
	"crypto/subtle"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"
	"golang.org/x/crypto/scrypt"
)

// minDKLen is the smallest derived key that holds both the AES key and the MAC key.
const minDKLen = 32

// decryptKeystore decrypts a mnemonic from a keystore v3 style JSON document
func (s *service) decryptKeystore(blob []byte, passphrase string) ([]byte, error) {
	if passphrase == "" {
		return nil, errors.WithStack(ErrInvalidKey)
	}

	var doc KeystoreJSON
	if err := json.Unmarshal(blob, &doc); err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}

	if doc.Crypto.Cipher != keystoreCipher || doc.Crypto.KDF != keystoreKDF {
		return nil, errors.Wrapf(ErrMalformed, "unsupported cipher %q / kdf %q", doc.Crypto.Cipher, doc.Crypto.KDF)
	}
	if doc.Crypto.KDFParams.DKLen < minDKLen {
		return nil, errors.Wrapf(ErrMalformed, "derived key length %d", doc.Crypto.KDFParams.DKLen)
	}

	salt, err := hex.DecodeString(doc.Crypto.KDFParams.Salt)
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, "salt is not hex")
	}

	//nolint:varnamelen // iv is a common abbreviation for initialization vector
	iv, err := hex.DecodeString(doc.Crypto.CipherParams.IV)
	if err != nil || len(iv) != aes.BlockSize {
		return nil, errors.Wrap(ErrMalformed, "iv must be 16 hex encoded bytes")
	}

	ciphertext, err := hex.DecodeString(doc.Crypto.Ciphertext)
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, "ciphertext is not hex")
	}

	expectedMAC, err := hex.DecodeString(doc.Crypto.MAC)
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, "mac is not hex")
	}

	p := doc.Crypto.KDFParams
	derivedKey, err := scrypt.Key([]byte(passphrase), salt, p.N, p.R, p.P, p.DKLen)
	if err != nil {
		return nil, errors.Wrap(ErrMalformed, err.Error())
	}
	defer zero(derivedKey)

	mac := calculateMAC(derivedKey[16:32], ciphertext)
	if subtle.ConstantTimeCompare(mac, expectedMAC) != 1 {
		return nil, errors.WithStack(ErrAuthentication)
	}

	plaintext, err := xorAES128CTR(derivedKey[:16], iv, ciphertext)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt mnemonic: %w", err)
	}

	return plaintext, nil
}
