package address

import (
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ParsePath parses a BIP32 path string into child indices.
// Example: "m/44'/0'/0'/0/5" -> [2147483692, 2147483648, 2147483648, 0, 5]
// Both ' and h mark a hardened segment.
func ParsePath(path string) ([]uint32, error) {
	path = strings.TrimSpace(path)
	if path != "m" && !strings.HasPrefix(path, "m/") {
		return nil, errors.Wrapf(ErrInvalidPath, "%q must start with m/", path)
	}

	rest := strings.TrimPrefix(strings.TrimPrefix(path, "m"), "/")
	if rest == "" {
		return []uint32{}, nil
	}

	parts := strings.Split(rest, "/")
	indices := make([]uint32, 0, len(parts))
	for _, part := range parts {
		hardened := false
		if strings.HasSuffix(part, "'") || strings.HasSuffix(part, "h") || strings.HasSuffix(part, "H") {
			hardened = true
			part = part[:len(part)-1]
		}

		index, err := strconv.ParseUint(part, 10, 32)
		if err != nil || uint32(index) >= HardenedOffset {
			return nil, errors.Wrapf(ErrInvalidPath, "segment %q of %q", part, path)
		}

		if hardened {
			index += uint64(HardenedOffset)
		}

		indices = append(indices, uint32(index))
	}

	return indices, nil
}

// JoinPath appends a non-hardened index to base.
func JoinPath(base string, index uint32) string {
	return strings.TrimSuffix(base, "/") + "/" + strconv.FormatUint(uint64(index), 10)
}
