package booking

import (
	"encoding/binary"
	"fmt"

	"github.com/google/uuid"
)

// Number generates a booking confirmation number in the form ABC12345:
// three uppercase letters followed by five digits, each derived from fresh
// UUID bits. Collisions are possible; the stores treat the number as an
// opaque key, not a guarantee of uniqueness.
func Number() string {
	letters := make([]byte, 3)
	for i := range letters {
		u := uuid.New()
		letters[i] = 'A' + byte(binary.BigEndian.Uint32(u[:4])%26)
	}

	u := uuid.New()
	digits := binary.BigEndian.Uint32(u[:4]) % 100000

	return fmt.Sprintf("%s%05d", letters, digits)
}
