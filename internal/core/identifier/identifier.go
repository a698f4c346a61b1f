// Package identifier renders and parses SAPN part numbers.
//
// Wire format: SAPN-{CCC}-{SS}-{NNNNN}, where NNNNN is the zero-padded
// sequence within the (CCC, SS) partition. Fixed-width padding makes the
// lexicographic order of identifiers in one partition match sequence order.
package identifier

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"

	"github.com/still-asking/sapn-generator/internal/core/partition"
)

const (
	// Scheme is the literal leading token of every identifier.
	Scheme = "SAPN"

	// MaxSequence is the per-partition ceiling. Fixed; never wraps.
	MaxSequence = 99999

	sequenceWidth = 5
)

var (
	// ErrSequenceOutOfRange is returned by Format for sequences outside [1, MaxSequence].
	ErrSequenceOutOfRange = errors.New("sequence out of range")
	// ErrMalformed is returned by Parse for strings not in the SAPN grammar.
	ErrMalformed = errors.New("malformed identifier")

	grammar = regexp.MustCompile(`^SAPN-([A-Z]{3})-([0-9]{2})-([0-9]{5})$`)
)

// Identifier is a rendered SAPN part number.
type Identifier string

func (id Identifier) String() string { return string(id) }

// Prefix returns the text every identifier under key begins with.
func Prefix(key partition.Key) string {
	return Scheme + "-" + key.Category + "-" + key.Subcategory + "-"
}

// Format renders key and seq. seq must be in [1, MaxSequence].
func Format(key partition.Key, seq int) (Identifier, error) {
	if seq < 1 || seq > MaxSequence {
		return "", fmt.Errorf("%w: %d not in [1, %d]", ErrSequenceOutOfRange, seq, MaxSequence)
	}
	return Identifier(fmt.Sprintf("%s%0*d", Prefix(key), sequenceWidth, seq)), nil
}

// ParseSequence returns the numeric suffix of id when id belongs to key's
// partition and the suffix is exactly five ASCII digits. Anything else belongs
// to a different or foreign scheme and reports false.
func ParseSequence(id string, key partition.Key) (int, bool) {
	prefix := Prefix(key)
	if len(id) != len(prefix)+sequenceWidth || id[:len(prefix)] != prefix {
		return 0, false
	}
	suffix := id[len(prefix):]
	for i := 0; i < len(suffix); i++ {
		if suffix[i] < '0' || suffix[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(suffix)
	if err != nil {
		return 0, false
	}
	return n, true
}

// NextSequence returns one past the highest sequence among ids that parse
// under key, or 1 when none do. The result may exceed MaxSequence; callers
// must check before formatting.
func NextSequence(ids []string, key partition.Key) int {
	highest := 0
	for _, id := range ids {
		if n, ok := ParseSequence(id, key); ok && n > highest {
			highest = n
		}
	}
	return highest + 1
}

// Parse splits a full identifier into its partition key and sequence.
func Parse(s string) (partition.Key, int, error) {
	m := grammar.FindStringSubmatch(s)
	if m == nil {
		return partition.Key{}, 0, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	key := partition.Key{Category: m[1], Subcategory: m[2]}
	seq, _ := strconv.Atoi(m[3])
	return key, seq, nil
}
