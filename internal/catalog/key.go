package catalog

import "fmt"

// EmptyRevisionKey is the key of a missing revision.
const EmptyRevisionKey = "0x0"

// RevisionKey derives the sort key of a firmware revision such as "100a".
//
// The first four characters are packed into a 32-bit value: three digits at
// bit offsets 24, 20 and 16 and a letter at offset 8. Characters are not range
// checked, out of range input yields a stable but meaningless key. The value
// is rendered as unpadded lower case hex with a 0x prefix.
func RevisionKey(revision string) (string, error) {
	if revision == "" {
		return EmptyRevisionKey, nil
	}
	v, err := firmwareRevision(revision)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0x%x", v), nil
}

func firmwareRevision(revision string) (uint32, error) {
	r := []rune(revision)
	if len(r) < 4 {
		return 0, &MalformedRevisionError{Revision: revision}
	}
	return uint32((r[0]-0x30)<<24) +
		uint32((r[1]-0x30)<<20) +
		uint32((r[2]-0x30)<<16) +
		uint32((r[3]-0x60)<<8), nil
}
