package services

import (
	"strconv"
	"strings"
)

// ParseIDList splits "2, 5,5" into [2 5]. Blank entries are skipped,
// duplicates collapse, order of first appearance is kept.
func ParseIDList(raw string) ([]uint, error) {
	var ids []uint
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.ParseUint(part, 10, 64)
		if err != nil || n == 0 {
			return nil, NewValidationError("room_amenities", "must be a comma separated list of ids")
		}
		ids = append(ids, uint(n))
	}
	return dedupeIDs(ids), nil
}

func parseAmenityIDs(raw *string) ([]uint, error) {
	if raw == nil {
		return nil, nil
	}
	return ParseIDList(*raw)
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
