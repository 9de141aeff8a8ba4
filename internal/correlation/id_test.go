package correlation

import (
	"regexp"
	"testing"
)

var uuidV4Pattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-4[0-9a-f]{3}-[89ab][0-9a-f]{3}-[0-9a-f]{12}$`)

func TestNewID_Layout(t *testing.T) {
	for range 100 {
		id := NewID()
		if len(id) != 36 {
			t.Fatalf("unexpected length %d: %s", len(id), id)
		}
		if !uuidV4Pattern.MatchString(id) {
			t.Fatalf("not a version 4 uuid: %s", id)
		}
	}
}

func TestNewID_Unique(t *testing.T) {
	seen := make(map[string]struct{}, 1000)
	for range 1000 {
		id := NewID()
		if _, ok := seen[id]; ok {
			t.Fatalf("duplicate id: %s", id)
		}
		seen[id] = struct{}{}
	}
}
