package timeline

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestEventJSONOmitsClusterForPrimary(t *testing.T) {
	e := Event{RunID: "r1", Seq: 1, Kind: KindPrimary, Timestamp: time.Unix(0, 0).UTC(), IntervalMinutes: 12.5}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), `"cluster"`) {
		t.Fatalf("primary event carries cluster field: %s", b)
	}
	if !strings.Contains(string(b), `"kind":"primary"`) {
		t.Fatalf("missing kind: %s", b)
	}
	e.Kind = KindClusterMember
	e.Cluster = 2
	b, _ = json.Marshal(e)
	if !strings.Contains(string(b), `"cluster":2`) {
		t.Fatalf("member event missing cluster ordinal: %s", b)
	}
}
