package util

import "testing"

func TestEntryIDIsStableAndShort(t *testing.T) {
	a := EntryID([]byte("CARDAMOMO"))
	if len(a) != 16 || !ValidID(a) {
		t.Fatalf("bad id %q", a)
	}
	if a != EntryID([]byte("CARDAMOMO")) {
		t.Fatalf("id not stable")
	}
	if a == EntryID([]byte("CARDAMOMo")) {
		t.Fatalf("distinct inputs share an id")
	}
	if !ValidID(EntryID(nil)) {
		t.Fatalf("empty input id")
	}
}

func TestValidID(t *testing.T) {
	for _, id := range []string{"", "abc", "zzzzzzzzzzzzzzzz", "0123456789abcdef0"} {
		if ValidID(id) {
			t.Fatalf("%q accepted", id)
		}
	}
}

func TestKeys(t *testing.T) {
	if got := SeedKey("http", "00ff"); got != "seed:http:00ff" {
		t.Fatalf("seed key %q", got)
	}
	if got := IndexKey("http"); got != "index:http" {
		t.Fatalf("index key %q", got)
	}
	if got := SeedPattern("http"); got != "seed:http:*" {
		t.Fatalf("seed pattern %q", got)
	}
}
