package bigcache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestSetGetDel(t *testing.T) {
	ctx := context.Background()
	p, err := New(ctx, Config{LifeWindow: time.Minute})
	if err != nil {
		t.Fatal(err)
	}
	defer p.Close(ctx)

	if _, hit, err := p.Get(ctx, "missing"); hit || err != nil {
		t.Fatalf("miss: hit=%v err=%v", hit, err)
	}
	val := []byte{0x00, 0xFF, 0x10}
	if ok, err := p.Set(ctx, "seed:ns:1", val, 3, time.Second); err != nil || !ok {
		t.Fatalf("Set: ok=%v err=%v", ok, err)
	}
	got, hit, err := p.Get(ctx, "seed:ns:1")
	if err != nil || !hit || !bytes.Equal(got, val) {
		t.Fatalf("Get: hit=%v err=%v got=%x", hit, err, got)
	}
	if err := p.Del(ctx, "seed:ns:1"); err != nil {
		t.Fatal(err)
	}
	// Deleting a missing key is not an error.
	if err := p.Del(ctx, "seed:ns:1"); err != nil {
		t.Fatalf("second Del: %v", err)
	}
}
