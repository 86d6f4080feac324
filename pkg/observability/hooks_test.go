package observability

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	r := NoopRenderHooks{}
	r.OnRunStart(ctx, 6)
	r.OnFigureStart(ctx, "architecture")
	r.OnFigureComplete(ctx, "architecture", false, time.Second, nil)
	r.OnRunComplete(ctx, 5, 1, time.Second, nil)

	c := NoopCacheHooks{}
	c.OnCacheHit(ctx, "figure")
	c.OnCacheMiss(ctx, "figure")
	c.OnCacheSet(ctx, "figure", 1024)

	s := NoopServerHooks{}
	s.OnRequest(ctx, "GET", "/figures")
	s.OnResponse(ctx, "GET", "/figures", 200, time.Millisecond)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Cache().(NoopCacheHooks); !ok {
		t.Error("Cache() should return NoopCacheHooks by default")
	}
	if _, ok := Server().(NoopServerHooks); !ok {
		t.Error("Server() should return NoopServerHooks by default")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customCache := &testCacheHooks{}
	SetCacheHooks(customCache)
	if Cache() != customCache {
		t.Error("SetCacheHooks should set custom hooks")
	}

	customServer := &testServerHooks{}
	SetServerHooks(customServer)
	if Server() != customServer {
		t.Error("SetServerHooks should set custom hooks")
	}

	Reset()
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Reset() should restore NoopRenderHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testRenderHooks{}
	SetRenderHooks(custom)
	SetRenderHooks(nil)

	if Render() != custom {
		t.Error("SetRenderHooks(nil) should be ignored")
	}

	Reset()
}

func TestCounters(t *testing.T) {
	ctx := context.Background()
	var c Counters

	c.OnFigureStart(ctx, "a")
	c.OnFigureComplete(ctx, "a", false, 20*time.Millisecond, nil)
	c.OnFigureStart(ctx, "b")
	c.OnFigureComplete(ctx, "b", true, time.Millisecond, nil)
	c.OnFigureStart(ctx, "c")
	c.OnFigureComplete(ctx, "c", false, time.Millisecond, errors.New("boom"))
	c.OnCacheMiss(ctx, "figure")
	c.OnCacheHit(ctx, "figure")
	c.OnCacheSet(ctx, "figure", 300)
	c.OnCacheSet(ctx, "figure", 200)

	tests := []struct {
		name string
		got  int64
		want int64
	}{
		{"Started", c.Started.Load(), 3},
		{"Rendered", c.Rendered.Load(), 1},
		{"Restored", c.Restored.Load(), 1},
		{"Failed", c.Failed.Load(), 1},
		{"Hits", c.Hits.Load(), 1},
		{"Misses", c.Misses.Load(), 1},
		{"Sets", c.Sets.Load(), 2},
		{"BytesSet", c.BytesSet.Load(), 500},
	}
	for _, tt := range tests {
		if tt.got != tt.want {
			t.Errorf("%s = %d, want %d", tt.name, tt.got, tt.want)
		}
	}
	if c.DrawTime() != 20*time.Millisecond {
		t.Errorf("DrawTime() = %v, want 20ms", c.DrawTime())
	}
}

// Test implementations
type testRenderHooks struct{ NoopRenderHooks }
type testCacheHooks struct{ NoopCacheHooks }
type testServerHooks struct{ NoopServerHooks }
