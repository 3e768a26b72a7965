package store

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMemory_SetMergesNamedKeysOnly(t *testing.T) {
	s := NewMemory(NewState("vehicle_num", "nsd"))
	s.Set(map[string]string{"nsd": "4.00"})

	want := map[string]string{"vehicle_num": "", "nsd": "4.00"}
	if diff := cmp.Diff(want, s.Get().Values); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
}

func TestMemory_GetReturnsCopy(t *testing.T) {
	s := NewMemory(NewState("a"))
	snap := s.Get()
	snap.Values["a"] = "mutated"
	snap.Errors["a"] = "boom"

	got := s.Get()
	if got.Value("a") != "" || got.Error("a") != "" {
		t.Fatalf("store leaked internal maps: %#v", got)
	}
}

func TestMemory_SetErrorAndClear(t *testing.T) {
	s := NewMemory(NewState("mobile"))
	s.SetError("mobile", "bad")
	if !s.Get().HasErrors() {
		t.Fatalf("expected error recorded")
	}
	s.SetError("mobile", "")
	if s.Get().HasErrors() {
		t.Fatalf("expected error cleared")
	}
	if _, ok := s.Get().Errors["mobile"]; ok {
		t.Fatalf("cleared error should be removed")
	}
}

func TestMemory_Reset(t *testing.T) {
	initial := NewState("mobile", "password")
	s := NewMemory(initial)
	s.Set(map[string]string{"mobile": "98765"})
	s.SetError("mobile", "bad")

	s.Reset(initial)
	if diff := cmp.Diff(initial, s.Get()); diff != "" {
		t.Fatalf("state mismatch after reset (-want +got):\n%s", diff)
	}
}

func TestMemory_ConcurrentSetsNeverLoseKeys(t *testing.T) {
	s := NewMemory(State{})
	var wg sync.WaitGroup
	for i := 0; i < 64; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Set(map[string]string{fmt.Sprintf("k%d", i): "v"})
		}(i)
	}
	wg.Wait()
	if got := len(s.Get().Values); got != 64 {
		t.Fatalf("expected 64 keys, got %d", got)
	}
}

func TestMemory_SubscribeReceivesSnapshots(t *testing.T) {
	s := NewMemory(NewState("nsd"))
	var seen []string
	unsubscribe := s.Subscribe(func(st State) {
		seen = append(seen, st.Value("nsd"))
	})

	s.Set(map[string]string{"nsd": "1"})
	s.Set(map[string]string{"nsd": "2"})
	unsubscribe()
	unsubscribe()
	s.Set(map[string]string{"nsd": "3"})

	if diff := cmp.Diff([]string{"1", "2"}, seen); diff != "" {
		t.Fatalf("observer calls mismatch (-want +got):\n%s", diff)
	}
}

func TestRegistry_SharedReturnsSameStore(t *testing.T) {
	reg := NewRegistry()
	a := reg.Shared("lowNsdFilter")
	b := reg.Shared(" lowNsdFilter ")
	a.Set(map[string]string{"nsd": "2.50"})
	if b.Get().Value("nsd") != "2.50" {
		t.Fatalf("expected shared store")
	}
	if diff := cmp.Diff([]string{"lowNsdFilter"}, reg.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}
