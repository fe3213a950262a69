package core

import (
	"context"
	"testing"
	"time"
)

func TestEngineRefreshAll(t *testing.T) {
	detector := NewDetector([]Probe{
		&stubProbe{backend: BackendOneAPI, rec: UsageRecord{TotalUsed: 1, Total: 6, Remaining: 5}},
	})

	e := NewEngine(detector, time.Minute)
	e.SetAccounts([]Account{
		{ID: "one", APIKey: "sk-1", Endpoint: "https://one.example.com"},
		{ID: "two", APIKey: "sk-2", Endpoint: "https://two.example.com"},
		{ID: "broken"},
	})

	var updated map[string]UsageRecord
	e.OnUpdate(func(records map[string]UsageRecord) { updated = records })

	e.RefreshAll(context.Background())

	records := e.Records()
	if len(records) != 3 {
		t.Fatalf("Records() has %d entries, want 3", len(records))
	}
	for _, id := range []string{"one", "two"} {
		rec, ok := records[id]
		if !ok {
			t.Fatalf("no record for account %q", id)
		}
		if rec.Backend != BackendOneAPI {
			t.Errorf("account %q Backend = %q, want %q", id, rec.Backend, BackendOneAPI)
		}
		if rec.Remaining != 5 {
			t.Errorf("account %q Remaining = %v, want 5", id, rec.Remaining)
		}
	}

	broken, ok := records["broken"]
	if !ok {
		t.Fatal("no record for unconfigured account")
	}
	if broken.Error != MsgNotConfigured {
		t.Errorf("unconfigured account Error = %q, want %q", broken.Error, MsgNotConfigured)
	}

	if updated == nil {
		t.Fatal("OnUpdate callback never fired")
	}
	if len(updated) != 3 {
		t.Errorf("OnUpdate delivered %d records, want 3", len(updated))
	}
}

func TestEngineRecordsReturnsCopy(t *testing.T) {
	detector := NewDetector([]Probe{&stubProbe{backend: BackendOneAPI}})
	e := NewEngine(detector, time.Minute)
	e.SetAccounts([]Account{{ID: "one", APIKey: "sk", Endpoint: "https://one.example.com"}})
	e.RefreshAll(context.Background())

	first := e.Records()
	first["one"] = UsageRecord{Error: "mutated"}

	if got := e.Records()["one"].Error; got == "mutated" {
		t.Error("Records() exposed internal map")
	}
}

func TestEngineRefreshDropsRemovedAccounts(t *testing.T) {
	probe := &stubProbe{backend: BackendOneAPI, rec: UsageRecord{Remaining: 5, Total: 6, TotalUsed: 1}}
	e := NewEngine(NewDetector([]Probe{probe}), time.Minute)
	e.SetAccounts([]Account{
		{ID: "one", APIKey: "sk-1", Endpoint: "https://one.example.com"},
		{ID: "two", APIKey: "sk-2", Endpoint: "https://two.example.com"},
	})
	e.RefreshAll(context.Background())

	e.SetAccounts([]Account{{ID: "one", APIKey: "sk-1", Endpoint: "https://one.example.com"}})
	e.RefreshAll(context.Background())

	records := e.Records()
	if len(records) != 1 {
		t.Fatalf("Records() has %d entries, want 1 after account removal", len(records))
	}
	if _, ok := records["two"]; ok {
		t.Error("record for removed account survived refresh")
	}
}

func TestEngineRefreshReplacesStaleRecord(t *testing.T) {
	probe := &stubProbe{backend: BackendOneAPI, rec: UsageRecord{Remaining: 5, Total: 6, TotalUsed: 1}}
	e := NewEngine(NewDetector([]Probe{probe}), time.Minute)
	e.SetAccounts([]Account{{ID: "one", APIKey: "sk", Endpoint: "https://one.example.com"}})

	e.RefreshAll(context.Background())
	probe.rec = UsageRecord{Remaining: 2, Total: 6, TotalUsed: 4}
	e.RefreshAll(context.Background())

	rec := e.Records()["one"]
	if rec.Remaining != 2 || rec.TotalUsed != 4 {
		t.Errorf("stale record survived refresh: %+v", rec)
	}
	if probe.calls != 2 {
		t.Errorf("probe calls = %d, want 2", probe.calls)
	}
}
