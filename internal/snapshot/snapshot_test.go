package snapshot

import (
	"testing"
	"time"

	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/engine"
	"github.com/SixpoundertheOriginal/yodel-aso-insight-development-sub000/internal/kpi"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(":memory:")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return st
}

func testEvaluation(appID string, ranking float64, at time.Time) *engine.Evaluation {
	return &engine.Evaluation{
		AppID:           appID,
		Name:            "Lingo",
		Locale:          "en-US",
		Platform:        "app_store",
		EngineVersion:   1,
		EvaluatedAt:     at,
		RankingScore:    ranking,
		ConversionScore: 55,
		KPIs: &kpi.Result{
			Version: 1,
			Vector:  []float64{80, 75, 60},
			Overall: 71.5,
		},
	}
}

func TestOpenCreatesSchema(t *testing.T) {
	st := openTestStore(t)

	var name string
	err := st.db.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='snapshots'",
	).Scan(&name)
	if err != nil {
		t.Fatalf("snapshots table not created: %v", err)
	}
}

func TestSaveAndHistory(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, score := range []float64{60, 65, 72} {
		rec, err := st.Save(testEvaluation("app-lingo", score, base.Add(time.Duration(i)*time.Hour)))
		if err != nil {
			t.Fatalf("Save %d: %v", i, err)
		}
		if rec.ID == "" {
			t.Fatal("saved record has empty id")
		}
	}
	if _, err := st.Save(testEvaluation("app-other", 40, base)); err != nil {
		t.Fatal(err)
	}

	records, err := st.History("app-lingo", 10)
	if err != nil {
		t.Fatalf("History: %v", err)
	}
	if len(records) != 3 {
		t.Fatalf("history = %d records, want 3", len(records))
	}
	// Newest first.
	if records[0].RankingScore != 72 || records[2].RankingScore != 60 {
		t.Errorf("history order = [%v, %v, %v], want [72, 65, 60]",
			records[0].RankingScore, records[1].RankingScore, records[2].RankingScore)
	}
	if len(records[0].Vector) != 3 {
		t.Errorf("vector round trip = %d values, want 3", len(records[0].Vector))
	}
	if records[0].AppID != "app-lingo" {
		t.Errorf("app filter leaked: got %q", records[0].AppID)
	}
}

func TestHistoryLimit(t *testing.T) {
	st := openTestStore(t)

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		if _, err := st.Save(testEvaluation("app-lingo", float64(50+i), base.Add(time.Duration(i)*time.Minute))); err != nil {
			t.Fatal(err)
		}
	}

	records, err := st.History("app-lingo", 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 2 {
		t.Errorf("limited history = %d records, want 2", len(records))
	}
}

func TestLatest(t *testing.T) {
	st := openTestStore(t)

	if _, ok, err := st.Latest("app-none"); err != nil || ok {
		t.Errorf("Latest on empty store = ok %v err %v, want false nil", ok, err)
	}

	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	st.Save(testEvaluation("app-lingo", 60, base))
	st.Save(testEvaluation("app-lingo", 68, base.Add(time.Hour)))

	rec, ok, err := st.Latest("app-lingo")
	if err != nil {
		t.Fatal(err)
	}
	if !ok || rec.RankingScore != 68 {
		t.Errorf("Latest = (%v, %v), want score 68", rec.RankingScore, ok)
	}
}

func TestEvaluationRoundTrip(t *testing.T) {
	st := openTestStore(t)

	ev := testEvaluation("app-lingo", 61, time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	rec, err := st.Save(ev)
	if err != nil {
		t.Fatal(err)
	}

	back, err := st.Evaluation(rec.ID)
	if err != nil {
		t.Fatalf("Evaluation: %v", err)
	}
	if back.AppID != ev.AppID || back.RankingScore != ev.RankingScore {
		t.Error("persisted evaluation lost identity or score")
	}
	if len(back.KPIs.Vector) != len(ev.KPIs.Vector) {
		t.Error("persisted evaluation lost vector")
	}

	if _, err := st.Evaluation("missing-id"); err == nil {
		t.Error("missing snapshot id returned no error")
	}
}
