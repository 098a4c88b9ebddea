package state

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
)

func TestDecode_UnversionedDocument(t *testing.T) {
	// Shape written before tutorial, level 3 and schema versions existed.
	legacy := `{
		"unlockedLevels": 2,
		"l1": {"stats": {"red": {"score": 12, "pops": 1, "count": 3, "pumps": 12}}, "balloonIndex": 3},
		"l2": {"stats": {}, "processedCount": 40}
	}`

	g, err := Decode([]byte(legacy))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	if g.SchemaVersion != CurrentSchemaVersion {
		t.Errorf("SchemaVersion = %d, expected %d", g.SchemaVersion, CurrentSchemaVersion)
	}
	if g.UnlockedLevels != 2 {
		t.Errorf("UnlockedLevels = %d, expected 2", g.UnlockedLevels)
	}
	if g.L1.Stats[balloon.Red].Score != 12 {
		t.Errorf("L1 red score = %d, expected 12", g.L1.Stats[balloon.Red].Score)
	}
	if g.L1.BalloonIndex != 3 {
		t.Errorf("L1.BalloonIndex = %d, expected 3", g.L1.BalloonIndex)
	}
	if g.L2.ProcessedCount != 40 {
		t.Errorf("L2.ProcessedCount = %d, expected 40", g.L2.ProcessedCount)
	}
	if g.L3.Temperature != DefaultTemperature {
		t.Errorf("L3.Temperature = %d, expected back-filled %d", g.L3.Temperature, DefaultTemperature)
	}
	if g.L2.Strategy[balloon.Green] != DefaultStrategy()[balloon.Green] {
		t.Errorf("L2 strategy was not back-filled: %v", g.L2.Strategy)
	}
	if g.L2.PastStrategies == nil || g.L1.History == nil {
		t.Error("expected empty, non-nil history slices")
	}
	for _, c := range balloon.Colors {
		if _, ok := g.L3.Stats[c]; !ok {
			t.Errorf("L3 stats missing color %s", c)
		}
	}
}

func TestDecode_KeepsColdTemperatureOnCurrentSchema(t *testing.T) {
	g := New()
	g.L3.Temperature = 0

	data, err := Encode(g)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	decoded, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if decoded.L3.Temperature != 0 {
		t.Errorf("L3.Temperature = %d, expected 0 to survive the round trip", decoded.L3.Temperature)
	}
}

func TestDecode_VersionOneBackfillsBestScore(t *testing.T) {
	doc := map[string]interface{}{
		"schemaVersion":  1,
		"unlockedLevels": 1,
		"tutorial":       map[string]interface{}{"l1": 2, "l2": 0},
		"l1":             map[string]interface{}{"stats": map[string]interface{}{}},
		"l2":             map[string]interface{}{"stats": map[string]interface{}{}, "strategy": map[string]interface{}{"red": 3}},
		"l3":             map[string]interface{}{"stats": map[string]interface{}{}, "strategy": map[string]interface{}{}, "temperature": 5},
	}
	data, _ := json.Marshal(doc)

	g, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if g.Tutorial.L1 != 2 {
		t.Errorf("Tutorial.L1 = %d, expected 2", g.Tutorial.L1)
	}
	if g.L1.BestScore != 0 {
		t.Errorf("L1.BestScore = %d, expected 0", g.L1.BestScore)
	}
	if g.L2.Strategy[balloon.Red] != 3 {
		t.Errorf("L2 red strategy = %d, expected stored 3", g.L2.Strategy[balloon.Red])
	}
	if g.L3.Temperature != 5 {
		t.Errorf("L3.Temperature = %d, expected 5", g.L3.Temperature)
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "not json", data: "{oops"},
		{name: "null document", data: "null"},
		{name: "future schema", data: `{"schemaVersion": 99}`},
		{name: "schema beyond int range", data: `{"schemaVersion": 1e20, "unlockedLevels": 2}`},
		{name: "fractional schema", data: `{"schemaVersion": 1.5}`},
		{name: "wrong field type", data: `{"unlockedLevels": "three"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode([]byte(tt.data))
			if !errors.Is(err, ErrCorruptState) {
				t.Errorf("Decode() error = %v, expected ErrCorruptState", err)
			}
		})
	}
}

func TestDecode_NormalizesOutOfRangeValues(t *testing.T) {
	data := `{"schemaVersion": 2, "unlockedLevels": 9, "l3": {"temperature": 75}}`

	g, err := Decode([]byte(data))
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}
	if g.UnlockedLevels != MaxLevel {
		t.Errorf("UnlockedLevels = %d, expected %d", g.UnlockedLevels, MaxLevel)
	}
	if g.L3.Temperature != MaxTemperature {
		t.Errorf("L3.Temperature = %d, expected %d", g.L3.Temperature, MaxTemperature)
	}
}

func TestEncode_Nil(t *testing.T) {
	if _, err := Encode(nil); !errors.Is(err, ErrNilState) {
		t.Errorf("Encode(nil) error = %v, expected ErrNilState", err)
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	g, err := store.Load(ctx, "p")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	g.UnlockedLevels = 2

	if err := store.Save(ctx, "p", g); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	if _, ok := store.Raw("p"); !ok {
		t.Fatal("expected raw document after Save")
	}

	g.UnlockedLevels = 3
	loaded, err := store.Load(ctx, "p")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if loaded.UnlockedLevels != 2 {
		t.Errorf("UnlockedLevels = %d, expected the saved 2", loaded.UnlockedLevels)
	}

	if err := store.Delete(ctx, "p"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, ok := store.Raw("p"); ok {
		t.Error("document should be gone after Delete")
	}
}
