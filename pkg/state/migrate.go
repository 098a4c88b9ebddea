package state

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/AccelByte/extend-balloon-factory/pkg/balloon"
	"github.com/sirupsen/logrus"
)

// CurrentSchemaVersion is written into every saved document.
//
// Version history:
//
//	0: unversioned documents, any of tutorial, l2, l3 or strategies may be absent
//	1: all level records and strategies present
//	2: l1.bestScore, l1.history and l2.pastStrategies present
const CurrentSchemaVersion = 2

type document = map[string]interface{}

// migration upgrades a raw document by exactly one schema version.
type migration func(doc document)

// migrations[i] upgrades a document from version i to i+1.
var migrations = []migration{
	migrateV0ToV1,
	migrateV1ToV2,
}

// Encode serializes a state, stamping the current schema version.
func Encode(g *GameState) ([]byte, error) {
	if g == nil {
		return nil, ErrNilState
	}
	g.SchemaVersion = CurrentSchemaVersion
	return json.Marshal(g)
}

// Decode parses a stored document, upgrading older schema versions
// and back-filling whatever an older writer left out.
func Decode(data []byte) (*GameState, error) {
	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	if doc == nil {
		return nil, fmt.Errorf("%w: document is null", ErrCorruptState)
	}

	from, err := schemaVersion(doc)
	if err != nil {
		return nil, err
	}
	for v := from; v < CurrentSchemaVersion; v++ {
		logrus.Debugf("migrating game state from schema %d to %d", v, v+1)
		migrations[v](doc)
		doc["schemaVersion"] = v + 1
	}

	upgraded, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}

	g := &GameState{}
	if err := json.Unmarshal(upgraded, g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptState, err)
	}
	normalize(g)
	return g, nil
}

// schemaVersion reads the stored version. A missing or negative value
// means an unversioned document. The range check happens on the float so
// huge values never overflow into a negative index.
func schemaVersion(doc document) (int, error) {
	v, ok := doc["schemaVersion"].(float64)
	if !ok || v < 0 {
		return 0, nil
	}
	if v > CurrentSchemaVersion {
		return 0, fmt.Errorf("%w: schema version %v is newer than supported %d",
			ErrCorruptState, v, CurrentSchemaVersion)
	}
	if v != math.Trunc(v) {
		return 0, fmt.Errorf("%w: schema version %v is not an integer", ErrCorruptState, v)
	}
	return int(v), nil
}

func migrateV0ToV1(doc document) {
	if _, ok := doc["unlockedLevels"]; !ok {
		doc["unlockedLevels"] = 1
	}
	if _, ok := doc["tutorial"].(document); !ok {
		doc["tutorial"] = document{"l1": 0, "l2": 0}
	}

	for _, level := range []string{"l1", "l2", "l3"} {
		rec := child(doc, level)
		if _, ok := rec["stats"].(document); !ok {
			rec["stats"] = document{}
		}
		if level == "l1" {
			continue
		}
		if _, ok := rec["strategy"].(document); !ok {
			rec["strategy"] = strategyDocument(DefaultStrategy())
		}
	}

	l3 := child(doc, "l3")
	if _, ok := l3["temperature"]; !ok {
		l3["temperature"] = DefaultTemperature
	}
}

func migrateV1ToV2(doc document) {
	l1 := child(doc, "l1")
	if _, ok := l1["bestScore"]; !ok {
		l1["bestScore"] = 0
	}
	if _, ok := l1["history"].([]interface{}); !ok {
		l1["history"] = []interface{}{}
	}

	l2 := child(doc, "l2")
	if _, ok := l2["pastStrategies"].([]interface{}); !ok {
		l2["pastStrategies"] = []interface{}{}
	}
}

// child returns doc[key] as an object, creating it when absent or of the wrong type.
func child(doc document, key string) document {
	if c, ok := doc[key].(document); ok {
		return c
	}
	c := document{}
	doc[key] = c
	return c
}

func strategyDocument(s Strategy) document {
	d := make(document, len(s))
	for c, v := range s {
		d[string(c)] = v
	}
	return d
}

// normalize repairs values the schema allows but the game never produces.
func normalize(g *GameState) {
	if g.UnlockedLevels < 1 {
		g.UnlockedLevels = 1
	}
	if g.UnlockedLevels > MaxLevel {
		g.UnlockedLevels = MaxLevel
	}

	g.L1.Stats = fillStats(g.L1.Stats)
	g.L2.Stats = fillStats(g.L2.Stats)
	g.L3.Stats = fillStats(g.L3.Stats)
	g.L2.Strategy = fillStrategy(g.L2.Strategy)
	g.L3.Strategy = fillStrategy(g.L3.Strategy)

	if g.L1.History == nil {
		g.L1.History = []HistoryEntry{}
	}
	if len(g.L1.History) > HistoryCapacity {
		g.L1.History = g.L1.History[:HistoryCapacity]
	}
	if g.L2.PastStrategies == nil {
		g.L2.PastStrategies = []StrategyRecord{}
	}
	if len(g.L2.PastStrategies) > PastStrategiesCapacity {
		g.L2.PastStrategies = g.L2.PastStrategies[:PastStrategiesCapacity]
	}
	g.L3.Temperature = ClampTemperature(g.L3.Temperature)
}

func fillStats(s Stats) Stats {
	if s == nil {
		s = make(Stats, len(balloon.Colors))
	}
	for _, c := range balloon.Colors {
		if _, ok := s[c]; !ok {
			s[c] = ColorStat{}
		}
	}
	return s
}

func fillStrategy(s Strategy) Strategy {
	if s == nil {
		s = make(Strategy, len(balloon.Colors))
	}
	defaults := DefaultStrategy()
	for _, c := range balloon.Colors {
		if _, ok := s[c]; !ok {
			s[c] = defaults[c]
		}
	}
	return s
}
