package command

import (
	"encoding/json"
	"math/rand/v2"
	"os"
	"testing"

	"github.com/pixil98/go-testutil"
	"github.com/pixil98/go-tianxia/internal/game"
	"github.com/pixil98/go-tianxia/internal/scenario"
)

const assetsDir = "../../../assets"

func shippedStorage() StorageConfig {
	return StorageConfig{
		Cards:     AssetConfig[*game.CardDef]{Path: assetsDir + "/cards"},
		Boards:    AssetConfig[*game.Board]{Path: assetsDir + "/boards"},
		Scenarios: AssetConfig[*scenario.Scenario]{Path: assetsDir + "/scenarios"},
	}
}

func TestShippedAssets(t *testing.T) {
	sc := shippedStorage()
	if err := sc.validate(); err != nil {
		t.Fatalf("validating storage: %v", err)
	}

	dict, err := sc.BuildDictionary()
	if err != nil {
		t.Fatalf("building dictionary: %v", err)
	}

	s, err := dict.Build("yancheng-1140", rand.New(rand.NewPCG(1140, 1140)))
	if err != nil {
		t.Fatalf("building scenario: %v", err)
	}

	testutil.AssertEqual(t, "players", len(s.Players), 2)
	testutil.AssertEqual(t, "pieces", len(s.Pieces), 10)
	testutil.AssertEqual(t, "draw pile", len(s.DrawPile), 8)
	testutil.AssertEqual(t, "first player", s.CurrentPlayerID, "song")
	testutil.AssertEqual(t, "jin tucked", len(s.Player("jin").Tucked), 1)
	testutil.AssertEqual(t, "capital", s.Capitals[game.Faction("jin")], game.NodeID("kaifeng"))

	def := dict.Catalog().Card("tiger-seal")
	if def == nil {
		t.Fatal("tiger-seal not in catalog")
	}
	if def.Extensions.String("flavor") == "" {
		t.Error("tiger-seal has no flavor text")
	}
}

func TestShippedAssets_BuildTable(t *testing.T) {
	sc := shippedStorage()
	dict, err := sc.BuildDictionary()
	if err != nil {
		t.Fatalf("building dictionary: %v", err)
	}

	tc := TableConfig{Scenario: "yancheng-1140", Seed: 7}
	tbl, err := tc.BuildTable(dict, nil)
	if err != nil {
		t.Fatalf("building table: %v", err)
	}

	seats := tbl.Seats()
	testutil.AssertEqual(t, "seats", len(seats), 2)
	testutil.AssertEqual(t, "first seat", seats[0].ID, "song")
	testutil.AssertEqual(t, "second seat", seats[1].Name, "Wuzhu")
}

func TestExampleConfig(t *testing.T) {
	b, err := os.ReadFile("../../../config.example.json")
	if err != nil {
		t.Fatalf("reading example config: %v", err)
	}

	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		t.Fatalf("unmarshalling example config: %v", err)
	}

	testutil.AssertEqual(t, "listeners", len(c.Listeners), 2)
	testutil.AssertEqual(t, "ssh", c.Listeners[1].Protocol, ListenerTypeSSH)
	testutil.AssertEqual(t, "scenario", c.Table.Scenario, "yancheng-1140")
	testutil.AssertEqual(t, "seed", c.Table.Seed, uint64(1140))
	testutil.AssertEqual(t, "nats port", c.Nats.Port, -1)
}
