package world

import (
	"errors"
	"testing"
)

// testWorld builds a small graph by hand: A -north-> B, A -north-> C
// (duplicate direction), A -west-> missing, B -south-> A.
func testWorld() *World {
	a := &Location{
		ID: "a",
		Exits: []Exit{
			{Direction: "north", Target: "b"},
			{Direction: "north", Target: "c"},
			{Direction: "west", Target: "nowhere"},
		},
	}
	b := &Location{ID: "b", Exits: []Exit{{Direction: "south", Target: "a"}}}
	c := &Location{ID: "c"}
	return &World{
		StartLocation: "a",
		Locations:     map[string]*Location{"a": a, "b": b, "c": c},
		Items:         map[string]*ItemDef{},
		GameFlags:     map[string]bool{},
		Player:        Player{CurrentLocation: "a"},
	}
}

func TestMovePlayer_FirstMatchWins(t *testing.T) {
	// Two exits named "north": the earlier one is always taken.
	w := testWorld()
	loc, _, err := w.MovePlayer("north")
	if err != nil {
		t.Fatalf("MovePlayer failed: %v", err)
	}
	if loc.ID != "b" {
		t.Errorf("Expected first-match destination 'b', got %q", loc.ID)
	}
	if w.Player.CurrentLocation != "b" {
		t.Errorf("Expected player at 'b', got %q", w.Player.CurrentLocation)
	}
}

func TestMovePlayer_CaseInsensitive(t *testing.T) {
	tests := []struct {
		direction string
		wantDest  string
		wantErr   error
	}{
		{"north", "b", nil},
		{"NORTH", "b", nil},
		{"NoRtH", "b", nil},
		{"east", "", ErrNoSuchExit},
	}

	for _, tt := range tests {
		t.Run(tt.direction, func(t *testing.T) {
			w := testWorld()
			loc, _, err := w.MovePlayer(tt.direction)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Expected %v, got %v", tt.wantErr, err)
				}
				if w.Player.CurrentLocation != "a" {
					t.Error("Failed move must not change player location")
				}
				return
			}
			if err != nil {
				t.Fatalf("MovePlayer failed: %v", err)
			}
			if loc.ID != tt.wantDest {
				t.Errorf("Expected destination %q, got %q", tt.wantDest, loc.ID)
			}
		})
	}
}

func TestMovePlayer_DanglingExit(t *testing.T) {
	w := testWorld()
	_, _, err := w.MovePlayer("west")
	if !errors.Is(err, ErrDanglingExit) {
		t.Fatalf("Expected ErrDanglingExit, got %v", err)
	}
	if w.Player.CurrentLocation != "a" {
		t.Errorf("Player moved despite dangling exit: %q", w.Player.CurrentLocation)
	}
}

func TestMovePlayer_NoCurrentLocation(t *testing.T) {
	w := testWorld()
	w.Player.CurrentLocation = "void"
	_, _, err := w.MovePlayer("north")
	if !errors.Is(err, ErrNoCurrentLocation) {
		t.Fatalf("Expected ErrNoCurrentLocation, got %v", err)
	}
}

func TestVisitedFlipsOnce(t *testing.T) {
	w := testWorld()
	b, _ := w.LocationByID("b")
	if b.Visited {
		t.Fatal("Expected b to start unvisited")
	}

	_, first, err := w.MovePlayer("north")
	if err != nil {
		t.Fatalf("MovePlayer failed: %v", err)
	}
	if !first || !b.Visited {
		t.Error("Expected first arrival to mark b visited")
	}

	// Leave and come back; visited stays true and is no longer first.
	if _, _, err := w.MovePlayer("south"); err != nil {
		t.Fatalf("MovePlayer back failed: %v", err)
	}
	_, first, err = w.MovePlayer("north")
	if err != nil {
		t.Fatalf("Second MovePlayer failed: %v", err)
	}
	if first {
		t.Error("Second arrival must not report first visit")
	}
	if !b.Visited {
		t.Error("Visited must never flip back")
	}
}

func TestMarkVisited(t *testing.T) {
	w := testWorld()
	first, err := w.MarkVisited("a")
	if err != nil || !first {
		t.Fatalf("Expected first MarkVisited to report change, got first=%v err=%v", first, err)
	}
	first, err = w.MarkVisited("a")
	if err != nil || first {
		t.Fatalf("Expected second MarkVisited to be idempotent, got first=%v err=%v", first, err)
	}
	if _, err := w.MarkVisited("void"); !errors.Is(err, ErrLocationNotFound) {
		t.Errorf("Expected ErrLocationNotFound, got %v", err)
	}
}

func TestInventory_SetSemantics(t *testing.T) {
	w := testWorld()

	if err := w.AddItem("key"); err != nil {
		t.Fatalf("First add failed: %v", err)
	}
	if !w.HasItem("key") {
		t.Error("Expected key to be held")
	}

	if err := w.AddItem("key"); !errors.Is(err, ErrDuplicateItem) {
		t.Errorf("Expected ErrDuplicateItem on second add, got %v", err)
	}
	if len(w.Player.Inventory) != 1 {
		t.Errorf("Duplicate add mutated inventory: %v", w.Player.Inventory)
	}

	if err := w.RemoveItem("key"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}
	if err := w.RemoveItem("key"); !errors.Is(err, ErrItemNotHeld) {
		t.Errorf("Expected ErrItemNotHeld on absent removal, got %v", err)
	}
}

func TestInventory_Capacity(t *testing.T) {
	w := testWorld()
	w.InventoryCapacity = 2

	if err := w.AddItem("a"); err != nil {
		t.Fatal(err)
	}
	if err := w.AddItem("b"); err != nil {
		t.Fatal(err)
	}
	if err := w.AddItem("c"); !errors.Is(err, ErrInventoryFull) {
		t.Fatalf("Expected ErrInventoryFull, got %v", err)
	}
	if len(w.Player.Inventory) != 2 {
		t.Errorf("Overflow add mutated inventory: %v", w.Player.Inventory)
	}
}

func TestInventory_RemovePreservesOrder(t *testing.T) {
	w := testWorld()
	for _, id := range []string{"one", "two", "three"} {
		if err := w.AddItem(id); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.RemoveItem("two"); err != nil {
		t.Fatal(err)
	}
	want := []string{"one", "three"}
	for i, id := range want {
		if w.Player.Inventory[i] != id {
			t.Fatalf("Expected inventory %v, got %v", want, w.Player.Inventory)
		}
	}
}

func TestFlags_ScopePrecedence(t *testing.T) {
	w := testWorld()
	w.GameFlags["door_open"] = true

	// Game-scope flag is visible through GetFlag.
	if !w.GetFlag("door_open") {
		t.Error("Expected game-scope flag to be read")
	}

	// SetFlag updates the game-scope entry in place rather than
	// shadowing it with a new player-scope one.
	w.SetFlag("door_open", false)
	if v, ok := w.GameFlags["door_open"]; !ok || v {
		t.Errorf("Expected game-scope entry updated to false, got %v present=%v", v, ok)
	}
	if _, ok := w.Player.Flags["door_open"]; ok {
		t.Error("SetFlag must not create a shadowing player-scope entry")
	}

	// Player scope wins when both exist.
	w.Player.Flags = map[string]bool{"door_open": true}
	if !w.GetFlag("door_open") {
		t.Error("Expected player-scope value to take precedence")
	}
}

func TestFlags_NewEntriesArePlayerScoped(t *testing.T) {
	w := testWorld()
	w.SetFlag("met_wizard", true)
	if v, ok := w.Player.Flags["met_wizard"]; !ok || !v {
		t.Error("Expected new flag in player scope")
	}
	if _, ok := w.GameFlags["met_wizard"]; ok {
		t.Error("New flag must not land in game scope")
	}
}

func TestFlags_GetNeverCreates(t *testing.T) {
	w := testWorld()
	if w.GetFlag("unset") {
		t.Error("Expected unset flag to read false")
	}
	if _, ok := w.Player.Flags["unset"]; ok {
		t.Error("GetFlag must not create entries")
	}
	if _, ok := w.GameFlags["unset"]; ok {
		t.Error("GetFlag must not create entries")
	}
}

func TestCheckLocationRequirements(t *testing.T) {
	w := testWorld()
	vault := &Location{
		ID:            "vault",
		FlagsRequired: map[string]bool{"has_key": true, "alarm_off": true},
	}

	if w.CheckLocationRequirements(vault) {
		t.Error("Expected requirements to fail with no flags set")
	}

	w.SetFlag("has_key", true)
	w.SetFlag("alarm_off", true)
	if !w.CheckLocationRequirements(vault) {
		t.Error("Expected requirements to pass with both flags set")
	}

	w.SetFlag("alarm_off", false)
	if w.CheckLocationRequirements(vault) {
		t.Error("Expected requirements to fail after flag cleared")
	}

	// No requirements means always accessible.
	open := &Location{ID: "open"}
	if !w.CheckLocationRequirements(open) {
		t.Error("Expected location without requirements to be accessible")
	}
}

func TestApplyEntryFlags(t *testing.T) {
	w := testWorld()
	w.GameFlags["torch_lit"] = false
	loc := &Location{
		ID:       "shrine",
		FlagsSet: map[string]bool{"torch_lit": true, "blessed": true},
	}

	w.ApplyEntryFlags(loc)
	if v := w.GameFlags["torch_lit"]; !v {
		t.Error("Expected existing game-scope flag updated in place")
	}
	if !w.Player.Flags["blessed"] {
		t.Error("Expected new grant in player scope")
	}
}

func TestUseItem(t *testing.T) {
	w := testWorld()
	w.Items["lantern"] = &ItemDef{
		ID:          "lantern",
		Name:        "Lantern",
		Useable:     true,
		UseText:     "The lantern flickers to life.",
		UseFlagsSet: map[string]bool{"lit": true},
	}
	w.Items["rock"] = &ItemDef{ID: "rock"}

	if _, err := w.UseItem("lantern"); !errors.Is(err, ErrItemNotHeld) {
		t.Errorf("Expected ErrItemNotHeld before pickup, got %v", err)
	}

	if err := w.AddItem("lantern"); err != nil {
		t.Fatal(err)
	}
	text, err := w.UseItem("lantern")
	if err != nil {
		t.Fatalf("UseItem failed: %v", err)
	}
	if text != "The lantern flickers to life." {
		t.Errorf("Unexpected use text: %q", text)
	}
	if !w.GetFlag("lit") {
		t.Error("Expected use_flags_set to be applied")
	}

	if err := w.AddItem("rock"); err != nil {
		t.Fatal(err)
	}
	if _, err := w.UseItem("rock"); !errors.Is(err, ErrItemNotUseable) {
		t.Errorf("Expected ErrItemNotUseable, got %v", err)
	}
	if _, err := w.UseItem("ghost"); !errors.Is(err, ErrItemNotFound) {
		t.Errorf("Expected ErrItemNotFound, got %v", err)
	}
}

func TestUseItem_Gated(t *testing.T) {
	w := testWorld()
	w.Items["horn"] = &ItemDef{
		ID:               "horn",
		Useable:          true,
		UseText:          "A deep note echoes.",
		UseFlagsRequired: map[string]bool{"on_hilltop": true},
	}
	if err := w.AddItem("horn"); err != nil {
		t.Fatal(err)
	}

	if _, err := w.UseItem("horn"); !errors.Is(err, ErrUseRequirementsNotMet) {
		t.Errorf("Expected ErrUseRequirementsNotMet, got %v", err)
	}
	w.SetFlag("on_hilltop", true)
	if _, err := w.UseItem("horn"); err != nil {
		t.Errorf("Expected use to succeed after gate opens, got %v", err)
	}
}

func TestDescribeInventory(t *testing.T) {
	w := testWorld()
	if got := w.DescribeInventory(); got != "Your inventory is empty." {
		t.Errorf("Unexpected empty description: %q", got)
	}

	w.Items["coin"] = &ItemDef{ID: "coin", Name: "Gold Coin"}
	if err := w.AddItem("coin"); err != nil {
		t.Fatal(err)
	}
	if err := w.AddItem("twig"); err != nil {
		t.Fatal(err)
	}
	got := w.DescribeInventory()
	want := "You have:\n- Gold Coin\n- twig"
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestValidate(t *testing.T) {
	w := testWorld()
	if err := w.Validate(); err != nil {
		t.Errorf("Expected valid world, got %v", err)
	}
	w.StartLocation = "void"
	if err := w.Validate(); !errors.Is(err, ErrNoStartLocation) {
		t.Errorf("Expected ErrNoStartLocation, got %v", err)
	}
}
