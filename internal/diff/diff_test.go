package diff

import "testing"

func TestBeginSameDimensionsStartsClean(t *testing.T) {
	d := Begin(128, 128, 128, 128, 64)
	if d.TilesChanged() {
		t.Error("Begin with unchanged dimensions should start clean")
	}
}

func TestBeginChangedDimensionsMarksAll(t *testing.T) {
	d := Begin(64, 64, 128, 128, 64)
	if !d.TilesChanged() {
		t.Error("Begin with changed dimensions should mark every tile")
	}
	count := 0
	d.EachIndex(func(int) { count++ })
	if count != d.TilesX()*d.TilesY() {
		t.Errorf("marked %d tiles, want all %d", count, d.TilesX()*d.TilesY())
	}
}

func TestMarkSingleTile(t *testing.T) {
	d := Begin(128, 128, 128, 128, 64)
	d.Mark(1, 1)
	var seen []int
	d.EachIndex(func(idx int) { seen = append(seen, idx) })
	tilesX := d.TilesX()
	want := 1*tilesX + 1
	if len(seen) != 1 || seen[0] != want {
		t.Errorf("EachIndex = %v, want [%d]", seen, want)
	}
}

func TestEachPosRoundTrip(t *testing.T) {
	d := Begin(128, 128, 128, 128, 64)
	d.Mark(0, 1)
	var got [][2]int
	d.EachPos(func(tx, ty int) { got = append(got, [2]int{tx, ty}) })
	if len(got) != 1 || got[0] != [2]int{0, 1} {
		t.Errorf("EachPos = %v, want [[0 1]]", got)
	}
}

func TestLayerPropsChangedResetClearsFlag(t *testing.T) {
	d := Begin(64, 64, 64, 64, 64)
	if d.LayerPropsChangedReset() {
		t.Error("flag should start false")
	}
	d.MarkLayerPropsChanged()
	if !d.LayerPropsChangedReset() {
		t.Error("flag should be true after Mark")
	}
	if d.LayerPropsChangedReset() {
		t.Error("flag should be cleared after first reset")
	}
}

func TestCheckOnlyOrsTruePredicates(t *testing.T) {
	d := Begin(128, 128, 128, 128, 64)
	d.Check(func(idx int) bool { return idx == 2 })
	count := 0
	d.EachIndex(func(int) { count++ })
	if count != 1 {
		t.Errorf("Check marked %d tiles, want 1", count)
	}
}

func TestDiffSameStateIsEmpty(t *testing.T) {
	// Diffing identical states must set no bits.
	d := Begin(128, 128, 128, 128, 64)
	ids := []int{1, 1, 1} // pretend tile pointers at matching indices are identical
	d.Check(func(idx int) bool { return ids[0] != ids[idx%len(ids)] })
	if d.TilesChanged() {
		t.Error("diffing identical tile references should mark nothing")
	}
}
