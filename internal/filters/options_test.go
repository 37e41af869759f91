package filters

import (
	"reflect"
	"testing"
)

func TestNormalizeSelectedDropsUnknownKeys(t *testing.T) {
	got := NormalizeSelected([]string{" Cozy ", "hard", "cozy", "verydark"}, Keys(MoodOptions))
	want := []string{"cozy", "hard"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
}

func TestParseSelection(t *testing.T) {
	got := ParseSelection("pc, switch,PC", Keys(PlatformOptions))
	want := []string{"pc", "switch"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if ParseSelection("  ", Keys(PlatformOptions)) != nil {
		t.Fatal("blank selection should be nil")
	}
}
