package norm

import (
	"sync"
	"testing"
)

func TestFoldPolicies(t *testing.T) {
	tests := []struct {
		name               string
		caseSensitive      bool
		convertUnderscores bool
		input              string
		want               string
	}{
		{"identity", true, false, "Dry_Run", "Dry_Run"},
		{"case folding", false, false, "Dry-Run", "dry-run"},
		{"underscore conversion", true, true, "dry_run", "dry-run"},
		{"both", false, true, "DRY_RUN", "dry-run"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFolder(tt.caseSensitive, tt.convertUnderscores)
			if got := f.Fold(tt.input); got != tt.want {
				t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFoldCaching(t *testing.T) {
	f := NewFolder(false, true)
	f.Fold("Some_Name")
	f.Fold("Some_Name")
	f.Fold("Other")
	if got := f.Stats(); got != 2 {
		t.Errorf("cache size = %d, want 2", got)
	}

	// The identity policy bypasses the cache.
	id := NewFolder(true, false)
	id.Fold("anything")
	if got := id.Stats(); got != 0 {
		t.Errorf("identity cache size = %d, want 0", got)
	}
}

func TestFoldConcurrent(t *testing.T) {
	f := NewFolder(false, true)
	names := []string{"Alpha_One", "beta_two", "GAMMA-THREE", "delta"}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				for _, name := range names {
					f.Fold(name)
				}
			}
		}()
	}
	wg.Wait()

	if got := f.Fold("Alpha_One"); got != "alpha-one" {
		t.Errorf("Fold after concurrent use = %q", got)
	}
	if got := f.Stats(); got != len(names) {
		t.Errorf("cache size = %d, want %d", got, len(names))
	}
}
