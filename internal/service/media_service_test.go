package service

import (
	"sync"
	"testing"
	"time"

	"referee_training_backend/internal/config"
)

func TestEditTimeout(t *testing.T) {
	cases := []struct {
		name    string
		seconds int
		want    time.Duration
	}{
		{"configured", 120, 120 * time.Second},
		{"zero falls back", 0, defaultEditTimeout},
		{"negative falls back", -5, defaultEditTimeout},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := editTimeout(config.MediaConfig{EditTimeoutSeconds: tc.seconds})
			if got != tc.want {
				t.Fatalf("editTimeout(%d) = %v, want %v", tc.seconds, got, tc.want)
			}
		})
	}
}

// Concurrent limit reads must stay consistent while the config watcher swaps
// limits in. Run with -race.
func TestUpdateLimitsConcurrent(t *testing.T) {
	svc := NewMediaService(nil, config.MediaConfig{MaxUploadMB: 100, EditTimeoutSeconds: 60})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(mb int64) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				svc.UpdateLimits(config.MediaConfig{MaxUploadMB: mb, EditTimeoutSeconds: 60})
			}
		}(int64(100 + i))
	}
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				cfg := svc.limits()
				if cfg.MaxUploadMB < 100 || cfg.MaxUploadMB > 103 {
					t.Errorf("limits saw torn value %d", cfg.MaxUploadMB)
					return
				}
			}
		}()
	}
	wg.Wait()

	if got := svc.limits().EditTimeoutSeconds; got != 60 {
		t.Fatalf("EditTimeoutSeconds = %d, want 60", got)
	}
}
