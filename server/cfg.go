package server

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/zucenko/showdown/model"
)

// LoadReplay reads every *.json snapshot in dir, ordered by file name.
func LoadReplay(dir string) ([]*model.MapState, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return nil, err
	}
	sort.Strings(files)

	states := make([]*model.MapState, 0, len(files))
	for _, name := range files {
		state, err := readState(name)
		if err != nil {
			return nil, err
		}
		states = append(states, state)
	}
	log.Printf("LoadReplay %d snapshots from %s", len(states), dir)
	return states, nil
}

func readState(name string) (*model.MapState, error) {
	file, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	state, err := model.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if err := state.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return state, nil
}

// Replay publishes states one per interval. A zero interval publishes them
// back to back.
func (s *FeedServer) Replay(ctx context.Context, states []*model.MapState, interval time.Duration) error {
	var tick <-chan time.Time
	if interval > 0 {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		tick = ticker.C
	}
	for i, state := range states {
		if tick != nil && i > 0 {
			select {
			case <-tick:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if _, err := s.Publish(ctx, state); err != nil {
			return fmt.Errorf("replay snapshot %d: %w", i, err)
		}
	}
	log.Printf("Replay finished, %d snapshots", len(states))
	return nil
}
