package generator

import (
	"context"
	"fmt"

	"github.com/dbsmedya/boardfab/internal/config"
	"github.com/dbsmedya/boardfab/internal/correction"
	"github.com/dbsmedya/boardfab/internal/database"
)

// LoadCorrections reads the correction table named by cfg. It returns a nil
// table when no source is configured.
func LoadCorrections(ctx context.Context, cfg config.CorrectionsConfig) (*correction.Table, error) {
	switch {
	case cfg.File != "":
		t, err := correction.LoadFile(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load corrections: %w", err)
		}
		return t, nil
	case cfg.Database != nil:
		m := database.NewManager(cfg.Database)
		if err := m.Connect(ctx); err != nil {
			return nil, err
		}
		defer m.Close()

		t, err := m.LoadCorrections(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to load corrections: %w", err)
		}
		return t, nil
	}
	return nil, nil
}
