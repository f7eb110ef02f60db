package models

import (
	"log/slog"
)

// LoadAll loads every model artifact in paths, skipping (and logging) ones
// that fail to parse. The caller must treat zero successfully loaded
// models as a fatal ModelLoadFailure.
func LoadAll(paths []string) []*GBM {
	loaded := make([]*GBM, 0, len(paths))
	for _, p := range paths {
		m, err := LoadGBM(p)
		if err != nil {
			slog.Error("model load failed", "path", p, "error", err)
			continue
		}
		loaded = append(loaded, m)
	}
	return loaded
}

// ErrNoModelsLoaded is returned by NewEnsemble when given zero models.
type ErrNoModelsLoaded struct{}

func (ErrNoModelsLoaded) Error() string {
	return "no gradient-boosting models loaded; core cannot start"
}
