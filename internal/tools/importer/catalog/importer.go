package catalogimporter

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/eloibahuet/egypt-adventures/internal/game/domain"
	"github.com/eloibahuet/egypt-adventures/internal/game/loot"
)

const (
	payloadGame    = "egypt-adventures"
	payloadVersion = "v1"
)

func readJSON[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &value, nil
}

func validatePayload(payload *itemPayload) error {
	if payload.Game != payloadGame {
		return fmt.Errorf("unsupported game %q", payload.Game)
	}
	if payload.Version != payloadVersion {
		return fmt.Errorf("unsupported version %q", payload.Version)
	}
	if strings.TrimSpace(payload.Source) == "" {
		return fmt.Errorf("source is required")
	}
	if strings.TrimSpace(payload.Locale) == "" {
		return fmt.Errorf("locale is required")
	}
	return nil
}

// toItems converts records and checks them as a whole catalog, so a file
// that imports is a file the loot table can use.
func toItems(records []itemRecord) ([]domain.Item, error) {
	items := make([]domain.Item, 0, len(records))
	for i, record := range records {
		slot, err := domain.ParseSlot(record.Slot)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i+1, record.ID, err)
		}
		rarity, err := domain.ParseRarity(record.Rarity)
		if err != nil {
			return nil, fmt.Errorf("item %d (%s): %w", i+1, record.ID, err)
		}
		items = append(items, domain.Item{
			ID:       strings.TrimSpace(record.ID),
			Name:     strings.TrimSpace(record.Name),
			Slot:     slot,
			Modifier: record.Modifier,
			Rarity:   rarity,
		})
	}
	if _, err := loot.NewCatalog(items); err != nil {
		return nil, err
	}
	return items, nil
}
