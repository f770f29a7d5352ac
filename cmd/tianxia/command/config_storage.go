package command

import (
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pixil98/go-tianxia/internal/game"
	"github.com/pixil98/go-tianxia/internal/scenario"
	"github.com/pixil98/go-tianxia/internal/storage"
)

type StorageConfig struct {
	Cards     AssetConfig[*game.CardDef]      `json:"cards"`
	Boards    AssetConfig[*game.Board]        `json:"boards"`
	Scenarios AssetConfig[*scenario.Scenario] `json:"scenarios"`
}

func (c *StorageConfig) BuildDictionary() (*scenario.Dictionary, error) {
	cards, err := c.Cards.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating card store: %w", err)
	}
	boards, err := c.Boards.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating board store: %w", err)
	}
	scenarios, err := c.Scenarios.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating scenario store: %w", err)
	}

	dict := &scenario.Dictionary{
		Cards:     cards,
		Boards:    boards,
		Scenarios: scenarios,
	}

	if err := dict.Resolve(); err != nil {
		return nil, fmt.Errorf("resolving references: %w", err)
	}

	return dict, nil
}

func (c *StorageConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Cards.Validate("cards"))
	el.Add(c.Boards.Validate("boards"))
	el.Add(c.Scenarios.Validate("scenarios"))
	return el.Err()
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
