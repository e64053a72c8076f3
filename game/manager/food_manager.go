package manager

import (
	"snake-autopilot/game/entity"
	"snake-autopilot/game/types"

	"golang.org/x/exp/rand"
)

type FoodManager struct {
	rng *rand.Rand
}

func NewFoodManager(seed uint64) *FoodManager {
	return &FoodManager{rng: rand.New(rand.NewSource(seed))}
}

// GenerateFood samples cells uniformly until it hits an empty one. There is no retry
// limit: with no empty cell left it never returns.
func (fm *FoodManager) GenerateFood(grid *entity.Grid) types.Position {
	for {
		food := types.Position{
			Row: fm.rng.Intn(grid.Size()),
			Col: fm.rng.Intn(grid.Size()),
		}
		if ValidateSpawnPosition(grid, food) {
			return food
		}
	}
}

// PlaceFood generates a position and marks it on the grid.
func (fm *FoodManager) PlaceFood(grid *entity.Grid) types.Position {
	food := fm.GenerateFood(grid)
	grid.Set(food, types.Food)
	return food
}
