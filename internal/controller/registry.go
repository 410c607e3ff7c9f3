package controller

import (
	"github.com/markusressel/turbine2go/internal/util"
	cmap "github.com/orcaman/concurrent-map/v2"
)

var (
	// TurbineMap holds the controller of every configured turbine, by turbine id
	TurbineMap = cmap.New[*SpeedController]()
)

// RegisterController adds the given controller to the TurbineMap,
// replacing any previous controller of the same turbine
func RegisterController(c *SpeedController) {
	TurbineMap.Set(c.GetId(), c)
}

// SortedControllers returns all registered controllers ordered by turbine id
func SortedControllers() []*SpeedController {
	items := TurbineMap.Items()

	result := make([]*SpeedController, 0, len(items))
	for _, id := range util.SortedKeys(items) {
		result = append(result, items[id])
	}
	return result
}
