package v1

import (
	"math"

	"maniboard/internal/calculator"
)

// roundIndicatorGroupsInPlace 金额与数量取整，比率保留两位小数
func roundIndicatorGroupsInPlace(groups []calculator.IndicatorGroup) {
	for gi := range groups {
		for ii := range groups[gi].Indicators {
			ind := &groups[gi].Indicators[ii]
			if ind.Format == "ratio" {
				ind.Value = math.Round(ind.Value*100) / 100
				continue
			}
			ind.Value = math.Round(ind.Value)
		}
	}
}
