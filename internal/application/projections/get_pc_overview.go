package projections

import (
	"context"

	"cafepc/internal/domain/pcslot"
)

// SlotLister defines the pool read used by the PC overview.
type SlotLister interface {
	List(ctx context.Context) ([]pcslot.Slot, error)
}

// PCOverviewRow is one PC of the floor map.
type PCOverviewRow struct {
	ID     int
	Status string
	HeldBy string // empty when vacant
}

// GetPCOverviewResult carries the floor map and its headline counts.
type GetPCOverviewResult struct {
	Slots    []PCOverviewRow
	Vacant   int
	Occupied int
}

// QueryGetPCOverview returns all PCs in ID order with occupancy counts.
func QueryGetPCOverview(ctx context.Context, slots SlotLister) (GetPCOverviewResult, error) {
	all, err := slots.List(ctx)
	if err != nil {
		return GetPCOverviewResult{}, err
	}

	result := GetPCOverviewResult{Slots: make([]PCOverviewRow, 0, len(all))}
	for _, s := range all {
		result.Slots = append(result.Slots, PCOverviewRow{ID: s.ID, Status: s.Status, HeldBy: s.HeldBy})
		if s.Status == pcslot.StatusOccupied {
			result.Occupied++
		} else {
			result.Vacant++
		}
	}
	return result, nil
}
