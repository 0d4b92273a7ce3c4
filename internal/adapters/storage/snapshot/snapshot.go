package snapshot

import (
	"context"

	adminStore "cafepc/internal/adapters/storage/adminaccount"
	noticeStore "cafepc/internal/adapters/storage/notice"
	slotStore "cafepc/internal/adapters/storage/pcslot"
	userStore "cafepc/internal/adapters/storage/useraccount"
	"cafepc/internal/domain/adminaccount"
	"cafepc/internal/domain/notice"
	"cafepc/internal/domain/pcslot"
	"cafepc/internal/domain/useraccount"
)

// Snapshot is the serializable state of the kiosk: accounts, the PC pool
// and the notice board. Session state is deliberately absent — the terminal
// always boots locked. The menu catalog is static and needs no persistence.
type Snapshot struct {
	Users   []useraccount.Account
	Admins  []adminaccount.Account
	Slots   []pcslot.Slot
	Notices []notice.Notice
}

// Capture reads a consistent copy of all aggregates from the live stores.
// POST: Returns a snapshot; the stores are not mutated
func Capture(ctx context.Context, users userStore.Store, admins adminStore.Store, slots slotStore.Store, notices noticeStore.Store) (Snapshot, error) {
	var snap Snapshot
	var err error

	if snap.Users, err = users.List(ctx, userStore.ListFilter{}); err != nil {
		return Snapshot{}, err
	}
	if snap.Admins, err = admins.List(ctx, adminStore.ListFilter{}); err != nil {
		return Snapshot{}, err
	}
	if snap.Slots, err = slots.List(ctx); err != nil {
		return Snapshot{}, err
	}
	if snap.Notices, err = notices.List(ctx, noticeStore.ListFilter{}); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

// Apply loads a snapshot into the live stores.
// PRE: the stores are freshly constructed (empty pool, no accounts)
// POST: Stores contain the snapshot's records
func Apply(ctx context.Context, snap Snapshot, users userStore.Store, admins adminStore.Store, slots slotStore.Store, notices noticeStore.Store) error {
	for _, u := range snap.Users {
		if err := users.Create(ctx, u); err != nil {
			return err
		}
	}
	for _, a := range snap.Admins {
		if err := admins.Create(ctx, a); err != nil {
			return err
		}
	}
	for _, s := range snap.Slots {
		if err := slots.Restore(ctx, s); err != nil {
			return err
		}
	}
	for _, n := range snap.Notices {
		if err := notices.Save(ctx, n); err != nil {
			return err
		}
	}
	return nil
}
