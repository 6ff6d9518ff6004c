package state

import (
	"context"

	"trackfin/internal/core"
)

// Replay rebuilds state from a stored snapshot by issuing one action per
// stored entity: a login when the stored session was authenticated, one add
// per account and transaction, one set per budget entry, and a settings
// update. The stored snapshot is never installed directly.
//
// There is no rollback: if the process dies mid-replay the store is left
// partially populated, exactly as a partial stored blob would leave it.
func (st *Store) Replay(ctx context.Context, snap core.Snapshot) {
	if snap.Session.IsAuthenticated && snap.Session.User != nil {
		st.Dispatch(ctx, Login{User: *snap.Session.User})
	}
	for _, acc := range snap.Accounts {
		st.Dispatch(ctx, AddAccount{Account: acc})
	}
	for _, tx := range snap.Transactions {
		st.Dispatch(ctx, AddTransaction{Transaction: tx})
	}
	for category, budget := range snap.Budgets {
		st.Dispatch(ctx, SetBudget{Category: category, Budget: budget})
	}
	st.Dispatch(ctx, UpdateSettings{Patch: core.SettingsPatch{
		Currency: &snap.Settings.Currency,
		Locale:   &snap.Settings.Locale,
		Name:     &snap.Settings.Name,
	}})
}
