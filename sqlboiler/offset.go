package sqlboiler

import (
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/nrfta/criteria-go/paging"
)

// OffsetToQueryMods converts the window of FetchParams into SQLBoiler query
// mods:
//   - Offset → qm.Offset(n), when positive
//   - Limit → qm.Limit(n), when positive; 0 lists everything
func OffsetToQueryMods(params paging.FetchParams) []qm.QueryMod {
	mods := []qm.QueryMod{}

	if params.Offset > 0 {
		mods = append(mods, qm.Offset(params.Offset))
	}

	if params.Limit > 0 {
		mods = append(mods, qm.Limit(params.Limit))
	}

	return mods
}
