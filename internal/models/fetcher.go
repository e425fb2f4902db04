package models

import (
	"context"

	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries/qm"

	"github.com/nrfta/criteria-go/sqlboiler"
)

// AnnouncementBindings maps the announcement filter and its sort properties
// to the announcements table.
func AnnouncementBindings() *sqlboiler.Bindings {
	cols := AnnouncementColumns
	return sqlboiler.NewBindings().
		Filter("title", cols.Title, sqlboiler.OpLike).
		Filter("type", cols.Type, sqlboiler.OpEq).
		Filter("priceStart", cols.Price, sqlboiler.OpGte).
		Filter("priceEnd", cols.Price, sqlboiler.OpLte).
		Filter("roomsStart", cols.Rooms, sqlboiler.OpGte).
		Filter("roomsEnd", cols.Rooms, sqlboiler.OpLte).
		Filter("address.locality", cols.Locality, sqlboiler.OpEq).
		Filter("address.country", cols.Country, sqlboiler.OpEq).
		Filter("address.zipCode", cols.ZipCode, sqlboiler.OpIn).
		Filter("withDescription", cols.Description, sqlboiler.OpPresent).
		Filter("createdAtSince", cols.CreatedAt, sqlboiler.OpGte).
		Sort("title", cols.Title).
		Sort("price", cols.Price).
		Sort("rooms", cols.Rooms).
		Sort("createdAt", cols.CreatedAt)
}

// NewAnnouncementFetcher returns a paging fetcher over the announcements
// table.
func NewAnnouncementFetcher(exec boil.ContextExecutor) *sqlboiler.Fetcher[*Announcement] {
	return sqlboiler.NewFetcher(
		func(ctx context.Context, mods ...qm.QueryMod) ([]*Announcement, error) {
			return Announcements(mods...).All(ctx, exec)
		},
		func(ctx context.Context, mods ...qm.QueryMod) (int64, error) {
			return Announcements(mods...).Count(ctx, exec)
		},
		AnnouncementBindings(),
	)
}
