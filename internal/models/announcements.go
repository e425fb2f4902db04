package models

import (
	"context"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/aarondl/sqlboiler/v4/boil"
	"github.com/aarondl/sqlboiler/v4/queries"
	"github.com/aarondl/sqlboiler/v4/queries/qm"
	"github.com/friendsofgo/errors"
)

// Announcement is an object representing the database table.
type Announcement struct {
	ID          string      `boil:"id" json:"id"`
	Title       string      `boil:"title" json:"title"`
	Type        string      `boil:"type" json:"type"`
	Price       float64     `boil:"price" json:"price"`
	Rooms       int         `boil:"rooms" json:"rooms"`
	Locality    string      `boil:"locality" json:"locality"`
	Country     string      `boil:"country" json:"country"`
	ZipCode     string      `boil:"zip_code" json:"zip_code"`
	Description null.String `boil:"description" json:"description,omitempty"`
	CreatedAt   time.Time   `boil:"created_at" json:"created_at"`
}

// AnnouncementColumns holds the column names of the announcements table.
var AnnouncementColumns = struct {
	ID          string
	Title       string
	Type        string
	Price       string
	Rooms       string
	Locality    string
	Country     string
	ZipCode     string
	Description string
	CreatedAt   string
}{
	ID:          "id",
	Title:       "title",
	Type:        "type",
	Price:       "price",
	Rooms:       "rooms",
	Locality:    "locality",
	Country:     "country",
	ZipCode:     "zip_code",
	Description: "description",
	CreatedAt:   "created_at",
}

// TableNames holds the quoted-free table names.
var TableNames = struct {
	Announcements string
}{
	Announcements: "announcements",
}

// AnnouncementSlice is an alias for a slice of pointers to Announcement.
type AnnouncementSlice []*Announcement

type announcementQuery struct {
	*queries.Query
}

// Announcements retrieves all the records using an executor.
func Announcements(mods ...qm.QueryMod) announcementQuery {
	mods = append(mods, qm.From("\"announcements\""))
	q := NewQuery(mods...)
	if len(queries.GetSelect(q)) == 0 {
		queries.SetSelect(q, []string{"\"announcements\".*"})
	}

	return announcementQuery{q}
}

// All returns all Announcement records from the query.
func (q announcementQuery) All(ctx context.Context, exec boil.ContextExecutor) (AnnouncementSlice, error) {
	var o []*Announcement

	err := q.Bind(ctx, exec, &o)
	if err != nil {
		return nil, errors.Wrap(err, "models: failed to assign all query results to Announcement slice")
	}

	return o, nil
}

// Count returns the count of all Announcement records in the query.
func (q announcementQuery) Count(ctx context.Context, exec boil.ContextExecutor) (int64, error) {
	var count int64

	queries.SetSelect(q.Query, nil)
	queries.SetCount(q.Query)

	err := q.Query.QueryRowContext(ctx, exec).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "models: failed to count announcements rows")
	}

	return count, nil
}
