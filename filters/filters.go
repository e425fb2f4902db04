// Package filters declares the search filters of the listings service:
// announcements, users, groups and messages.
//
// Every filter field is nullable; a null field is not part of the search and
// never appears in an encoded filter.
package filters

import (
	"github.com/aarondl/null/v8"
	"github.com/nrfta/criteria-go"
)

// Names of the registered filter schemas.
const (
	AnnouncementName = "announcement"
	UserName         = "user"
	GroupName        = "group"
	MessageName      = "message"
)

var addressSchema = criteria.NewSchema("address").
	Scalar("locality", criteria.TypeString).
	Scalar("country", criteria.TypeString).
	Scalar("zipCode", criteria.TypeString)

var announcementSchema = criteria.NewSchema(AnnouncementName).
	Scalar("title", criteria.TypeString).
	Enum("type", "rent", "sale").
	Scalar("priceStart", criteria.TypeFloat).
	Scalar("priceEnd", criteria.TypeFloat).
	Scalar("roomsStart", criteria.TypeInt).
	Scalar("roomsEnd", criteria.TypeInt).
	Object("address", addressSchema).
	Scalar("withDescription", criteria.TypeBool).
	Scalar("withPictures", criteria.TypeBool).
	Array("tags", criteria.TypeString).
	Scalar("createdAtSince", criteria.TypeDate)

var userSchema = criteria.NewSchema(UserName).
	Scalar("firstname", criteria.TypeString).
	Scalar("lastname", criteria.TypeString).
	Scalar("email", criteria.TypeString).
	Enum("gender", "male", "female").
	Scalar("ageStart", criteria.TypeInt).
	Scalar("ageEnd", criteria.TypeInt).
	Enum("type", "search", "proposal").
	Object("address", addressSchema)

var memberSchema = criteria.NewSchema("member").
	Scalar("userId", criteria.TypeInt).
	Enum("role", "owner", "member")

var groupSchema = criteria.NewSchema(GroupName).
	Scalar("name", criteria.TypeString).
	Scalar("creatorId", criteria.TypeInt).
	ObjectArray("members", memberSchema)

var messageSchema = criteria.NewSchema(MessageName).
	Scalar("groupId", criteria.TypeInt).
	Scalar("creatorId", criteria.TypeInt).
	Scalar("contentLike", criteria.TypeString).
	Scalar("sinceDate", criteria.TypeDate)

// Registry returns a registry holding every filter schema of this package.
func Registry() *criteria.Registry {
	return criteria.NewRegistry().MustRegister(
		announcementSchema,
		userSchema,
		groupSchema,
		messageSchema,
	)
}

// New returns a zero filter for a registered schema name.
func New(name string) (criteria.Filter, bool) {
	switch name {
	case AnnouncementName:
		return &AnnouncementFilter{}, true
	case UserName:
		return &UserFilter{}, true
	case GroupName:
		return &GroupFilter{}, true
	case MessageName:
		return &MessageFilter{}, true
	default:
		return nil, false
	}
}

// Address narrows a search to a location.
type Address struct {
	Locality null.String `json:"locality"`
	Country  null.String `json:"country"`
	ZipCode  null.String `json:"zipCode"`
}

// AnnouncementFilter searches rent and sale announcements.
type AnnouncementFilter struct {
	Title           null.String  `json:"title"`
	Type            null.String  `json:"type"`
	PriceStart      null.Float64 `json:"priceStart"`
	PriceEnd        null.Float64 `json:"priceEnd"`
	RoomsStart      null.Int     `json:"roomsStart"`
	RoomsEnd        null.Int     `json:"roomsEnd"`
	Address         *Address     `json:"address"`
	WithDescription null.Bool    `json:"withDescription"`
	WithPictures    null.Bool    `json:"withPictures"`
	Tags            []string     `json:"tags"`
	CreatedAtSince  null.Time    `json:"createdAtSince"`
}

func (*AnnouncementFilter) FilterSchema() *criteria.Schema { return announcementSchema }

// UserFilter searches user profiles.
type UserFilter struct {
	Firstname null.String `json:"firstname"`
	Lastname  null.String `json:"lastname"`
	Email     null.String `json:"email"`
	Gender    null.String `json:"gender"`
	AgeStart  null.Int    `json:"ageStart"`
	AgeEnd    null.Int    `json:"ageEnd"`
	Type      null.String `json:"type"`
	Address   *Address    `json:"address"`
}

func (*UserFilter) FilterSchema() *criteria.Schema { return userSchema }

// Member matches one membership of a group.
type Member struct {
	UserID null.Int    `json:"userId"`
	Role   null.String `json:"role"`
}

// GroupFilter searches groups.
type GroupFilter struct {
	Name      null.String `json:"name"`
	CreatorID null.Int    `json:"creatorId"`
	Members   []Member    `json:"members"`
}

func (*GroupFilter) FilterSchema() *criteria.Schema { return groupSchema }

// MessageFilter searches the messages of a group.
type MessageFilter struct {
	GroupID     null.Int    `json:"groupId"`
	CreatorID   null.Int    `json:"creatorId"`
	ContentLike null.String `json:"contentLike"`
	SinceDate   null.Time   `json:"sinceDate"`
}

func (*MessageFilter) FilterSchema() *criteria.Schema { return messageSchema }
