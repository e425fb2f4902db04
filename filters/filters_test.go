package filters_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/filters"
)

var _ = Describe("Registry", func() {
	It("should hold every filter schema", func() {
		Expect(filters.Registry().Names()).To(Equal([]string{"announcement", "group", "message", "user"}))
	})

	It("should build a filter for each registered name", func() {
		registry := filters.Registry()
		for _, name := range registry.Names() {
			f, ok := filters.New(name)
			Expect(ok).To(BeTrue(), name)

			schema, _ := registry.Lookup(name)
			Expect(f.FilterSchema()).To(BeIdenticalTo(schema))
		}

		_, ok := filters.New("invoice")
		Expect(ok).To(BeFalse())
	})
})

var _ = Describe("Schemas", func() {
	It("should share the address schema", func() {
		announcement, _ := criteria.SchemaOf(&filters.AnnouncementFilter{})
		user, _ := criteria.SchemaOf(&filters.UserFilter{})

		a, _ := announcement.Lookup("address")
		u, _ := user.Lookup("address")
		Expect(a.Schema).To(BeIdenticalTo(u.Schema))
		Expect(a.Kind).To(Equal(criteria.FieldObject))
	})

	It("should declare group members as an array of objects", func() {
		group, _ := criteria.SchemaOf(&filters.GroupFilter{})
		members, ok := group.Lookup("members")
		Expect(ok).To(BeTrue())
		Expect(members.Kind).To(Equal(criteria.FieldArray))
		Expect(members.Schema).ToNot(BeNil())

		role, _ := members.Schema.Lookup("role")
		Expect(role.Allows("owner")).To(BeTrue())
		Expect(role.Allows("admin")).To(BeFalse())
	})
})
