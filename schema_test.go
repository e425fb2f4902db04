package criteria_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/criteria-go"
)

type addressOnly struct{}

func (*addressOnly) FilterSchema() *criteria.Schema { return testAddressSchema }

var testAddressSchema = criteria.NewSchema("address").
	Scalar("locality", criteria.TypeString).
	Scalar("country", criteria.TypeString)

var testSchema = criteria.NewSchema("listing").
	Scalar("title", criteria.TypeString).
	Enum("type", "rent", "sale").
	Object("address", testAddressSchema).
	Array("tags", criteria.TypeString)

var _ = Describe("Schema", func() {
	It("should list fields in declaration order", func() {
		names := []string{}
		for _, f := range testSchema.Fields() {
			names = append(names, f.Name)
		}
		Expect(names).To(Equal([]string{"title", "type", "address", "tags"}))
	})

	It("should replace a redeclared field in place", func() {
		s := criteria.NewSchema("s").
			Scalar("a", criteria.TypeString).
			Scalar("b", criteria.TypeString).
			Scalar("a", criteria.TypeInt)

		fields := s.Fields()
		Expect(fields).To(HaveLen(2))
		Expect(fields[0].Name).To(Equal("a"))
		Expect(fields[0].Type).To(Equal(criteria.TypeInt))
		Expect(s.Order([]string{"b", "a"})).To(Equal([]string{"a", "b"}))
	})

	It("should check enum membership", func() {
		f, ok := testSchema.Lookup("type")
		Expect(ok).To(BeTrue())
		Expect(f.Allows("rent")).To(BeTrue())
		Expect(f.Allows("lease")).To(BeFalse())

		title, _ := testSchema.Lookup("title")
		Expect(title.Allows("anything")).To(BeTrue())
	})

	It("should report known paths at every level", func() {
		Expect(testSchema.Known(criteria.Path(criteria.Name("title")))).To(BeTrue())
		Expect(testSchema.Known(criteria.Path(criteria.Name("address"), criteria.Name("locality")))).To(BeTrue())
		Expect(testSchema.Known(criteria.Path(criteria.Name("tags"), criteria.Index(3)))).To(BeTrue())
		Expect(testSchema.Known(criteria.Path(criteria.Name("color")))).To(BeFalse())
		Expect(testSchema.Known(criteria.Path(criteria.Name("address"), criteria.Name("street")))).To(BeFalse())
	})

	It("should order undeclared names last", func() {
		Expect(testSchema.Order([]string{"zzz", "tags", "title"})).
			To(Equal([]string{"title", "tags", "zzz"}))
	})

	It("should parse scalar type names", func() {
		t, err := criteria.ParseScalarType("date")
		Expect(err).ToNot(HaveOccurred())
		Expect(t).To(Equal(criteria.TypeDate))

		_, err = criteria.ParseScalarType("uuid")
		Expect(err).To(HaveOccurred())
	})

	Describe("SchemaOf", func() {
		It("should recognize pointers and values of filter types", func() {
			s, ok := criteria.SchemaOf(&addressOnly{})
			Expect(ok).To(BeTrue())
			Expect(s.Name()).To(Equal("address"))

			_, ok = criteria.SchemaOf(addressOnly{})
			Expect(ok).To(BeTrue())
		})

		It("should refuse anything else", func() {
			_, ok := criteria.SchemaOf(struct{ Name string }{})
			Expect(ok).To(BeFalse())

			_, ok = criteria.SchemaOf(nil)
			Expect(ok).To(BeFalse())

			_, ok = criteria.SchemaOf(map[string]any{})
			Expect(ok).To(BeFalse())
		})
	})
})

var _ = Describe("Registry", func() {
	It("should register and look up schemas by name", func() {
		r := criteria.NewRegistry().MustRegister(testSchema, testAddressSchema)

		s, ok := r.Lookup("listing")
		Expect(ok).To(BeTrue())
		Expect(s).To(BeIdenticalTo(testSchema))
		Expect(r.Names()).To(Equal([]string{"address", "listing"}))
	})

	It("should refuse duplicates and unnamed schemas", func() {
		r := criteria.NewRegistry()
		Expect(r.Register(testSchema)).To(Succeed())
		Expect(r.Register(testSchema)).ToNot(Succeed())
		Expect(r.Register(criteria.NewSchema(""))).ToNot(Succeed())
		Expect(r.Register(nil)).ToNot(Succeed())
	})
})
