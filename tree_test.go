package criteria_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/criteria-go"
)

var _ = Describe("Tree", func() {
	It("should keep insertion order and position on overwrite", func() {
		tree := criteria.NewTree().
			SetScalar("b", criteria.Int(1)).
			SetScalar("a", criteria.Int(2)).
			SetScalar("b", criteria.Int(3))

		Expect(tree.Names()).To(Equal([]string{"b", "a"}))
		node, ok := tree.Get("b")
		Expect(ok).To(BeTrue())
		Expect(node.Scalar().Equal(criteria.Int(3))).To(BeTrue())
	})

	It("should compare trees ignoring field order", func() {
		a := criteria.NewTree().
			SetScalar("x", criteria.String("1")).
			SetScalar("y", criteria.Bool(true))
		b := criteria.NewTree().
			SetScalar("y", criteria.Bool(true)).
			SetScalar("x", criteria.String("1"))

		Expect(a.Equal(b)).To(BeTrue())
		Expect(a.Equal(criteria.NewTree())).To(BeFalse())
	})

	It("should treat a nil tree as empty", func() {
		var tree *criteria.Tree
		Expect(tree.Len()).To(Equal(0))
		Expect(tree.Names()).To(BeNil())
		Expect(tree.Equal(criteria.NewTree())).To(BeTrue())
	})

	Describe("MarshalJSON", func() {
		It("should write fields in order with native booleans", func() {
			created := time.Date(2024, 3, 1, 10, 30, 0, 0, time.UTC)
			tree := criteria.NewTree().
				SetScalar("flag", criteria.Bool(true)).
				SetScalar("title", criteria.String("<flat>")).
				SetScalar("createdAtSince", criteria.Time(created)).
				Set("tags", criteria.ArrayNode(criteria.ScalarNode(criteria.String("a")))).
				Set("address", criteria.ObjectNode(criteria.NewTree().
					SetScalar("zipCode", criteria.Int(75001))))

			data, err := tree.MarshalJSON()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(Equal(
				`{"flag":true,"title":"<flat>","createdAtSince":"2024-03-01T10:30:00Z",` +
					`"tags":["a"],"address":{"zipCode":75001}}`,
			))
		})

		It("should render an empty tree as an empty object", func() {
			data, err := criteria.NewTree().MarshalJSON()
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(Equal("{}"))
		})
	})
})

var _ = Describe("Scalar", func() {
	It("should render direct string forms", func() {
		Expect(criteria.String("x").Text()).To(Equal("x"))
		Expect(criteria.Int(-4).Text()).To(Equal("-4"))
		Expect(criteria.Float(1.25).Text()).To(Equal("1.25"))
		Expect(criteria.Bool(false).Text()).To(Equal("false"))
		Expect(criteria.Null().String()).To(Equal("null"))
	})

	It("should compare kind and value", func() {
		Expect(criteria.Int(1).Equal(criteria.Int(1))).To(BeTrue())
		Expect(criteria.Int(1).Equal(criteria.Float(1))).To(BeFalse())
		Expect(criteria.String("1").Equal(criteria.Int(1))).To(BeFalse())

		t := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		Expect(criteria.Time(t).Equal(criteria.Time(t.In(time.FixedZone("CET", 3600))))).To(BeTrue())
	})
})

var _ = Describe("FieldPath", func() {
	It("should render key-path form", func() {
		Expect(criteria.Path(criteria.Name("address"), criteria.Name("locality")).String()).
			To(Equal("address[locality]"))
		Expect(criteria.Path(criteria.Name("tags"), criteria.Index(0)).String()).To(Equal("tags[0]"))
		Expect(criteria.Path(criteria.Name("tags"), criteria.OpenIndex()).String()).To(Equal("tags[]"))
		Expect(criteria.Path(criteria.Name("members"), criteria.Index(1), criteria.Name("role")).Names(".")).
			To(Equal("members.role"))
	})

	It("should not share backing arrays on Append", func() {
		base := make(criteria.FieldPath, 1, 4)
		base[0] = criteria.Name("address")

		a := base.Append(criteria.Name("locality"))
		b := base.Append(criteria.Name("country"))

		Expect(a.String()).To(Equal("address[locality]"))
		Expect(b.String()).To(Equal("address[country]"))
	})
})
