package schemafile_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/filters"
	"github.com/nrfta/criteria-go/mapper"
	"github.com/nrfta/criteria-go/opaque"
	"github.com/nrfta/criteria-go/plain"
	"github.com/nrfta/criteria-go/schemafile"
)

const announcementYAML = `
schemas:
  - name: announcement
    fields:
      - {name: title, type: string}
      - {name: type, type: enum, values: [rent, sale]}
      - {name: priceStart, type: float}
      - {name: address, object: address}
      - {name: tags, type: string, array: true}
  - name: address
    fields:
      - {name: locality, type: string}
      - {name: country, type: string}
`

func load(doc string) (*criteria.Registry, error) {
	return schemafile.Load(strings.NewReader(doc))
}

var _ = Describe("Load", func() {
	It("should build schemas and resolve forward references", func() {
		registry, err := load(announcementYAML)
		Expect(err).ToNot(HaveOccurred())
		Expect(registry.Names()).To(Equal([]string{"address", "announcement"}))

		schema, ok := registry.Lookup("announcement")
		Expect(ok).To(BeTrue())

		var names []string
		for _, f := range schema.Fields() {
			names = append(names, f.Name)
		}
		Expect(names).To(Equal([]string{"title", "type", "priceStart", "address", "tags"}))

		typ, _ := schema.Lookup("type")
		Expect(typ.Allows("rent")).To(BeTrue())
		Expect(typ.Allows("lease")).To(BeFalse())

		address, _ := schema.Lookup("address")
		Expect(address.Kind).To(Equal(criteria.FieldObject))
		Expect(address.Schema.Name()).To(Equal("address"))

		tags, _ := schema.Lookup("tags")
		Expect(tags.Kind).To(Equal(criteria.FieldArray))
		Expect(tags.Type).To(Equal(criteria.TypeString))
	})

	It("should return an empty registry for an empty document", func() {
		registry, err := load("")
		Expect(err).ToNot(HaveOccurred())
		Expect(registry.Names()).To(BeEmpty())
	})

	It("should load from a file", func() {
		path := filepath.Join(GinkgoT().TempDir(), "schemas.yaml")
		Expect(os.WriteFile(path, []byte(announcementYAML), 0o600)).To(Succeed())

		registry, err := schemafile.LoadFromFile(path)
		Expect(err).ToNot(HaveOccurred())
		_, ok := registry.Lookup("address")
		Expect(ok).To(BeTrue())
	})

	It("should report a missing file", func() {
		_, err := schemafile.LoadFromFile(filepath.Join(GinkgoT().TempDir(), "none.yaml"))
		Expect(err).To(MatchError(ContainSubstring("read file")))
	})

	DescribeTable("invalid documents",
		func(doc string, message string) {
			_, err := load(doc)
			Expect(err).To(MatchError(ContainSubstring(message)))
		},
		Entry("unknown key", `
schemas:
  - name: a
    colour: red
`, "colour"),
		Entry("missing schema name", `
schemas:
  - fields: [{name: x, type: string}]
`, "name is required"),
		Entry("duplicate schema", `
schemas:
  - {name: a, fields: [{name: x, type: string}]}
  - {name: a, fields: [{name: y, type: string}]}
`, `schema "a" declared twice`),
		Entry("duplicate field", `
schemas:
  - {name: a, fields: [{name: x, type: string}, {name: x, type: int}]}
`, "a.x: field declared twice"),
		Entry("missing type", `
schemas:
  - {name: a, fields: [{name: x}]}
`, "type or object is required"),
		Entry("type and object", `
schemas:
  - {name: a, fields: [{name: x, type: string, object: b}]}
`, "exclusive"),
		Entry("unknown type", `
schemas:
  - {name: a, fields: [{name: x, type: decimal}]}
`, `unknown scalar type "decimal"`),
		Entry("enum without values", `
schemas:
  - {name: a, fields: [{name: x, type: enum}]}
`, "enum fields need values"),
		Entry("values on a string", `
schemas:
  - {name: a, fields: [{name: x, type: string, values: [p]}]}
`, "only allowed on enum fields"),
		Entry("unknown reference", `
schemas:
  - {name: a, fields: [{name: x, object: b}]}
`, `unknown schema "b"`),
		Entry("reference cycle", `
schemas:
  - {name: a, fields: [{name: x, object: b}]}
  - {name: b, fields: [{name: y, object: a}]}
`, `reference cycle through schema "a"`),
	)
})

var _ = Describe("Write", func() {
	It("should describe a compiled schema so that it loads back identically", func() {
		announcement, _ := filters.Registry().Lookup(filters.AnnouncementName)

		var buf bytes.Buffer
		Expect(schemafile.Write(&buf, announcement)).To(Succeed())
		Expect(buf.String()).To(ContainSubstring("name: address"))

		registry, err := schemafile.Load(&buf)
		Expect(err).ToNot(HaveOccurred())

		loaded, ok := registry.Lookup(filters.AnnouncementName)
		Expect(ok).To(BeTrue())
		Expect(schemafile.Describe(loaded)).To(Equal(schemafile.Describe(announcement)))
	})
})

var _ = Describe("Document", func() {
	var schema *criteria.Schema

	BeforeEach(func() {
		registry, err := load(announcementYAML)
		Expect(err).ToNot(HaveOccurred())
		schema, _ = registry.Lookup("announcement")
	})

	It("should be recognized as a filter", func() {
		got, ok := criteria.SchemaOf(schemafile.NewDocument(schema))
		Expect(ok).To(BeTrue())
		Expect(got).To(BeIdenticalTo(schema))
	})

	It("should travel through both codecs", func() {
		for _, codec := range []criteria.Codec{plain.NewCodec(), opaque.NewCodec()} {
			transport := criteria.NewTransport(codec, mapper.New())

			in := schemafile.NewDocument(schema)
			Expect(in.UnmarshalJSON([]byte(
				`{"tags":["sea"],"title":"loft","address":{"locality":"Paris"},"priceStart":1200.5}`,
			))).To(Succeed())

			encoded, err := transport.Marshal(in)
			Expect(err).ToNot(HaveOccurred())

			out := schemafile.NewDocument(schema)
			Expect(transport.Unmarshal(encoded, out)).To(Succeed())

			Expect(out.Values()).To(HaveKeyWithValue("title", "loft"))
			Expect(out.Values()).To(HaveKeyWithValue("priceStart", 1200.5))
			Expect(out.Values()).To(HaveKeyWithValue("tags", []any{"sea"}))
			Expect(out.Values()).To(HaveKeyWithValue("address", map[string]any{"locality": "Paris"}))
		}
	})

	It("should render plain keys in schema order", func() {
		in := schemafile.NewDocument(schema)
		Expect(in.UnmarshalJSON([]byte(`{"tags":["sea"],"title":"loft"}`))).To(Succeed())

		encoded, err := criteria.NewTransport(plain.NewCodec(), mapper.New()).Marshal(in)
		Expect(err).ToNot(HaveOccurred())
		Expect(encoded).To(Equal("title:loft,tags[0]:sea"))
	})
})
