package criteria_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
)

// recordingCodec encodes a tree as its JSON and decodes to a fixed tree.
type recordingCodec struct {
	decoded     *criteria.Tree
	decodeCalls int
}

func (c *recordingCodec) Name() string { return "recording" }

func (c *recordingCodec) Encode(t *criteria.Tree) (string, error) {
	data, err := t.MarshalJSON()
	return string(data), err
}

func (c *recordingCodec) Decode(s string, schema *criteria.Schema) (*criteria.Tree, error) {
	c.decodeCalls++
	if schema == nil {
		return nil, criteria.Unsupported(c.Name(), nil)
	}
	return c.decoded, nil
}

// titleFilter is a filter with a single title field.
type titleFilter struct {
	Title string
}

func (*titleFilter) FilterSchema() *criteria.Schema {
	return criteria.NewSchema("title").Scalar("title", criteria.TypeString)
}

type titleMapper struct{}

func (titleMapper) ToFieldTree(filter any) (*criteria.Tree, error) {
	f := filter.(*titleFilter)
	return criteria.NewTree().SetScalar("title", criteria.String(f.Title)), nil
}

func (titleMapper) FromFieldTree(t *criteria.Tree, target any) error {
	node, ok := t.Get("title")
	if ok {
		target.(*titleFilter).Title = node.Scalar().Text()
	}
	return nil
}

func (titleMapper) SchemaOf(target any) (*criteria.Schema, bool) {
	return criteria.SchemaOf(target)
}

var _ = Describe("Transport", func() {
	var (
		codec     *recordingCodec
		transport *criteria.Transport
	)

	BeforeEach(func() {
		codec = &recordingCodec{
			decoded: criteria.NewTree().SetScalar("title", criteria.String("loft")),
		}
		transport = criteria.NewTransport(codec, titleMapper{})
	})

	It("should marshal through the mapper and codec", func() {
		s, err := transport.Marshal(&titleFilter{Title: "loft"})
		Expect(err).ToNot(HaveOccurred())
		Expect(s).To(Equal(`{"title":"loft"}`))
	})

	It("should unmarshal into a filter", func() {
		var f titleFilter
		Expect(transport.Unmarshal("anything", &f)).To(Succeed())
		Expect(f.Title).To(Equal("loft"))
	})

	It("should refuse unrecognized types before decoding", func() {
		var target struct{ Title string }
		err := transport.Unmarshal("title:loft", &target)

		Expect(errors.Is(err, criteria.ErrUnsupportedEncoding)).To(BeTrue())
		Expect(errors.Is(err, criteria.ErrMalformedInput)).To(BeFalse())
		Expect(codec.decodeCalls).To(Equal(0))

		_, err = transport.Marshal(target)
		Expect(errors.Is(err, criteria.ErrUnsupportedEncoding)).To(BeTrue())
	})

	It("should name the target type in the error", func() {
		_, err := transport.Decode("x", 42)

		var unsupported *criteria.UnsupportedEncodingError
		Expect(errors.As(err, &unsupported)).To(BeTrue())
		Expect(unsupported.Target).To(Equal("int"))
		Expect(unsupported.Codec).To(Equal("recording"))
	})
})
