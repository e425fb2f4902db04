package paging_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/nrfta/criteria-go/paging"
)

var _ = Describe("Sort", func() {
	It("should parse descending and ascending entries in order", func() {
		sorts := paging.ParseSorts([]string{"-createdAt", "title"})

		Expect(sorts).To(Equal([]paging.Sort{
			{Property: "createdAt", Direction: paging.DESC},
			{Property: "title", Direction: paging.ASC},
		}))
	})

	It("should drop blank entries", func() {
		sorts := paging.ParseSorts([]string{"", "  ", "-", "price"})
		Expect(sorts).To(Equal([]paging.Sort{paging.Asc("price")}))
	})

	It("should split comma separated entries", func() {
		sorts := paging.ParseSorts([]string{"-createdAt,title", "id"})
		Expect(sorts).To(Equal([]paging.Sort{
			paging.Desc("createdAt"), paging.Asc("title"), paging.Asc("id"),
		}))
	})

	It("should render sorts back to request form", func() {
		Expect(paging.FormatSorts([]paging.Sort{paging.Desc("createdAt"), paging.Asc("title")})).
			To(Equal("-createdAt,title"))
		Expect(paging.DESC.String()).To(Equal("DESC"))
		Expect(paging.ASC.String()).To(Equal("ASC"))
	})
})
