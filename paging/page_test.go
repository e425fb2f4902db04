package paging_test

import (
	"math"
	"net/url"
	"strconv"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go/paging"
)

var _ = Describe("Page", func() {
	It("should have no page count for an unpaged request", func() {
		page := paging.NewPage([]string{}, 0, paging.NewPageable(1, 0))
		Expect(page.TotalPages()).To(Equal(0))
		Expect(page.HasNext()).To(BeFalse())
	})

	It("should have no neighbours when there is nothing", func() {
		page := paging.NewPage([]string{}, 0, paging.NewPageable(1, 20))
		Expect(page.HasNext()).To(BeFalse())
		Expect(page.HasPrev()).To(BeFalse())
		Expect(page.IsFirst()).To(BeTrue())
		Expect(page.IsLast()).To(BeTrue())
	})

	It("should round the page count up", func() {
		page := paging.NewPage(make([]int, 1), 81, paging.NewPageable(5, 20))
		Expect(page.TotalPages()).To(Equal(5))
		Expect(page.IsLast()).To(BeTrue())
		Expect(page.HasPrev()).To(BeTrue())
	})

	DescribeTable("navigation",
		func(pageNum, size, total, totalPages int, hasPrev, hasNext bool) {
			page := paging.NewPage([]int{}, total, paging.NewPageable(pageNum, size))
			Expect(page.TotalPages()).To(Equal(totalPages))
			Expect(page.HasPrev()).To(Equal(hasPrev))
			Expect(page.HasNext()).To(Equal(hasNext))
			Expect(page.IsFirst()).To(Equal(!hasPrev))
			Expect(page.IsLast()).To(Equal(!hasNext))
		},
		Entry("first of many", 1, 10, 95, 10, false, true),
		Entry("middle", 4, 10, 95, 10, true, true),
		Entry("exact last", 4, 25, 100, 4, true, false),
		Entry("single page", 1, 50, 7, 1, false, false),
		Entry("past the end", 9, 10, 20, 2, true, false),
		Entry("largest page number", math.MaxInt, 20, 10, 1, true, false),
	)

	It("should not wrap around on the largest page number", func() {
		req := paging.RequestFromQuery(url.Values{
			"page": {strconv.Itoa(math.MaxInt)},
			"size": {"20"},
		})
		pageable := paging.NewPageConfig().Pageable(req)
		page := paging.NewPage([]int{}, 10, pageable)

		Expect(page.Page()).To(Equal(math.MaxInt))
		Expect(page.HasNext()).To(BeFalse())
		Expect(page.IsLast()).To(BeTrue())
		Expect(pageable.Offset()).To(Equal(math.MaxInt))
	})

	It("should count pages for totals near the integer limit", func() {
		page := paging.NewPage([]int{}, math.MaxInt, paging.NewPageable(1, 2))
		Expect(page.TotalPages()).To(Equal(math.MaxInt/2 + 1))
		Expect(page.HasNext()).To(BeTrue())
	})

	It("should expose the request", func() {
		page := paging.NewPage([]int{1, 2}, 2, paging.NewPageable(1, 10, paging.Asc("id")))
		Expect(page.Content()).To(Equal([]int{1, 2}))
		Expect(page.Page()).To(Equal(1))
		Expect(page.Size()).To(Equal(10))
		Expect(page.Total()).To(Equal(2))
		Expect(page.Sorts()).To(Equal([]paging.Sort{paging.Asc("id")}))
	})

	It("should never hold nil content", func() {
		page := paging.NewPage[int](nil, 0, paging.NewPageable(1, 10))
		Expect(page.Content()).ToNot(BeNil())
		Expect(page.Content()).To(BeEmpty())
	})

	Describe("Map", func() {
		It("should convert content and keep navigation", func() {
			page := paging.NewPage([]int{1, 2, 3}, 30, paging.NewPageable(2, 3))

			mapped, err := paging.Map(page, func(i int) (string, error) {
				return strconv.Itoa(i * 10), nil
			})
			Expect(err).ToNot(HaveOccurred())
			Expect(mapped.Content()).To(Equal([]string{"10", "20", "30"}))
			Expect(mapped.TotalPages()).To(Equal(10))
			Expect(mapped.Page()).To(Equal(2))
		})

		It("should stop at the first conversion error", func() {
			page := paging.NewPage([]int{1, 2}, 2, paging.NewPageable(1, 10))
			boom := errors.New("boom")

			_, err := paging.Map(page, func(i int) (int, error) {
				if i == 2 {
					return 0, boom
				}
				return i, nil
			})
			Expect(err).To(MatchError(boom))
		})
	})
})
