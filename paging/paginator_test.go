package paging_test

import (
	"context"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/friendsofgo/errors"
	"github.com/nrfta/criteria-go"
	"github.com/nrfta/criteria-go/paging"
)

// sliceFetcher serves pages out of an in-memory slice.
type sliceFetcher struct {
	items      []string
	fetchCalls int
	lastParams paging.FetchParams
	countErr   error
	fetchErr   error
}

func (f *sliceFetcher) Fetch(_ context.Context, params paging.FetchParams) ([]string, error) {
	f.fetchCalls++
	f.lastParams = params
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}

	start := params.Offset
	if start > len(f.items) {
		start = len(f.items)
	}
	end := len(f.items)
	if params.Limit > 0 && start+params.Limit < end {
		end = start + params.Limit
	}
	return f.items[start:end], nil
}

func (f *sliceFetcher) Count(_ context.Context, _ paging.FetchParams) (int64, error) {
	if f.countErr != nil {
		return 0, f.countErr
	}
	return int64(len(f.items)), nil
}

var _ = Describe("Paginator", func() {
	var (
		ctx     context.Context
		fetcher *sliceFetcher
	)

	BeforeEach(func() {
		ctx = context.Background()
		fetcher = &sliceFetcher{items: []string{"a", "b", "c", "d", "e"}}
	})

	It("should fetch the requested window", func() {
		filter := criteria.NewTree().SetScalar("title", criteria.String("x"))
		pageable := paging.NewPageable(2, 2, paging.Desc("createdAt"))

		page, err := paging.NewPaginator[string](fetcher).Paginate(ctx, pageable, filter)
		Expect(err).ToNot(HaveOccurred())

		Expect(page.Content()).To(Equal([]string{"c", "d"}))
		Expect(page.Total()).To(Equal(5))
		Expect(page.TotalPages()).To(Equal(3))
		Expect(page.HasNext()).To(BeTrue())
		Expect(page.HasPrev()).To(BeTrue())

		Expect(fetcher.lastParams.Limit).To(Equal(2))
		Expect(fetcher.lastParams.Offset).To(Equal(2))
		Expect(fetcher.lastParams.Filter).To(BeIdenticalTo(filter))
		Expect(fetcher.lastParams.Sorts).To(Equal([]paging.Sort{paging.Desc("createdAt")}))

		Expect(page.Metadata.Strategy).To(Equal(paging.StrategyOffset))
		Expect(page.Metadata.ItemsExamined).To(Equal(2))
	})

	It("should list everything for an unpaged request", func() {
		page, err := paging.Paginate[string](ctx, fetcher, paging.NewPageable(1, 0), nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(page.Content()).To(HaveLen(5))
		Expect(page.TotalPages()).To(Equal(0))
		Expect(page.HasNext()).To(BeFalse())
	})

	It("should skip the fetch when nothing matches", func() {
		fetcher.items = nil

		page, err := paging.Paginate[string](ctx, fetcher, paging.NewPageable(1, 20), nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(fetcher.fetchCalls).To(Equal(0))
		Expect(page.Content()).To(BeEmpty())
		Expect(page.HasNext()).To(BeFalse())
		Expect(page.HasPrev()).To(BeFalse())
	})

	It("should skip the fetch past the last page", func() {
		page, err := paging.Paginate[string](ctx, fetcher, paging.NewPageable(7, 2), nil)
		Expect(err).ToNot(HaveOccurred())
		Expect(fetcher.fetchCalls).To(Equal(0))
		Expect(page.Total()).To(Equal(5))
		Expect(page.IsLast()).To(BeTrue())
	})

	DescribeTable("pages too far out to address",
		func(pageNum int) {
			page, err := paging.Paginate[string](ctx, fetcher, paging.NewPageable(pageNum, 20), nil)
			Expect(err).ToNot(HaveOccurred())
			Expect(fetcher.fetchCalls).To(Equal(0))
			Expect(page.Content()).To(BeEmpty())
			Expect(page.HasNext()).To(BeFalse())
		},
		Entry("largest page", math.MaxInt),
		Entry("offset overflowing the page size", math.MaxInt/10),
	)

	It("should wrap count errors", func() {
		fetcher.countErr = errors.New("connection refused")

		_, err := paging.Paginate[string](ctx, fetcher, paging.NewPageable(1, 2), nil)
		Expect(err).To(MatchError(ContainSubstring("count items")))
		Expect(errors.Is(err, fetcher.countErr)).To(BeTrue())
	})

	It("should wrap fetch errors", func() {
		fetcher.fetchErr = errors.New("timeout")

		_, err := paging.Paginate[string](ctx, fetcher, paging.NewPageable(1, 2), nil)
		Expect(err).To(MatchError(ContainSubstring("fetch items")))
	})
})
