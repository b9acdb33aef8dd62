package conveyor_test

import (
	"context"
	"fmt"

	"github.com/andriiyaremenko/conveyor"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Handler", func() {
	It("HandleFunc will yield success", func() {
		fn := conveyor.HandleFunc[struct{}](
			conveyor.LiftOk(func(_ context.Context, n int) int { return n + 1 }),
		)

		st, err := fn(context.TODO(), 1, struct{}{})

		Expect(err).ShouldNot(HaveOccurred())
		Expect(st).To(Equal(conveyor.Yield(2)))
	})

	It("HandleFunc will return error", func() {
		fn := conveyor.HandleFunc[struct{}](
			conveyor.LiftNoContext(func(int) (int, error) { return 0, fmt.Errorf("failed") }),
		)

		_, err := fn(context.TODO(), 1, struct{}{})

		Expect(err).Should(HaveOccurred())
		Expect(err).Should(MatchError("failed"))
	})

	It("PassThrough will yield same item", func() {
		fn := conveyor.PassThrough[int, string]()

		st, err := fn(context.TODO(), 42, "ignored")

		Expect(err).ShouldNot(HaveOccurred())
		Expect(st).To(Equal(conveyor.Yield(42)))
	})
})
