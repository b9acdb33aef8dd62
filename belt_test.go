package conveyor_test

import (
	"context"

	"github.com/andriiyaremenko/conveyor"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Belt", func() {
	ctx := context.TODO()

	It("produces every element of a slice in order", func() {
		belt := conveyor.FromSlice([]int{1, 2, 3})

		for _, expected := range []int{1, 2, 3} {
			v, ok, err := belt.Next(ctx)

			Expect(err).ShouldNot(HaveOccurred())
			Expect(ok).To(BeTrue())
			Expect(v).To(Equal(expected))
		}

		_, ok, err := belt.Next(ctx)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("produces values in order", func() {
		belt := conveyor.FromValues("a", "b")

		v, ok, err := belt.Next(ctx)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("a"))

		v, ok, err = belt.Next(ctx)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("b"))

		_, ok, err = belt.Next(ctx)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("drains a channel until it is closed", func() {
		ch := make(chan int, 2)
		ch <- 1
		ch <- 2
		close(ch)

		belt := conveyor.FromChan(ch)

		v, ok, err := belt.Next(ctx)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(1))

		v, ok, err = belt.Next(ctx)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal(2))

		_, ok, err = belt.Next(ctx)

		Expect(err).ShouldNot(HaveOccurred())
		Expect(ok).To(BeFalse())
	})

	It("fails a blocked channel pull when context is canceled", func() {
		belt := conveyor.FromChan(make(chan int))

		canceled, cancel := context.WithCancel(ctx)
		cancel()

		_, ok, err := belt.Next(canceled)

		Expect(ok).To(BeFalse())
		Expect(err).Should(MatchError(context.Canceled))
	})
})
