package pipeline

import (
	"errors"
	"strings"

	"github.com/kartoza/rf-radar/internal/chart"
	"github.com/kartoza/rf-radar/internal/table"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Run", func() {
	Context("before the first trigger", func() {
		It("returns the placeholder even when text is present", func() {
			res := Run("1\t2", false)
			Expect(res.Kind).To(Equal(KindPlaceholder))
			Expect(res.Message).To(Equal(MsgPlaceholder))
			Expect(res.Figure).To(BeNil())
			Expect(res.IsError()).To(BeFalse())
		})

		It("returns the placeholder for empty text", func() {
			res := Run("", false)
			Expect(res.Kind).To(Equal(KindPlaceholder))
		})
	})

	Context("when triggered", func() {
		It("returns the placeholder when nothing was pasted", func() {
			res := Run("", true)
			Expect(res.Kind).To(Equal(KindPlaceholder))
			Expect(res.IsError()).To(BeFalse())
		})

		It("builds a chart for valid data", func() {
			res := Run("1\t2\n3\t4\n5\t6", true)
			Expect(res.OK()).To(BeTrue())
			Expect(res.Message).To(BeEmpty())
			Expect(res.Figure).NotTo(BeNil())
			Expect(res.Figure.Series[0].R).To(Equal([]float64{1, 3, 5, 1}))
			Expect(res.Figure.Series[1].R).To(Equal([]float64{2, 4, 6, 2}))
			Expect(res.Figure.RadialAxis.Range).To(Equal([2]float64{0, 6}))
		})

		It("asks for two columns when only one is given", func() {
			res := Run("1\n2\n3", true)
			Expect(res.Kind).To(Equal(KindInsufficientColumns))
			Expect(res.Message).To(Equal(MsgInsufficientColumns))
			Expect(res.Figure).To(BeNil())
			Expect(errors.Is(res.Err, table.ErrInsufficientColumns)).To(BeTrue())
		})

		DescribeTable("reports invalid format",
			func(raw string) {
				res := Run(raw, true)
				Expect(res.Kind).To(Equal(KindFormatError))
				Expect(res.Message).To(Equal(MsgFormatError))
				Expect(res.Figure).To(BeNil())
				Expect(res.IsError()).To(BeTrue())
			},
			Entry("ragged rows", "1\t2\n3\t4\t5"),
			Entry("non-numeric cell", "1\t2\nx\t4"),
			Entry("whitespace only", "   \n  "),
		)

		It("keeps successive calls independent", func() {
			bad := Run("oops", true)
			Expect(bad.IsError()).To(BeTrue())

			good := Run("1\t2\n3\t4", true)
			Expect(good.OK()).To(BeTrue())

			other := Run("7\t8\n9\t10", true)
			Expect(other.Figure.ID).NotTo(Equal(good.Figure.ID))
			Expect(good.Figure.Series[0].R).To(Equal([]float64{1, 3, 1}))
		})

		It("handles a large paste", func() {
			rows := make([]string, 360)
			for i := range rows {
				rows[i] = "1.25\t2.5"
			}
			res := Run(strings.Join(rows, "\n"), true)
			Expect(res.OK()).To(BeTrue())
			Expect(res.Figure.Samples()).To(Equal(360))
			Expect(res.Figure.Series[0].ThetaLabels[1]).To(Equal("1.0°"))
		})
	})
})

var _ = Describe("recovery", func() {
	It("turns a panic while building into an unexpected error", func() {
		DeferCleanup(func() { buildFigure = chart.Build })
		buildFigure = func(*table.Table) (*chart.Figure, error) {
			panic("index out of range")
		}

		res := Run("1\t2\n3\t4", true)
		Expect(res.Kind).To(Equal(KindUnexpectedError))
		Expect(res.IsError()).To(BeTrue())
		Expect(res.Figure).To(BeNil())
		Expect(res.Message).To(HavePrefix("Error processing data: "))
		Expect(res.Message).To(ContainSubstring("index out of range"))
		Expect(res.Err).To(HaveOccurred())
	})

	It("reports a build error as an unexpected error", func() {
		DeferCleanup(func() { buildFigure = chart.Build })
		buildFigure = func(*table.Table) (*chart.Figure, error) {
			return nil, errors.New("layout failed")
		}

		res := Run("1\t2", true)
		Expect(res.Kind).To(Equal(KindUnexpectedError))
		Expect(res.Message).To(Equal("Error processing data: layout failed"))
	})
})

var _ = Describe("classify", func() {
	It("maps unknown errors to unexpected errors with a diagnostic", func() {
		res := classify(errors.New("disk on fire"))
		Expect(res.Kind).To(Equal(KindUnexpectedError))
		Expect(res.Message).To(Equal("Error processing data: disk on fire"))
	})
})
