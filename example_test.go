package gridpdf_test

import (
	"bytes"
	"fmt"

	"github.com/lvillar/gridpdf"
	"github.com/lvillar/gridpdf/canvas"
	"github.com/lvillar/gridpdf/grid"
	"github.com/lvillar/gridpdf/render"
	"github.com/lvillar/gridpdf/section"
)

type quote struct {
	Customer string
	Address  []string
	Total    float64
}

type quoteTemplate struct{}

func (quoteTemplate) Styles() (*render.Styles, error) {
	def := render.NewStyle("Default").WithFont(canvas.Font{Family: "Helvetica", Size: 10})
	return render.NewStyles(def,
		def.Copy("Title").WithFont(canvas.Font{Family: "Helvetica", Style: "B", Size: 18}).WithRelativeHeight(0.1),
		def.Copy("Box").WithMargin(grid.Uniform(1)).WithPadding(grid.Uniform(1)).WithBorderWidth(0.3),
		def.Copy("Band").WithBackground(canvas.Blue).WithForeground(canvas.White).WithPadding(grid.Symmetric(1, 0)),
	), nil
}

func (quoteTemplate) GridSize() (int, int) { return 60, 40 }

func (quoteTemplate) PageCount(any) (int, error) { return 1, nil }

func (quoteTemplate) Content(any) (section.Section, error) {
	customer := render.Model(func(_ *render.Context, q quote) string { return q.Customer })
	total := render.Model(func(_ *render.Context, q quote) string { return fmt.Sprintf("%.2f EUR", q.Total) })
	address := section.NewStackedText("address", render.Model(func(_ *render.Context, q quote) string {
		if len(q.Address) == 0 {
			return ""
		}
		return q.Address[0]
	}))

	billTo, err := section.NewHeaderContent("bill-to", render.Const("Bill to"), section.NewVStack("customer",
		section.NewTextBlock("name", customer),
		address,
	))
	if err != nil {
		return nil, err
	}
	return section.NewVStack("page",
		section.Styled(section.NewTextBlock("title", render.Const("Quote")), "Title"),
		section.Styled(billTo, "Box", "Band"),
		section.NewKeyValue("totals", section.KV("Total", total)),
	), nil
}

func ExampleGenerator_Build() {
	gen := gridpdf.New(quoteTemplate{}, gridpdf.WithPageSize(gridpdf.PageSizeA4))
	data, err := gen.Build(quote{Customer: "ACME Corp", Address: []string{"Main St 1"}, Total: 1250})
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		return
	}
	fmt.Println(bytes.HasPrefix(data, []byte("%PDF")))
	// Output: true
}
