package canadapost

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/99minutos/canadapost-gateway/internal/core/domain"
)

func formatWeight(kg float64) string {
	return fmt.Sprintf("%.3f", kg)
}

func formatDimension(cm float64) string {
	return fmt.Sprintf("%.1f", cm)
}

// parcelCharacteristics builds the rate form of the block: total weight plus
// the shape flags that are set.
func parcelCharacteristics(pkgs []domain.Package) *etree.Element {
	totals := domain.Aggregate(pkgs)
	el := etree.NewElement("parcel-characteristics")
	addText(el, "weight", formatWeight(totals.WeightKg))
	addShapeFlags(el, totals)
	return el
}

// shipmentParcelCharacteristics extends the rate form with dimensions and the
// document flag.
func shipmentParcelCharacteristics(pkgs []domain.Package, document bool) *etree.Element {
	totals := domain.Aggregate(pkgs)
	el := etree.NewElement("parcel-characteristics")
	addText(el, "weight", formatWeight(totals.WeightKg))
	if l, w, h, ok := shipmentDimensions(pkgs); ok {
		dims := el.CreateElement("dimensions")
		addText(dims, "length", formatDimension(l))
		addText(dims, "width", formatDimension(w))
		addText(dims, "height", formatDimension(h))
	}
	addShapeFlags(el, totals)
	addBool(el, "document", document)
	return el
}

func addShapeFlags(el *etree.Element, totals domain.ParcelTotals) {
	if totals.Tube {
		addBool(el, "mailing-tube", true)
	}
	if totals.Oversized {
		addBool(el, "oversized", true)
	}
	if totals.Unpackaged {
		addBool(el, "unpackaged", true)
	}
}

// shipmentDimensions reports the dimensions of a single-package shipment. All
// three must be present and at least one must be non-zero.
func shipmentDimensions(pkgs []domain.Package) (l, w, h float64, ok bool) {
	if len(pkgs) != 1 || len(pkgs[0].Dimensions) < 3 {
		return 0, 0, 0, false
	}
	d := pkgs[0].Dimensions
	if d[0] == 0 && d[1] == 0 && d[2] == 0 {
		return 0, 0, 0, false
	}
	return d[0], d[1], d[2], true
}
