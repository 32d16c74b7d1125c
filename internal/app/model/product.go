package model

// Product is one row of the price listing. IDs are opaque strings: the seed
// catalog keeps its historical numeric ids, newly created products get UUIDs.
type Product struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Brand           string   `json:"brand"`
	Category        string   `json:"category"`
	CurrentPrice    float64  `json:"current_price"`
	Characteristics []string `json:"characteristics,omitempty"`
}

// Clone returns a copy that shares no slices with the receiver.
func (p Product) Clone() Product {
	out := p
	if p.Characteristics != nil {
		out.Characteristics = append([]string(nil), p.Characteristics...)
	}
	return out
}

// AdjustmentType selects how a bulk price adjustment is applied.
type AdjustmentType string

const (
	AdjustmentPercentage AdjustmentType = "percentage"
	AdjustmentFixed      AdjustmentType = "fixed"
)

// Valid reports whether t is one of the known adjustment types.
func (t AdjustmentType) Valid() bool {
	return t == AdjustmentPercentage || t == AdjustmentFixed
}
