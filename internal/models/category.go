package models

import (
	"encoding/json"
	"fmt"
)

// Category describes how a category label is styled in the UI. Older
// exports store a bare color string; newer ones store an object with a
// color and a sort order. Both shapes are accepted on input; output
// keeps whichever shape was read.
//
// Transactions themselves always carry category as a plain string;
// this type only lives at the boundary where the pipeline's output is
// consumed.
type Category struct {
	Color  string
	Order  int
	Styled bool // true when the source used the {color, order} object shape
}

type styledCategory struct {
	Color string `json:"color"`
	Order int    `json:"order"`
}

func (c Category) MarshalJSON() ([]byte, error) {
	if c.Styled {
		return json.Marshal(styledCategory{Color: c.Color, Order: c.Order})
	}
	return json.Marshal(c.Color)
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var color string
	if err := json.Unmarshal(data, &color); err == nil {
		*c = Category{Color: color}
		return nil
	}

	var styled styledCategory
	if err := json.Unmarshal(data, &styled); err != nil {
		return fmt.Errorf("category must be a color string or a {color, order} object: %w", err)
	}
	*c = Category{Color: styled.Color, Order: styled.Order, Styled: true}
	return nil
}
