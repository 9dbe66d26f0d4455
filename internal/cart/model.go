package cart

import (
	"sort"

	"github.com/shopspring/decimal"
)

type CartItem struct {
	ProductID int64
	Name      string
	Price     decimal.Decimal
	Quantity  int
}

func (i *CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// MaxQuantity caps a single line; checkout applies the same bound.
const MaxQuantity = 10000

// Cart is a per-session selection of products. Entries never hold a
// quantity <= 0; such updates delete the entry instead.
type Cart struct {
	items map[int64]*CartItem
}

func New() *Cart {
	return &Cart{items: make(map[int64]*CartItem)}
}

// Add increments the quantity of productID by one, creating the entry first
// when absent. Name and price of an existing entry are left untouched.
func (c *Cart) Add(productID int64, name string, price decimal.Decimal) *CartItem {
	item, ok := c.items[productID]
	if !ok {
		item = &CartItem{ProductID: productID, Name: name, Price: price}
		c.items[productID] = item
	}
	item.Quantity++
	return item
}

// UpdateQuantity sets the quantity exactly. Unknown ids are ignored.
func (c *Cart) UpdateQuantity(productID int64, quantity int) {
	item, ok := c.items[productID]
	if !ok {
		return
	}
	if quantity <= 0 {
		delete(c.items, productID)
		return
	}
	item.Quantity = quantity
}

func (c *Cart) Remove(productID int64) {
	delete(c.items, productID)
}

func (c *Cart) Clear() {
	clear(c.items)
}

func (c *Cart) Contains(productID int64) bool {
	_, ok := c.items[productID]
	return ok
}

func (c *Cart) Get(productID int64) (*CartItem, bool) {
	item, ok := c.items[productID]
	return item, ok
}

func (c *Cart) Len() int {
	return len(c.items)
}

func (c *Cart) IsEmpty() bool {
	return c.TotalQuantity() == 0
}

func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.items {
		total += item.Quantity
	}
	return total
}

func (c *Cart) TotalPrice() decimal.Decimal {
	total := decimal.Zero
	for _, item := range c.items {
		total = total.Add(item.Subtotal())
	}
	return total
}

// Items returns the entries ordered by product id.
func (c *Cart) Items() []*CartItem {
	out := make([]*CartItem, 0, len(c.items))
	for _, item := range c.items {
		out = append(out, item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
