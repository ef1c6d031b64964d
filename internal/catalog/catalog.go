// internal/catalog/catalog.go
package catalog

import "fmt"

// DataType is the wire type of a register payload.
type DataType uint8

const (
	Int16 DataType = iota
	Uint16
	Int32
	Float32
	Bool
)

// PayloadSize returns the on-wire payload width in bytes.
func (t DataType) PayloadSize() int {
	switch t {
	case Int32, Float32:
		return 4
	default:
		return 2
	}
}

func (t DataType) String() string {
	switch t {
	case Int16:
		return "int16"
	case Uint16:
		return "uint16"
	case Int32:
		return "int32"
	case Float32:
		return "float"
	case Bool:
		return "bool"
	default:
		return fmt.Sprintf("datatype(%d)", uint8(t))
	}
}

// Access is the permitted direction for a register.
type Access uint8

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

func (a Access) Readable() bool { return a != WriteOnly }
func (a Access) Writable() bool { return a != ReadOnly }

// Descriptor is the immutable metadata for one register.
// The address/type pairing is fixed for the lifetime of a catalog entry.
type Descriptor struct {
	Name    string
	Address uint16
	Type    DataType
	Unit    string
	Min     float64
	Max     float64
	Access  Access
}

// Catalog maps register names and addresses to descriptors for one
// device variant. Built once, read-only afterwards.
type Catalog struct {
	product string
	byName  map[string]*Descriptor
	byAddr  map[uint16]*Descriptor
	order   []string
}

// New builds a catalog from a descriptor table.
// Duplicate names or addresses are a table bug and rejected.
func New(product string, regs []Descriptor) (*Catalog, error) {
	if product == "" {
		return nil, fmt.Errorf("catalog: product name required")
	}
	if len(regs) == 0 {
		return nil, fmt.Errorf("catalog: at least one register required")
	}

	c := &Catalog{
		product: product,
		byName:  make(map[string]*Descriptor, len(regs)),
		byAddr:  make(map[uint16]*Descriptor, len(regs)),
	}

	for i := range regs {
		d := regs[i]
		if d.Name == "" {
			return nil, fmt.Errorf("catalog: register %d has no name", i)
		}
		if d.Min > d.Max {
			return nil, fmt.Errorf("catalog: register %q: min %g > max %g", d.Name, d.Min, d.Max)
		}
		if _, dup := c.byName[d.Name]; dup {
			return nil, fmt.Errorf("catalog: duplicate register name %q", d.Name)
		}
		if prev, dup := c.byAddr[d.Address]; dup {
			return nil, fmt.Errorf("catalog: address %d used by %q and %q", d.Address, prev.Name, d.Name)
		}
		stored := d
		c.byName[d.Name] = &stored
		c.byAddr[d.Address] = &stored
		c.order = append(c.order, d.Name)
	}

	return c, nil
}

// Product returns the device variant this catalog describes.
func (c *Catalog) Product() string { return c.product }

// ByName looks a register up by its logical name.
func (c *Catalog) ByName(name string) (*Descriptor, bool) {
	d, ok := c.byName[name]
	return d, ok
}

// ByAddress looks a register up by its wire address.
func (c *Catalog) ByAddress(addr uint16) (*Descriptor, bool) {
	d, ok := c.byAddr[addr]
	return d, ok
}

// Names returns register names in table order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Len returns the number of registers in the catalog.
func (c *Catalog) Len() int { return len(c.order) }
