package catalog

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidID      = errors.New("id must be positive")
	ErrEmptyName      = errors.New("name must not be empty")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidPercent = errors.New("percent must be between 0 and 100")
)

// Lookup is the shared shape of the small reference tables
// (seat types, projection types, person types, genres).
type Lookup interface {
	ID() int64
	Name() string
}

type lookup struct {
	id   int64
	name string
}

func newLookup(id int64, name string) (lookup, error) {
	if id <= 0 {
		return lookup{}, ErrInvalidID
	}
	if name == "" {
		return lookup{}, ErrEmptyName
	}
	return lookup{id: id, name: name}, nil
}

func (l lookup) ID() int64    { return l.id }
func (l lookup) Name() string { return l.name }

// SeatType carries a flat surcharge added to the ticket price.
// The column is historically named priceAmountDiscount but holds a
// positive amount added on top of the base price.
type SeatType struct {
	lookup
	surcharge decimal.Decimal
}

func NewSeatType(id int64, name string, surcharge decimal.Decimal) (*SeatType, error) {
	l, err := newLookup(id, name)
	if err != nil {
		return nil, err
	}
	if surcharge.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &SeatType{lookup: l, surcharge: surcharge}, nil
}

func (t *SeatType) Surcharge() decimal.Decimal { return t.surcharge }

// ProjectionType carries a flat surcharge, same convention as SeatType.
type ProjectionType struct {
	lookup
	surcharge decimal.Decimal
}

func NewProjectionType(id int64, name string, surcharge decimal.Decimal) (*ProjectionType, error) {
	l, err := newLookup(id, name)
	if err != nil {
		return nil, err
	}
	if surcharge.IsNegative() {
		return nil, ErrNegativeAmount
	}
	return &ProjectionType{lookup: l, surcharge: surcharge}, nil
}

func (t *ProjectionType) Surcharge() decimal.Decimal { return t.surcharge }

// PersonType carries a percentage discount applied multiplicatively.
type PersonType struct {
	lookup
	percentDiscount decimal.Decimal
}

func NewPersonType(id int64, name string, percentDiscount decimal.Decimal) (*PersonType, error) {
	l, err := newLookup(id, name)
	if err != nil {
		return nil, err
	}
	if percentDiscount.IsNegative() || percentDiscount.GreaterThan(decimal.NewFromInt(100)) {
		return nil, ErrInvalidPercent
	}
	return &PersonType{lookup: l, percentDiscount: percentDiscount}, nil
}

func (t *PersonType) PercentDiscount() decimal.Decimal { return t.percentDiscount }

type Genre struct {
	lookup
}

func NewGenre(id int64, name string) (*Genre, error) {
	l, err := newLookup(id, name)
	if err != nil {
		return nil, err
	}
	return &Genre{lookup: l}, nil
}
