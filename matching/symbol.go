package matching

// Symbol contains basic info about the instrument traded in an order book.
type Symbol struct {
	id   uint32
	name string
}

// NewSymbol creates new symbol with specified ID and name.
func NewSymbol(id uint32, name string) Symbol {
	return Symbol{
		id:   id,
		name: name,
	}
}

// ID returns the symbol ID.
func (s Symbol) ID() uint32 {
	return s.id
}

// Name returns the symbol name.
func (s Symbol) Name() string {
	return s.name
}

// Valid returns true if the symbol has a name.
func (s Symbol) Valid() bool {
	return len(s.name) > 0
}

func (s Symbol) String() string {
	return s.name
}
