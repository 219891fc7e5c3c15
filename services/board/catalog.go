package board

import (
	"Magnate/services/ledger"
	_ "embed"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed board.yaml
var boardYAML []byte

type slot struct {
	ID        int    `yaml:"id"`
	Name      string `yaml:"name"`
	Type      string `yaml:"type"`
	Group     string `yaml:"group"`
	Price     int    `yaml:"price"`
	Rent      []int  `yaml:"rent"`
	HouseCost int    `yaml:"house_cost"`
	Amount    int    `yaml:"amount"` // fixed charge on tax slots
}

type boardFile struct {
	Slots []slot `yaml:"slots"`
}

// LoadProperties parses the embedded board definition into the pristine
// property catalog.
func LoadProperties() ([]ledger.Property, error) {
	var file boardFile
	if err := yaml.Unmarshal(boardYAML, &file); err != nil {
		return nil, fmt.Errorf("parsing board definition: %w", err)
	}

	properties := make([]ledger.Property, 0, len(file.Slots))
	for _, sl := range file.Slots {
		properties = append(properties, ledger.Property{
			ID:           sl.ID,
			Name:         sl.Name,
			Type:         ledger.PropertyType(sl.Type),
			Group:        sl.Group,
			Price:        sl.Price,
			Rent:         append([]int(nil), sl.Rent...),
			HouseCost:    sl.HouseCost,
			TaxAmount:    sl.Amount,
			CatalogPrice: sl.Price,
			CatalogRent:  append([]int(nil), sl.Rent...),
		})
	}
	return properties, nil
}

// MustLoadProperties is LoadProperties for bootstrap paths where a broken
// embedded board is unrecoverable.
func MustLoadProperties() []ledger.Property {
	properties, err := LoadProperties()
	if err != nil {
		panic(err)
	}
	return properties
}

// GetByPos finds the board slot at a position.
func GetByPos(pos int, properties []ledger.Property) (ledger.Property, error) {
	for _, property := range properties {
		if property.ID == pos {
			return property, nil
		}
	}
	return ledger.Property{}, errors.New("not found")
}
