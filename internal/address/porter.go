package address

// Export/import of the address book as YAML, used by the CLI to move a book
// between devices or seed a test profile.

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

type bookFile struct {
	Addresses []yamlAddress `yaml:"addresses"`
}

type yamlAddress struct {
	ID          string `yaml:"id,omitempty"`
	Name        string `yaml:"name"`
	Phone       string `yaml:"phone"`
	AltPhone    string `yaml:"alt_phone,omitempty"`
	AddressLine string `yaml:"address_line"`
	Pincode     string `yaml:"pincode"`
	City        string `yaml:"city"`
	State       string `yaml:"state"`
	Landmark    string `yaml:"landmark,omitempty"`
}

// ExportYAML renders the list as a YAML document.
func ExportYAML(list []Address) ([]byte, error) {
	file := bookFile{Addresses: make([]yamlAddress, 0, len(list))}
	for _, a := range list {
		file.Addresses = append(file.Addresses, yamlAddress(a))
	}

	out, err := yaml.Marshal(&file)
	if err != nil {
		return nil, fmt.Errorf("failed to encode address book: %w", err)
	}
	return out, nil
}

// ParseYAML decodes a previously exported document. Entries are returned in
// file order; merging them preserves the book's dedup semantics.
func ParseYAML(content []byte) ([]Address, error) {
	var file bookFile
	if err := yaml.Unmarshal(content, &file); err != nil {
		return nil, fmt.Errorf("failed to parse address book: %w", err)
	}

	list := make([]Address, 0, len(file.Addresses))
	for _, a := range file.Addresses {
		list = append(list, Address(a))
	}
	return list, nil
}
