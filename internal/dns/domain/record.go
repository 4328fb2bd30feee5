package domain

import "fmt"

// ResourceRecord is a single (name, type, class, ttl, rdata) entry of an
// answer section. RDLENGTH is not stored; it is always len(Data).
type ResourceRecord struct {
	Name  string
	Type  RRType
	Class RRClass
	TTL   uint32 // seconds
	Data  []byte // wire-encoded rdata
}

// NewResourceRecord constructs a ResourceRecord and validates its fields.
func NewResourceRecord(name string, rrtype RRType, class RRClass, ttl uint32, data []byte) (ResourceRecord, error) {
	rr := ResourceRecord{
		Name:  name,
		Type:  rrtype,
		Class: class,
		TTL:   ttl,
		Data:  data,
	}
	if err := rr.Validate(); err != nil {
		return ResourceRecord{}, err
	}
	return rr, nil
}

// Validate checks whether the ResourceRecord fields are valid.
func (rr ResourceRecord) Validate() error {
	if rr.Name == "" {
		return fmt.Errorf("record name must not be empty")
	}
	if len(rr.Data) > 0xFFFF {
		return fmt.Errorf("record data too large: %d bytes (max 65535)", len(rr.Data))
	}
	return nil
}
