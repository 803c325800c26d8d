package identity

// Record is the identity view of a persisted lead.
type Record struct {
	ID         string `json:"id"`
	WebsiteURL string `json:"website_url"`
	Phone      string `json:"phone,omitempty"`
}

// Pool answers key lookups against already persisted leads.
type Pool interface {
	LookupURL(key string) (Record, bool)
	LookupPhone(key string) (Record, bool)
}

// Snapshot is a read-only index of persisted identities, keyed by their
// normalized URL and phone. It is built once per request and never touches
// storage afterwards.
type Snapshot struct {
	byURL   map[string]Record
	byPhone map[string]Record
}

// NewSnapshot indexes records. When two records share a key the first one
// is kept.
func NewSnapshot(records []Record) *Snapshot {
	s := &Snapshot{
		byURL:   make(map[string]Record, len(records)),
		byPhone: make(map[string]Record, len(records)),
	}

	for _, rec := range records {
		s.Add(rec)
	}

	return s
}

// Add indexes one more record. Phones that are not valid for matching are
// not indexed.
func (s *Snapshot) Add(rec Record) {
	keys := KeysOf(rec.WebsiteURL, rec.Phone)

	if _, ok := s.byURL[keys.URL]; !ok {
		s.byURL[keys.URL] = rec
	}

	if keys.Phone == "" {
		return
	}

	if _, ok := s.byPhone[keys.Phone]; !ok {
		s.byPhone[keys.Phone] = rec
	}
}

// LookupURL returns the record owning the URL key
func (s *Snapshot) LookupURL(key string) (Record, bool) {
	rec, ok := s.byURL[key]
	return rec, ok
}

// LookupPhone returns the record owning the phone key
func (s *Snapshot) LookupPhone(key string) (Record, bool) {
	rec, ok := s.byPhone[key]
	return rec, ok
}

// Len is the number of indexed URL keys
func (s *Snapshot) Len() int {
	return len(s.byURL)
}

type emptyPool struct{}

func (emptyPool) LookupURL(string) (Record, bool)   { return Record{}, false }
func (emptyPool) LookupPhone(string) (Record, bool) { return Record{}, false }
