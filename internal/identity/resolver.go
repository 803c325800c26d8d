package identity

// Reason explains why a candidate was rejected.
type Reason string

const (
	// ReasonDuplicateURL means an existing lead has the same URL key
	ReasonDuplicateURL Reason = "duplicate_url"
	// ReasonDuplicatePhone means an existing lead has the same phone key
	ReasonDuplicatePhone Reason = "duplicate_phone"
	// ReasonDuplicateInBatch means an earlier accepted row of the same submission has the key
	ReasonDuplicateInBatch Reason = "duplicate_in_csv"
)

// Field names the identity field that caused a rejection.
type Field string

const (
	FieldURL   Field = "url"
	FieldPhone Field = "phone"
)

// Candidate is a lead about to be created.
type Candidate struct {
	WebsiteURL string
	Phone      string
}

// Outcome is the decision for one candidate. A rejected outcome carries the
// reason, the field and the conflicting value so callers can report it.
type Outcome struct {
	Accepted         bool   `json:"accepted"`
	Reason           Reason `json:"reason,omitempty"`
	Field            Field  `json:"field,omitempty"`
	ConflictingValue string `json:"conflicting_value,omitempty"`
	ConflictingID    string `json:"conflicting_id,omitempty"`
	URLKey           string `json:"url_key"`
	PhoneKey         string `json:"phone_key,omitempty"`
}

// BatchSeen holds the keys accepted so far in one import or discovery run.
// It belongs to a single call and must not be shared between requests.
type BatchSeen struct {
	URLs   map[string]struct{}
	Phones map[string]struct{}
}

// NewBatchSeen returns an empty batch scope.
func NewBatchSeen() *BatchSeen {
	return &BatchSeen{
		URLs:   make(map[string]struct{}),
		Phones: make(map[string]struct{}),
	}
}

func (b *BatchSeen) hasURL(key string) bool {
	_, ok := b.URLs[key]
	return ok
}

func (b *BatchSeen) hasPhone(key string) bool {
	_, ok := b.Phones[key]
	return ok
}

// Resolve decides whether c is a new lead. Checks run in order and the first
// match wins: URL against the pool, URL against the batch, then (valid phones
// only) phone against the pool and phone against the batch. seen is updated
// only when the candidate is accepted.
func Resolve(c Candidate, pool Pool, seen *BatchSeen) Outcome {
	if pool == nil {
		pool = emptyPool{}
	}
	if seen == nil {
		seen = NewBatchSeen()
	}

	out := Outcome{URLKey: NormalizeURL(c.WebsiteURL)}

	if rec, ok := pool.LookupURL(out.URLKey); ok {
		out.Reason = ReasonDuplicateURL
		out.Field = FieldURL
		out.ConflictingValue = rec.WebsiteURL
		out.ConflictingID = rec.ID

		return out
	}

	if seen.hasURL(out.URLKey) {
		out.Reason = ReasonDuplicateInBatch
		out.Field = FieldURL
		out.ConflictingValue = out.URLKey

		return out
	}

	if c.Phone != "" && IsValidPhone(c.Phone) {
		out.PhoneKey = NormalizePhone(c.Phone)

		if rec, ok := pool.LookupPhone(out.PhoneKey); ok {
			out.Reason = ReasonDuplicatePhone
			out.Field = FieldPhone
			out.ConflictingValue = rec.Phone
			out.ConflictingID = rec.ID

			return out
		}

		if seen.hasPhone(out.PhoneKey) {
			out.Reason = ReasonDuplicateInBatch
			out.Field = FieldPhone
			out.ConflictingValue = out.PhoneKey

			return out
		}

		seen.Phones[out.PhoneKey] = struct{}{}
	}

	seen.URLs[out.URLKey] = struct{}{}
	out.Accepted = true

	return out
}
