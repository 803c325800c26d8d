package identity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveDuplicateURLInPool(t *testing.T) {
	pool := NewSnapshot([]Record{{ID: "lead-1", WebsiteURL: "https://abc.com"}})
	seen := NewBatchSeen()

	out := Resolve(Candidate{WebsiteURL: "www.ABC.com/"}, pool, seen)

	assert.False(t, out.Accepted)
	assert.Equal(t, ReasonDuplicateURL, out.Reason)
	assert.Equal(t, FieldURL, out.Field)
	assert.Equal(t, "lead-1", out.ConflictingID)
	assert.Equal(t, "https://abc.com", out.ConflictingValue)
	assert.Empty(t, seen.URLs, "rejected candidates must not pollute the batch")
}

func TestResolveBatchOrderFirstSeenWins(t *testing.T) {
	pool := NewSnapshot(nil)
	seen := NewBatchSeen()

	first := Resolve(Candidate{WebsiteURL: "abc.com"}, pool, seen)
	second := Resolve(Candidate{WebsiteURL: "www.abc.com"}, pool, seen)

	assert.True(t, first.Accepted)
	assert.False(t, second.Accepted)
	assert.Equal(t, ReasonDuplicateInBatch, second.Reason)
	assert.Equal(t, FieldURL, second.Field)
	assert.Equal(t, "https://abc.com", second.ConflictingValue)
}

func TestResolveInvalidPhoneIsNotCompared(t *testing.T) {
	pool := NewSnapshot([]Record{{ID: "lead-1", WebsiteURL: "taken.com", Phone: "12345"}})
	seen := NewBatchSeen()

	out := Resolve(Candidate{WebsiteURL: "fresh.com", Phone: "12345"}, pool, seen)
	require.True(t, out.Accepted)
	assert.Empty(t, out.PhoneKey)
	assert.Empty(t, seen.Phones)

	// a second row with the same short phone is still accepted on URL alone
	out = Resolve(Candidate{WebsiteURL: "another.com", Phone: "12345"}, pool, seen)
	assert.True(t, out.Accepted)
}

func TestResolveDuplicatePhoneInPool(t *testing.T) {
	pool := NewSnapshot([]Record{{ID: "lead-9", WebsiteURL: "old.com", Phone: "(555) 123-4567"}})

	out := Resolve(Candidate{WebsiteURL: "new.com", Phone: "+1 555 123 4567"}, pool, NewBatchSeen())

	assert.False(t, out.Accepted)
	assert.Equal(t, ReasonDuplicatePhone, out.Reason)
	assert.Equal(t, FieldPhone, out.Field)
	assert.Equal(t, "lead-9", out.ConflictingID)
	assert.Equal(t, "(555) 123-4567", out.ConflictingValue)
	assert.Equal(t, "5551234567", out.PhoneKey)
}

func TestResolveURLCheckedBeforePhone(t *testing.T) {
	pool := NewSnapshot([]Record{
		{ID: "by-url", WebsiteURL: "acme.com"},
		{ID: "by-phone", WebsiteURL: "other.com", Phone: "555-111-2222"},
	})

	out := Resolve(Candidate{WebsiteURL: "https://www.acme.com/", Phone: "555-111-2222"}, pool, NewBatchSeen())

	assert.Equal(t, ReasonDuplicateURL, out.Reason)
	assert.Equal(t, "by-url", out.ConflictingID)
}

func TestResolveRejectedPhoneDoesNotRecordURL(t *testing.T) {
	seen := NewBatchSeen()
	pool := NewSnapshot([]Record{{ID: "lead-1", WebsiteURL: "old.com", Phone: "555-000-1111"}})

	out := Resolve(Candidate{WebsiteURL: "site.com", Phone: "555-000-1111"}, pool, seen)
	require.False(t, out.Accepted)

	out = Resolve(Candidate{WebsiteURL: "site.com"}, pool, seen)
	assert.True(t, out.Accepted, "an earlier rejected row must not block its URL")
}

func TestResolveCSVScenario(t *testing.T) {
	pool := NewSnapshot(nil)
	seen := NewBatchSeen()

	rows := []Candidate{
		{WebsiteURL: "acme.com", Phone: "555-111-2222"},
		{WebsiteURL: "https://www.acme.com/", Phone: "555-111-2223"},
		{WebsiteURL: "other.com", Phone: "555-111-2222"},
	}

	outcomes := make([]Outcome, 0, len(rows))
	for _, row := range rows {
		outcomes = append(outcomes, Resolve(row, pool, seen))
	}

	assert.True(t, outcomes[0].Accepted)

	// a URL already taken earlier in the same batch reports duplicate_in_csv, not duplicate_url
	assert.False(t, outcomes[1].Accepted)
	assert.Equal(t, ReasonDuplicateInBatch, outcomes[1].Reason)
	assert.Equal(t, FieldURL, outcomes[1].Field)

	assert.False(t, outcomes[2].Accepted)
	assert.Equal(t, ReasonDuplicateInBatch, outcomes[2].Reason)
	assert.Equal(t, FieldPhone, outcomes[2].Field)
	assert.Equal(t, "5551112222", outcomes[2].ConflictingValue)

	assert.Len(t, seen.URLs, 1)
	assert.Len(t, seen.Phones, 1)
}

func TestResolveMalformedURLStillAccepted(t *testing.T) {
	seen := NewBatchSeen()

	out := Resolve(Candidate{WebsiteURL: "not a url"}, nil, seen)

	assert.True(t, out.Accepted)
	assert.Equal(t, "https://not a url", out.URLKey)
	assert.Contains(t, seen.URLs, "https://not a url")
}

func TestResolveNilBatch(t *testing.T) {
	out := Resolve(Candidate{WebsiteURL: "example.com", Phone: "555-123-4567"}, nil, nil)

	assert.True(t, out.Accepted)
	assert.Equal(t, "https://example.com", out.URLKey)
	assert.Equal(t, "5551234567", out.PhoneKey)
}

func TestSnapshotFirstRecordWins(t *testing.T) {
	snap := NewSnapshot([]Record{
		{ID: "a", WebsiteURL: "example.com", Phone: "555-123-4567"},
		{ID: "b", WebsiteURL: "WWW.example.com/", Phone: "1 555 123 4567"},
		{ID: "c", WebsiteURL: "short.com", Phone: "123"},
	})

	rec, ok := snap.LookupURL("https://example.com")
	require.True(t, ok)
	assert.Equal(t, "a", rec.ID)

	rec, ok = snap.LookupPhone("5551234567")
	require.True(t, ok)
	assert.Equal(t, "a", rec.ID)

	_, ok = snap.LookupPhone("123")
	assert.False(t, ok)
	assert.Equal(t, 2, snap.Len())
}
