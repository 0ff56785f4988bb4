// internal/core/domain/problem_test.go
package domain

import (
	"context"
	"errors"
	"testing"

	"contacts/internal/testutil"
)

type recordingMutator struct {
	calls []string
	fail  error
}

func (r *recordingMutator) UpdateField(_ context.Context, id, field, value string) error {
	r.calls = append(r.calls, "update "+id+" "+field+" "+value)
	return r.fail
}

func (r *recordingMutator) DeleteField(_ context.Context, id, field string) error {
	r.calls = append(r.calls, "delete "+id+" "+field)
	return r.fail
}

func (r *recordingMutator) UpdateInfo(_ context.Context, id, field, infoID string, attrs map[string]string) error {
	r.calls = append(r.calls, "update "+id+" "+field+" "+infoID)
	return r.fail
}

func (r *recordingMutator) AddInfo(_ context.Context, id, field string, attrs map[string]string) error {
	r.calls = append(r.calls, "add "+id+" "+field+" "+attrs[AttrValue])
	return r.fail
}

func (r *recordingMutator) DeleteInfo(_ context.Context, id, field, infoID string) error {
	r.calls = append(r.calls, "delete "+id+" "+field+" "+infoID)
	return r.fail
}

func TestNewProblem_FlattensNewlines(t *testing.T) {
	p := NewProblem("Street 'Street No 1\n#1' should be '1 Street\n#1'.", nil)
	testutil.AssertEqual(t, p.Message, "Street 'Street No 1 #1' should be '1 Street #1'.", "message")
}

func TestProblem_Category(t *testing.T) {
	testutil.AssertEqual(t, NewProblem("x", nil).Category(), CategoryError, "no fix is error")
	testutil.AssertEqual(t, NewProblem("x", UpdateFieldFix("c", "prefix", "Dr.")).Category(), CategoryWarning, "fix is warning")
	testutil.AssertEqual(t, NewProblem("x", nil).String(), "⛔ x", "string form")
}

func TestProblem_TryFix(t *testing.T) {
	ctx := context.Background()

	t.Run("no fix is a no-op", func(t *testing.T) {
		m := &recordingMutator{}
		testutil.AssertNoError(t, NewProblem("x", nil).TryFix(ctx, m), "try fix")
		testutil.AssertLen(t, m.calls, 0, "no calls")
	})

	t.Run("chain runs in order", func(t *testing.T) {
		m := &recordingMutator{}
		fix := Chain(
			func(ctx context.Context, m Mutator) error {
				return m.AddInfo(ctx, "c1", FieldURLs, map[string]string{AttrLabel: LabelHomePage, AttrValue: "h.com"})
			},
			func(ctx context.Context, m Mutator) error { return m.DeleteField(ctx, "c1", FieldHomePage) },
		)
		testutil.AssertNoError(t, NewProblem("x", fix).TryFix(ctx, m), "try fix")
		testutil.AssertDeepEqual(t, m.calls, []string{"add c1 urls h.com", "delete c1 home_page"}, "calls")
	})

	t.Run("delete infos stops at first failure", func(t *testing.T) {
		m := &recordingMutator{fail: errors.New("boom")}
		err := NewProblem("x", DeleteInfosFix("c1", FieldPhones, "p2", "p3")).TryFix(ctx, m)
		testutil.AssertError(t, err, "error propagated")
		testutil.AssertLen(t, m.calls, 1, "second delete skipped")
	})
}

func TestAddressFormat(t *testing.T) {
	def := DefaultAddressFormat()
	testutil.AssertFalse(t, def.IsEmpty(), "default format maps parts")
	testutil.AssertTrue(t, AddressFormat{}.IsEmpty(), "zero format is empty")

	geo := &Geocode{Street: "1 Street", County: "Çankaya", City: "Ankara", CountryCode: "tr"}
	testutil.AssertEqual(t, geo.Get(SemanticCounty), "Çankaya", "county slot")
	testutil.AssertEqual(t, geo.Get(SemanticCountry), "tr", "country slot reads the code")
	testutil.AssertEqual(t, (*Geocode)(nil).Get(SemanticCity), "", "nil geocode")

	testutil.AssertTrue(t, SemanticNeighborhood.IsValid(), "neighborhood valid")
	testutil.AssertFalse(t, SemanticAddressField("planet").IsValid(), "planet invalid")
}
