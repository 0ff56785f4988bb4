package usecases

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contacts/internal/core/checks"
	"contacts/internal/core/diff"
	"contacts/internal/core/domain"
	"contacts/internal/core/ports"
	"contacts/internal/platform/errors"
	"contacts/internal/testutil/mocks"
)

type fixedEvent struct {
	before, after *domain.Contact
	changes       diff.Diff
	remaining     []string
}

type recordingReporter struct {
	total    int
	contacts []string
	problems map[string][]string
	fixed    []fixedEvent
	summary  *ports.AuditSummary
}

func newRecordingReporter() *recordingReporter {
	return &recordingReporter{problems: map[string][]string{}}
}

func (r *recordingReporter) Started(total int) { r.total = total }

func (r *recordingReporter) Contact(c *domain.Contact, problems []*domain.Problem) {
	r.contacts = append(r.contacts, c.ID)
	for _, p := range problems {
		r.problems[c.ID] = append(r.problems[c.ID], p.Message)
	}
}

func (r *recordingReporter) Fixed(before, after *domain.Contact, changes diff.Diff, remaining []*domain.Problem) {
	ev := fixedEvent{before: before, after: after, changes: changes}
	for _, p := range remaining {
		ev.remaining = append(ev.remaining, p.Message)
	}
	r.fixed = append(r.fixed, ev)
}

func (r *recordingReporter) Finished(s ports.AuditSummary) { r.summary = &s }

func newEngine() *checks.Engine {
	return checks.Default(checks.Options{Geocoder: &mocks.MockGeocoder{}})
}

func TestAuditor_ListOnly(t *testing.T) {
	store := mocks.NewMockStore(mocks.Fixtures(t, mocks.FixtureCorrect, mocks.FixtureMessy, mocks.FixtureCompany)...)
	rep := newRecordingReporter()

	summary, err := NewAuditor(AuditorOptions{Store: store, Reporter: rep}).Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, 3, rep.total)
	assert.Equal(t, []string{"C1", "C2", "C3"}, rep.contacts)
	assert.Empty(t, rep.problems)
	assert.Equal(t, ports.AuditSummary{Contacts: 3}, summary)
	assert.True(t, store.Recorded().IsEmpty())
}

func TestAuditor_CheckOnly(t *testing.T) {
	store := mocks.NewMockStore(mocks.Fixtures(t, mocks.FixtureCorrect, mocks.FixtureMessy)...)
	rep := newRecordingReporter()

	summary, err := NewAuditor(AuditorOptions{Store: store, Engine: newEngine(), Reporter: rep, Check: true}).
		Run(context.Background(), nil)
	require.NoError(t, err)

	assert.Empty(t, rep.problems["C1"])
	assert.Len(t, rep.problems["C2"], 15)
	assert.Equal(t, 1, summary.Errors)
	assert.Equal(t, 14, summary.Warnings)
	assert.Zero(t, summary.Fixed)
	assert.True(t, store.Recorded().IsEmpty(), "check without fix never writes")
}

func TestAuditor_Keywords(t *testing.T) {
	store := mocks.NewMockStore(mocks.Fixtures(t, mocks.FixtureCorrect, mocks.FixtureMessy)...)
	rep := newRecordingReporter()

	_, err := NewAuditor(AuditorOptions{Store: store, Reporter: rep}).Run(context.Background(), []string{"balloon"})
	require.NoError(t, err)
	assert.Equal(t, []string{"C2"}, rep.contacts)
}

// Fixing the messy fixture converges: the writes match the diff between
// the snapshots and a second pass finds only what needs a human.
func TestAuditor_FixConverges(t *testing.T) {
	store := mocks.NewMockStore(mocks.Fixture(t, mocks.FixtureMessy))
	store.Apply = true
	rep := newRecordingReporter()

	summary, err := NewAuditor(AuditorOptions{Store: store, Engine: newEngine(), Reporter: rep, Fix: true}).
		Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Fixed)

	require.Len(t, rep.fixed, 1)
	ev := rep.fixed[0]
	assert.Equal(t, []string{"Nickname 'Bobby' is not a full name."}, ev.remaining)

	want := diff.Diff{
		Updates: []diff.Mutation{
			{ContactID: "C2", Field: "first_name", Value: "Bob"},
			{ContactID: "C2", Field: "last_name", Value: "Balloon"},
			{ContactID: "C2", Field: "job_title", Value: "Baker"},
			{ContactID: "C2", Field: "phones", InfoID: "PID1",
				Attrs: map[string]string{"label": domain.LabelMobile, "value": "+180093273225377"}},
			{ContactID: "C2", Field: "emails", InfoID: "EID1",
				Attrs: map[string]string{"label": domain.LabelHome, "value": "Bob@example.com"}},
			{ContactID: "C2", Field: "urls", InfoID: "UID1",
				Attrs: map[string]string{"label": domain.LabelHomePage, "value": "http://b.com/x"}},
			{ContactID: "C2", Field: "addresses", InfoID: "AID1",
				Attrs: map[string]string{"country_code": "us", "country": "United States"}},
			{ContactID: "C2", Field: "custom_dates", InfoID: "DID1",
				Attrs: map[string]string{"label": "favorite"}},
		},
		Adds: []diff.Mutation{
			{ContactID: "C2", Field: "urls", Attrs: map[string]string{"label": domain.LabelHomePage, "value": "http://h.com"}},
		},
		Deletes: []diff.Mutation{
			{ContactID: "C2", Field: "phones", InfoID: "PID3"},
			{ContactID: "C2", Field: "home_page"},
		},
	}
	if d := cmp.Diff(want, ev.changes); d != "" {
		t.Errorf("changes mismatch (-want +got):\n%s", d)
	}
	assert.Equal(t, "Bob", ev.after.FirstName)
	assert.Equal(t, "Balloon", ev.after.LastName)
	assert.Equal(t, "+180093273225377", ev.after.Phones[0].Value)
	assert.Equal(t, domain.LabelMobile, ev.after.Phones[0].Label)
	assert.Len(t, ev.after.Phones, 2)
	assert.Equal(t, "Bob@example.com", ev.after.Emails[0].Value)
	assert.Empty(t, ev.after.HomePage)
	assert.Equal(t, "us", ev.after.Addresses[0].Address.CountryCode)
	assert.Equal(t, "United States", ev.after.Addresses[0].Address.Country)

	recorded := store.Recorded()
	assert.Len(t, recorded.Adds, 1)
	assert.Len(t, recorded.Deletes, 2, "home page field and duplicate phone")

	// a second run finds nothing to fix
	store.Reset()
	rep2 := newRecordingReporter()
	_, err = NewAuditor(AuditorOptions{Store: store, Engine: newEngine(), Reporter: rep2, Fix: true}).
		Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, rep2.fixed)
	assert.True(t, store.Recorded().IsEmpty())
}

func TestAuditor_CorrectFixtureIsUntouched(t *testing.T) {
	store := mocks.NewMockStore(mocks.Fixture(t, mocks.FixtureCorrect))
	store.Apply = true

	summary, err := NewAuditor(AuditorOptions{Store: store, Engine: newEngine(), Fix: true}).Run(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, summary.Fixed)
	assert.True(t, store.Recorded().IsEmpty())
}

func TestAuditor_StoreError(t *testing.T) {
	store := mocks.NewMockStore(mocks.Fixture(t, mocks.FixtureCorrect))
	store.Err = errors.ErrScriptFailed

	_, err := NewAuditor(AuditorOptions{Store: store}).Run(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrScriptFailed)
}

func TestAuditor_CheckErrorStopsRun(t *testing.T) {
	store := mocks.NewMockStore(mocks.Fixtures(t, mocks.FixtureCorrect, mocks.FixtureMessy)...)
	rep := newRecordingReporter()
	engine := checks.Default(checks.Options{Geocoder: &mocks.MockGeocoder{Err: errors.ErrServiceUnavailable}})

	summary, err := NewAuditor(AuditorOptions{Store: store, Engine: engine, Reporter: rep, Check: true}).
		Run(context.Background(), nil)
	assert.ErrorIs(t, err, errors.ErrServiceUnavailable)
	assert.Equal(t, 1, summary.Contacts)
	assert.Empty(t, rep.contacts)
	assert.Nil(t, rep.summary)
}
