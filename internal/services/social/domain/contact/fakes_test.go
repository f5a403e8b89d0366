package contact

import (
	"context"

	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
)

type fakeOwner struct {
	path                string
	created             bool
	friendsInHighPlaces bool
	printNotes          bool
}

func (o *fakeOwner) FilePath() string          { return o.path }
func (o *fakeOwner) Created() bool             { return o.created }
func (o *fakeOwner) FriendsInHighPlaces() bool { return o.friendsInHighPlaces }
func (o *fakeOwner) PrintNotes() bool          { return o.printNotes }

type fakeRecord struct {
	path        string
	name        string
	age         string
	sex         string
	metatype    string
	metavariant string
	gallery     *mugshot.Gallery
}

func (r *fakeRecord) FilePath() string           { return r.path }
func (r *fakeRecord) CharacterName() string      { return r.name }
func (r *fakeRecord) Age() string                { return r.age }
func (r *fakeRecord) Sex() string                { return r.sex }
func (r *fakeRecord) Metatype() string           { return r.metatype }
func (r *fakeRecord) Metavariant() string        { return r.metavariant }
func (r *fakeRecord) Mugshots() *mugshot.Gallery { return r.gallery }

func (r *fakeRecord) PrintMugshots(context.Context) (mugshot.Printout, error) {
	return mugshot.Printout{MainBase64: "linked:" + r.path, HasOthers: "False"}, nil
}

type relinkCall struct {
	old          LinkedRecord
	filePath     string
	relativePath string
	notify       bool
}

// fakeLinker resolves file paths through a fixed table.
type fakeLinker struct {
	records  map[string]*fakeRecord
	calls    []relinkCall
	released []LinkedRecord
}

func newFakeLinker(records ...*fakeRecord) *fakeLinker {
	l := &fakeLinker{records: map[string]*fakeRecord{}}
	for _, record := range records {
		if record.gallery == nil {
			record.gallery = mugshot.New()
		}
		l.records[record.path] = record
	}
	return l
}

func (l *fakeLinker) Relink(_ context.Context, _ *Contact, old LinkedRecord, filePath, relativePath string, notify bool) (LinkedRecord, bool) {
	l.calls = append(l.calls, relinkCall{old: old, filePath: filePath, relativePath: relativePath, notify: notify})
	if record, ok := l.records[filePath]; ok {
		return record, true
	}
	if record, ok := l.records[relativePath]; ok {
		return record, true
	}
	return nil, false
}

func (l *fakeLinker) Release(_ context.Context, _ *Contact, record LinkedRecord) {
	l.released = append(l.released, record)
}

func (l *fakeLinker) lastCall() relinkCall {
	if len(l.calls) == 0 {
		return relinkCall{}
	}
	return l.calls[len(l.calls)-1]
}
