package contact

import (
	"testing"

	"github.com/louisbranch/dossier/internal/platform/id"
	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
)

func newTestContact(owner Owner, linker Linker) *Contact {
	opts := Options{Language: "en-US"}
	if linker != nil {
		opts.Linker = linker
	}
	return New(owner, opts)
}

func TestNewContactDefaults(t *testing.T) {
	c := newTestContact(&fakeOwner{}, nil)
	if !id.IsGUID(c.GUID()) {
		t.Fatalf("guid = %q, want UUID", c.GUID())
	}
	if c.Connection() != 1 || c.Loyalty() != 1 {
		t.Fatalf("ratings = %d/%d, want 1/1", c.Connection(), c.Loyalty())
	}
	if c.EntityType() != TypeContact {
		t.Fatalf("entity type = %v, want Contact", c.EntityType())
	}
	if !c.NoLinkedCharacter() {
		t.Fatal("expected new contact to be unlinked")
	}
	if c.HasColour() {
		t.Fatal("expected colour unset")
	}
	if c.MainMugshotIndex() != mugshot.NoMain {
		t.Fatalf("main mugshot index = %d, want %d", c.MainMugshotIndex(), mugshot.NoMain)
	}
}

func TestNewContactsHaveDistinctGUIDs(t *testing.T) {
	a, b := newTestContact(nil, nil), newTestContact(nil, nil)
	if a.GUID() == b.GUID() {
		t.Fatal("expected distinct guids")
	}
}

func TestContactPointsFormula(t *testing.T) {
	for _, free := range []bool{false, true} {
		for _, family := range []bool{false, true} {
			for _, blackmail := range []bool{false, true} {
				for connection := 0; connection <= 12; connection += 4 {
					for loyalty := 0; loyalty <= 6; loyalty += 3 {
						c := newTestContact(nil, nil)
						c.SetFree(free)
						c.SetFamily(family)
						c.SetBlackmail(blackmail)
						c.SetConnection(connection)
						c.SetLoyalty(loyalty)

						want := connection + loyalty
						if family {
							want++
						}
						if blackmail {
							want += 2
						}
						if free {
							want = 0
						}
						if got := c.ContactPoints(); got != want {
							t.Fatalf("points(free=%v family=%v blackmail=%v c=%d l=%d) = %d, want %d",
								free, family, blackmail, connection, loyalty, got, want)
						}
					}
				}
			}
		}
	}
}

func TestLoyaltyPins(t *testing.T) {
	tests := []struct {
		name  string
		apply func(c *Contact)
		want  int
	}{
		{"group pins to one", func(c *Contact) { c.SetIsGroup(true) }, 1},
		{"forced loyalty survives group", func(c *Contact) { c.SetForceLoyalty(true); c.SetIsGroup(true) }, 5},
		{"made man pins to three", func(c *Contact) { c.SetMadeMan(true) }, 3},
		{"made man after group", func(c *Contact) { c.SetIsGroup(true); c.SetMadeMan(true) }, 3},
		{"group after made man", func(c *Contact) { c.SetMadeMan(true); c.SetIsGroup(true) }, 1},
		{"clearing group keeps loyalty", func(c *Contact) { c.SetIsGroup(false) }, 5},
		{"group or made man sets group", func(c *Contact) { c.SetIsGroupOrMadeMan(true) }, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContact(nil, nil)
			c.SetLoyalty(5)
			tt.apply(c)
			if c.Loyalty() != tt.want {
				t.Fatalf("loyalty = %d, want %d", c.Loyalty(), tt.want)
			}
		})
	}
}

func TestSetLoyaltyClampsNegative(t *testing.T) {
	c := newTestContact(nil, nil)
	c.SetLoyalty(-2)
	if c.Loyalty() != 0 {
		t.Fatalf("loyalty = %d, want 0", c.Loyalty())
	}
}

func TestConnectionMaximum(t *testing.T) {
	tests := []struct {
		owner *fakeOwner
		want  int
	}{
		{&fakeOwner{}, 6},
		{&fakeOwner{created: true}, 12},
		{&fakeOwner{friendsInHighPlaces: true}, 12},
		{&fakeOwner{created: true, friendsInHighPlaces: true}, 12},
	}
	for _, tt := range tests {
		if got := newTestContact(tt.owner, nil).ConnectionMaximum(); got != tt.want {
			t.Fatalf("maximum(%+v) = %d, want %d", *tt.owner, got, tt.want)
		}
	}
	if got := newTestContact(nil, nil).ConnectionMaximum(); got != 6 {
		t.Fatalf("ownerless maximum = %d, want 6", got)
	}
}

func TestQuickText(t *testing.T) {
	c := newTestContact(nil, nil)
	c.SetConnection(4)
	c.SetLoyalty(2)
	if got := c.QuickText(); got != "(4/2)" {
		t.Fatalf("quick text = %q, want (4/2)", got)
	}
	c.SetIsGroup(true)
	if got := c.QuickText(); got != "(4/1G)" {
		t.Fatalf("group quick text = %q, want (4/1G)", got)
	}
}

func TestDerivedPredicates(t *testing.T) {
	c := newTestContact(nil, nil)
	if !c.LoyaltyEnabled() || !c.IsNotEnemy() || !c.NotMadeMan() || c.IsGroupOrMadeMan() {
		t.Fatal("unexpected predicates for a plain contact")
	}
	c.SetForceLoyalty(true)
	if c.LoyaltyEnabled() {
		t.Fatal("forced loyalty disables editing")
	}
	c.SetEntityType(TypeEnemy)
	if c.IsNotEnemy() {
		t.Fatal("enemy is an enemy")
	}
	c.SetMadeMan(true)
	if c.NotMadeMan() || !c.IsGroupOrMadeMan() {
		t.Fatal("made man predicates not updated")
	}
}

func TestParseEntityType(t *testing.T) {
	tests := []struct {
		text  string
		want  EntityType
		known bool
	}{
		{"", TypeContact, true},
		{"Contact", TypeContact, true},
		{"Pet", TypePet, true},
		{"Enemy", TypeEnemy, true},
		{"Bartender", TypeEnemy, false},
		{"contact", TypeEnemy, false},
	}
	for _, tt := range tests {
		got, known := ParseEntityType(tt.text)
		if got != tt.want || known != tt.known {
			t.Fatalf("ParseEntityType(%q) = (%v, %v), want (%v, %v)", tt.text, got, known, tt.want, tt.known)
		}
	}
}
