package character

import (
	"encoding/xml"

	"github.com/louisbranch/dossier/internal/services/social/domain/contact"
	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
)

// Document is the stored <character> element of a `.chum5` file. Only the
// parts of the profile this module reads are mapped.
type Document struct {
	XMLName             xml.Name            `xml:"character"`
	Name                string              `xml:"name"`
	Age                 string              `xml:"age"`
	Sex                 string              `xml:"sex"`
	Metatype            string              `xml:"metatype"`
	Metavariant         string              `xml:"metavariant"`
	Created             string              `xml:"created"`
	FriendsInHighPlaces string              `xml:"friendsinhighplaces"`
	PrintNotes          string              `xml:"printnotes"`
	MainMugshotIndex    string              `xml:"mainmugshotindex"`
	Mugshots            []string            `xml:"mugshots>mugshot"`
	Contacts            []*contact.Document `xml:"contacts>contact"`
}

// PrintDocument is the <character> element of a print export.
type PrintDocument struct {
	XMLName  xml.Name `xml:"character"`
	Name     string   `xml:"name"`
	Metatype string   `xml:"metatype"`
	Sex      string   `xml:"sex"`
	Age      string   `xml:"age"`
	mugshot.Printout
	Contacts []*contact.PrintDocument `xml:"contacts>contact"`
}
