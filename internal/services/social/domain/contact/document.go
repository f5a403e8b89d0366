package contact

import (
	"encoding/xml"

	"github.com/louisbranch/dossier/internal/services/social/domain/mugshot"
)

// Document is the stored <contact> element. Pointer fields distinguish an
// absent element from an empty one.
type Document struct {
	XMLName          xml.Name  `xml:"contact"`
	Name             *string   `xml:"name"`
	Role             *string   `xml:"role"`
	Location         *string   `xml:"location"`
	Connection       *string   `xml:"connection"`
	Loyalty          *string   `xml:"loyalty"`
	Metatype         *string   `xml:"metatype"`
	Sex              *string   `xml:"sex"`
	Age              *string   `xml:"age"`
	ContactType      *string   `xml:"contacttype"`
	PreferredPayment *string   `xml:"preferredpayment"`
	HobbiesVice      *string   `xml:"hobbiesvice"`
	PersonalLife     *string   `xml:"personallife"`
	Type             *string   `xml:"type"`
	File             *string   `xml:"file"`
	Relative         *string   `xml:"relative"`
	Notes            *string   `xml:"notes"`
	GroupName        *string   `xml:"groupname"`
	Colour           *string   `xml:"colour"`
	Free             *string   `xml:"free"`
	Group            *string   `xml:"group"`
	ForceLoyalty     *string   `xml:"forceloyalty"`
	MadeMan          *string   `xml:"mademan"` // legacy name of forceloyalty, never written
	Family           *string   `xml:"family"`
	Blackmail        *string   `xml:"blackmail"`
	ReadOnly         *struct{} `xml:"readonly"`
	GUID             *string   `xml:"guid"`
	MainMugshotIndex *string   `xml:"mainmugshotindex"`
	Mugshots         []string  `xml:"mugshots>mugshot"`
}

// PrintDocument is the <contact> element of a print export.
type PrintDocument struct {
	XMLName          xml.Name `xml:"contact"`
	Name             string   `xml:"name"`
	Role             string   `xml:"role"`
	Location         string   `xml:"location"`
	Connection       string   `xml:"connection"`
	Loyalty          string   `xml:"loyalty"`
	Metatype         string   `xml:"metatype"`
	Sex              string   `xml:"sex"`
	Age              string   `xml:"age"`
	ContactType      string   `xml:"contacttype"`
	PreferredPayment string   `xml:"preferredpayment"`
	HobbiesVice      string   `xml:"hobbiesvice"`
	PersonalLife     string   `xml:"personallife"`
	Type             string   `xml:"type"`
	ForceLoyalty     string   `xml:"forceloyalty"`
	Blackmail        string   `xml:"blackmail"`
	Family           string   `xml:"family"`
	Notes            *string  `xml:"notes"`
	mugshot.Printout
}

func formatBool(value bool) string {
	if value {
		return "True"
	}
	return "False"
}
