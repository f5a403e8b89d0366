// Package contact models the people (and creatures) a character knows:
// contacts, enemies and pets.
//
// A Contact keeps its own copy of every field. When its file reference
// resolves to another saved character, the identity fields (name, age, sex,
// metatype) and the portrait gallery read through to that record instead;
// writes always land on the local copy. The contact document codec lives in
// document.go, save.go, load.go and print.go.
package contact
